package store

import (
	"context"
	"testing"
	"time"
)

func TestNewRedisStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := NewRedisStore(ctx, RedisOptions{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	if err == nil {
		t.Fatal("NewRedisStore() to a closed port should fail")
	}
}

func TestDurationOr(t *testing.T) {
	if durationOr(0, time.Second) != time.Second {
		t.Errorf("zero should fall back to default")
	}
	if durationOr(2*time.Second, time.Second) != 2*time.Second {
		t.Errorf("positive value should win")
	}
}
