package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/carmatch/core"
	"github.com/rushteam/carmatch/pkg/utils"
)

func makeItems(brands ...string) []*core.Item {
	items := make([]*core.Item, 0, len(brands))
	for i, b := range brands {
		items = append(items, core.NewItem(core.Car{ID: int64(i + 1), Brand: b}, i))
	}
	return items
}

func TestTopNNode(t *testing.T) {
	tests := []struct {
		n, in, want int
	}{
		{0, 8, 5},
		{5, 8, 5},
		{5, 3, 3},
		{2, 8, 2},
		{5, 0, 0},
	}
	for _, tt := range tests {
		items := makeItems(make([]string, tt.in)...)
		out, err := (&TopNNode{N: tt.n}).Process(context.Background(), nil, items)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if len(out) != tt.want {
			t.Errorf("TopN(N=%d, in=%d) len = %d, want %d", tt.n, tt.in, len(out), tt.want)
		}
		for i, it := range out {
			if it != items[i] {
				t.Errorf("TopN changed order at %d", i)
			}
		}
	}
}

func TestBrandDiversity(t *testing.T) {
	items := makeItems("Acme", "Acme", "Other", "Acme", "", "Other")
	out, err := (&BrandDiversity{MaxPerBrand: 2}).Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	var ids []int64
	for _, it := range out {
		ids = append(ids, it.Car.ID)
	}
	want := []int64{1, 2, 3, 5, 6}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
	if _, ok := items[3].Labels["diversity_dropped"]; !ok {
		t.Errorf("dropped item should be labelled")
	}
}

func TestBrandDiversity_LabelKey(t *testing.T) {
	items := makeItems("Acme", "Other")
	items[0].PutLabel("group", utils.Label{Value: "g1"})
	items[1].PutLabel("group", utils.Label{Value: "g1"})
	out, _ := (&BrandDiversity{LabelKey: "group"}).Process(context.Background(), nil, items)
	if len(out) != 1 || out[0].Car.ID != 1 {
		t.Errorf("label grouping not applied: %d items", len(out))
	}
}
