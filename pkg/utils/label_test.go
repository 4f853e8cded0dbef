package utils

import "testing"

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{"empty existing", Label{}, Label{Value: "a", Source: "filter"}, Label{Value: "a", Source: "filter"}},
		{"empty incoming", Label{Value: "a", Source: "filter"}, Label{}, Label{Value: "a", Source: "filter"}},
		{"accumulate", Label{Value: "a", Source: "filter"}, Label{Value: "b", Source: "rank"}, Label{Value: "a|b", Source: "filter,rank"}},
		{"missing source", Label{Value: "a"}, Label{Value: "b", Source: "rank"}, Label{Value: "a|b", Source: "rank"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeLabel(tt.existing, tt.incoming); got != tt.want {
				t.Errorf("MergeLabel() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFloatLabel(t *testing.T) {
	if got := FloatLabel(12.5, "rank").Value; got != "12.5" {
		t.Errorf("FloatLabel = %q", got)
	}
}
