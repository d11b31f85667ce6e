package core

import "testing"

func TestFieldResolver(t *testing.T) {
	r := NewFieldResolver(map[string]*Field{
		"000001": {ID: "000001", Name: "age", OpType: OpTypeNumeric},
		"000002": {ID: "000002", Name: "color", OpType: OpTypeCategorical},
	})

	tests := []struct {
		key    string
		wantID string
		ok     bool
	}{
		{"000001", "000001", true},
		{"age", "000001", true},
		{"color", "000002", true},
		{"height", "", false},
	}
	for _, tt := range tests {
		id, ok := r.Resolve(tt.key)
		if ok != tt.ok || id != tt.wantID {
			t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.key, id, ok, tt.wantID, tt.ok)
		}
	}

	f, ok := r.Field("age")
	if !ok || f.ID != "000001" {
		t.Errorf("Field(age) = (%+v, %v)", f, ok)
	}
	if _, ok := r.Field("height"); ok {
		t.Error("Field(height) must miss")
	}
}
