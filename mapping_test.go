package dossier

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMapping_SetGetDelete(t *testing.T) {
	var m Mapping
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)
	m.Set("b", 10)

	if diff := cmp.Diff([]string{"b", "a", "c"}, m.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if v, ok := m.Get("b"); !ok || v != 10 {
		t.Errorf("Get(b) = %v, %v; want 10, true", v, ok)
	}

	if !m.Delete("a") {
		t.Fatal("Delete(a) = false, want true")
	}
	if m.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
	if diff := cmp.Diff([]string{"b", "c"}, m.Keys()); diff != "" {
		t.Errorf("Keys() after delete mismatch (-want +got):\n%s", diff)
	}
	if v, _ := m.Get("c"); v != 3 {
		t.Errorf("Get(c) after delete = %v, want 3", v)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestMappingOf(t *testing.T) {
	m := MappingOf(map[string]any{
		"zeta":  1,
		"alpha": map[string]any{"y": 1, "x": 2},
	})

	if diff := cmp.Diff([]string{"alpha", "zeta"}, m.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	v, _ := m.Get("alpha")
	nested, ok := v.(*Mapping)
	if !ok {
		t.Fatalf("alpha = %T, want *Mapping", v)
	}
	if diff := cmp.Diff([]string{"x", "y"}, nested.Keys()); diff != "" {
		t.Errorf("nested Keys() mismatch (-want +got):\n%s", diff)
	}

	want := map[string]any{"zeta": 1, "alpha": map[string]any{"x": 2, "y": 1}}
	if diff := cmp.Diff(want, m.Map()); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}
}

func TestMapping_JSON(t *testing.T) {
	m := NewMapping()
	m.Set("username", "bob")
	m.Set("password", "pw1")
	m.Set("tags", []any{"a", 1})

	data, err := jsonAPI.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"username":"bob","password":"pw1","tags":["a",1]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var back Mapping
	if err := back.UnmarshalJSON([]byte(`{"b": {"z": null, "y": [1, {"k": true}]}, "a": 1.5}`)); err != nil {
		t.Fatalf("UnmarshalJSON() error: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, back.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	b, _ := back.Get("b")
	inner := b.(*Mapping)
	if diff := cmp.Diff([]string{"z", "y"}, inner.Keys()); diff != "" {
		t.Errorf("nested Keys() mismatch (-want +got):\n%s", diff)
	}
	y, _ := inner.Get("y")
	list := y.([]any)
	if len(list) != 2 || list[0] != int64(1) {
		t.Fatalf("y = %v", y)
	}
	if _, ok := list[1].(*Mapping); !ok {
		t.Errorf("y[1] = %T, want *Mapping", list[1])
	}
}

func TestMapping_UnmarshalJSONErrors(t *testing.T) {
	tests := []string{``, `{`, `{"a":}`, `[1]`, `"text"`, `null`, `{"a":1} trailing`}
	for _, input := range tests {
		var m Mapping
		if err := m.UnmarshalJSON([]byte(input)); err == nil {
			t.Errorf("UnmarshalJSON(%q) should return error", input)
		}
	}
}
