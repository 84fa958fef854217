package value

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleArguments() *Map {
	inputs := NewMap()
	inputs.Set("codeFile", String("ABC.txt"))
	inputs.Set("sleeptime", Int(3))

	args := NewMap()
	args.Set("inputs", Record{Map: inputs})
	args.Set("outputTarget", String("XYZ.txt"))
	args.Set("outputType", Int(6))
	return args
}

func TestMapKeepsBindingOrder(t *testing.T) {
	m := NewMap()
	m.Set("zeta", Int(1))
	m.Set("alpha", Int(2))
	m.Set("mid", Int(3))
	m.Set("zeta", Int(4))

	want := []string{"zeta", "alpha", "mid"}
	if diff := cmp.Diff(want, m.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}

	v, ok := m.Get("zeta")
	if !ok || v != Int(4) {
		t.Errorf("Get(zeta) = %v, %v; want 4, true", v, ok)
	}
}

func TestMapKeysReturnsCopy(t *testing.T) {
	m := NewMap()
	m.Set("a", Bool(true))

	keys := m.Keys()
	keys[0] = "changed"

	if got := m.Keys()[0]; got != "a" {
		t.Errorf("Keys() was modified through its result: got %q", got)
	}
}

func TestMapLookupDescendsIntoRecords(t *testing.T) {
	args := sampleArguments()

	if _, ok := args.Get("codeFile"); ok {
		t.Errorf("Get(codeFile) found a nested binding")
	}

	v, ok := args.Lookup("codeFile")
	if !ok || v != String("ABC.txt") {
		t.Errorf("Lookup(codeFile) = %v, %v; want ABC.txt, true", v, ok)
	}

	if _, ok := args.Lookup("missing"); ok {
		t.Errorf("Lookup(missing) reported a binding")
	}
}

func TestMapFlatten(t *testing.T) {
	flat := sampleArguments().Flatten()

	want := []string{"codeFile", "sleeptime", "outputTarget", "outputType"}
	if diff := cmp.Diff(want, flat.Keys()); diff != "" {
		t.Errorf("Flatten() keys mismatch (-want +got):\n%s", diff)
	}

	wantNative := map[string]any{
		"codeFile":     "ABC.txt",
		"sleeptime":    int64(3),
		"outputTarget": "XYZ.txt",
		"outputType":   int64(6),
	}
	if diff := cmp.Diff(wantNative, flat.Native()); diff != "" {
		t.Errorf("Flatten() values mismatch (-want +got):\n%s", diff)
	}
}

func TestMapMarshalJSONKeepsOrder(t *testing.T) {
	args := sampleArguments()
	args.Set("items", List{Record{Map: func() *Map {
		m := NewMap()
		m.Set("name", String("first"))
		m.Set("ratio", Float(0.5))
		return m
	}()}})

	data, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"inputs":{"codeFile":"ABC.txt","sleeptime":3},"outputTarget":"XYZ.txt","outputType":6,"items":[{"name":"first","ratio":0.5}]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s\nwant %s", data, want)
	}
}

func TestMapEqual(t *testing.T) {
	if !sampleArguments().Equal(sampleArguments()) {
		t.Errorf("identical mappings reported unequal")
	}

	reordered := NewMap()
	reordered.Set("outputType", Int(6))
	reordered.Set("outputTarget", String("XYZ.txt"))
	if reordered.Equal(sampleArguments()) {
		t.Errorf("mappings of different size reported equal")
	}

	a := NewMap()
	a.Set("x", Int(1))
	a.Set("y", Int(2))
	b := NewMap()
	b.Set("y", Int(2))
	b.Set("x", Int(1))
	if a.Equal(b) {
		t.Errorf("mappings with different binding order reported equal")
	}
}

func TestMapString(t *testing.T) {
	got := sampleArguments().String()
	want := "{inputs: {codeFile: ABC.txt, sleeptime: 3}, outputTarget: XYZ.txt, outputType: 6}"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNilMap(t *testing.T) {
	var m *Map
	if m.Len() != 0 || m.Keys() != nil {
		t.Errorf("nil map is not empty")
	}
	if _, ok := m.Lookup("x"); ok {
		t.Errorf("nil map reported a binding")
	}
	if diff := cmp.Diff(map[string]any{}, m.Native()); diff != "" {
		t.Errorf("Native() mismatch (-want +got):\n%s", diff)
	}
}
