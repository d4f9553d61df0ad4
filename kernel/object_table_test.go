package kernel

import "testing"

type dummyObject struct{ name string }

func (d *dummyObject) TypeName() string { return "DummyObject" }

func TestObjectTable_InsertLookup(t *testing.T) {
	tbl := NewObjectTable()

	obj := &dummyObject{name: "a"}
	h := tbl.Insert(obj)

	if h < handleBase {
		t.Errorf("handle %#x below handle base %#x", h, handleBase)
	}
	if got := tbl.Lookup(h); got != Object(obj) {
		t.Errorf("Lookup: got %v, want the inserted object", got)
	}
	if tbl.Count() != 1 {
		t.Errorf("Count: got %d, want 1", tbl.Count())
	}
}

func TestObjectTable_HandlesAreDistinct(t *testing.T) {
	tbl := NewObjectTable()

	seen := make(map[uint32]bool)
	for i := 0; i < 64; i++ {
		h := tbl.Insert(&dummyObject{})
		if seen[h] {
			t.Fatalf("handle %#x issued twice", h)
		}
		seen[h] = true
	}
}

func TestObjectTable_LookupMissing(t *testing.T) {
	tbl := NewObjectTable()

	if got := tbl.Lookup(0xDEAD); got != nil {
		t.Errorf("Lookup of unknown handle: got %v, want nil", got)
	}
	if got := tbl.LookupEnumerator(0xDEAD); got != nil {
		t.Errorf("LookupEnumerator of unknown handle: got %v, want nil", got)
	}
}

func TestObjectTable_TypedLookupRejectsWrongVariant(t *testing.T) {
	tbl := NewObjectTable()

	h := tbl.Insert(&dummyObject{})
	if got := tbl.LookupEnumerator(h); got != nil {
		t.Errorf("LookupEnumerator on non-enumerator: got %v, want nil", got)
	}

	eh := tbl.Insert(NewStaticEnumerator(8, 1))
	if got := tbl.LookupEnumerator(eh); got == nil {
		t.Error("LookupEnumerator on enumerator handle: got nil")
	}
}

func TestObjectTable_Release(t *testing.T) {
	tbl := NewObjectTable()

	h := tbl.Insert(&dummyObject{})
	if !tbl.Release(h) {
		t.Error("Release of live handle: got false")
	}
	if tbl.Lookup(h) != nil {
		t.Error("handle still resolves after release")
	}
	if tbl.Release(h) {
		t.Error("second Release: got true, want false")
	}
}
