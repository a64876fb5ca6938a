package realtime

import "testing"

func TestRegistryRegisterUnregister(t *testing.T) {
	r := NewRegistry()
	c := testConn("c1", "alice")

	r.Register(c)
	r.Register(c) // double register must not double-count
	if got := len(r.ListByUser("alice")); got != 1 {
		t.Fatalf("ListByUser = %d conns, want 1", got)
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}

	r.Unregister(c)
	if got := r.ListByUser("alice"); got != nil {
		t.Errorf("user entry survives last unregister: %v", got)
	}
	if r.Get("c1") != nil {
		t.Error("conn still addressable after unregister")
	}

	r.Unregister(c) // already gone, must be a no-op
}

func TestRegistryMultipleConnsPerUser(t *testing.T) {
	r := NewRegistry()
	c1 := testConn("c1", "alice")
	c2 := testConn("c2", "alice")
	c3 := testConn("c3", "bob")
	r.Register(c1)
	r.Register(c2)
	r.Register(c3)

	if got := len(r.ListByUser("alice")); got != 2 {
		t.Errorf("alice conns = %d, want 2", got)
	}
	if got := len(r.ListAll()); got != 3 {
		t.Errorf("all conns = %d, want 3", got)
	}

	r.Unregister(c1)
	if got := len(r.ListByUser("alice")); got != 1 {
		t.Errorf("alice conns after one unregister = %d, want 1", got)
	}
}
