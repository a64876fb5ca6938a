package ids

import "testing"

func TestGenerateUnique(t *testing.T) {
	seen := make(map[int64]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := Generate()
		if id <= 0 {
			t.Fatalf("non-positive id %d", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %d at iteration %d", id, i)
		}
		seen[id] = struct{}{}
	}
}

func TestGenerateMonotonic(t *testing.T) {
	prev := Generate()
	for i := 0; i < 1000; i++ {
		next := Generate()
		if next <= prev {
			t.Fatalf("ids not increasing: %d then %d", prev, next)
		}
		prev = next
	}
}

func TestGenerateString(t *testing.T) {
	if s := GenerateString(); s == "" || s == "0" {
		t.Fatalf("GenerateString = %q", s)
	}
}
