package iteratable

import "testing"

func TestSetAddContains(t *testing.T) {
	s := NewSet(0)
	s.Add(1, 2, 3, 2)
	if s.Size() != 3 {
		t.Errorf("expected set of size 3, is %d", s.Size())
	}
	if !s.Contains(1, 3) {
		t.Errorf("expected set to contain 1 and 3")
	}
	if s.Contains(4) {
		t.Errorf("did not expect set to contain 4")
	}
}

func TestSetGrowWhileIterating(t *testing.T) {
	s := NewSet(0).Add(1)
	visited := 0
	s.IterateOnce()
	for s.Next() {
		n := s.Item().(int)
		visited++
		if n < 5 {
			s.Add(n + 1)
			s.Add(n) // no-op
		}
	}
	if visited != 5 {
		t.Errorf("expected 5 elements to be visited, have %d", visited)
	}
}

func TestSetEqualsIgnoresOrder(t *testing.T) {
	a := NewSet(0).Add("x", "y", "z")
	b := NewSet(0).Add("z", "x", "y")
	if !a.Equals(b) {
		t.Errorf("expected sets to be equal")
	}
	b.Remove("y")
	if a.Equals(b) {
		t.Errorf("expected sets to differ")
	}
}

func TestSetDestructiveOps(t *testing.T) {
	a := NewSet(0).Add(1, 2, 3)
	b := NewSet(0).Add(2, 4)
	a.Union(b)
	if a.Size() != 4 || !a.Contains(4) {
		t.Errorf("union failed: %v", a.Values())
	}
	a.Difference(NewSet(0).Add(1, 4))
	if a.Size() != 2 || !a.Contains(2, 3) {
		t.Errorf("difference failed: %v", a.Values())
	}
	a.Intersection(NewSet(0).Add(3))
	if a.Size() != 1 || !a.Contains(3) {
		t.Errorf("intersection failed: %v", a.Values())
	}
	if vals := a.Values(); len(vals) != 1 || vals[0] != 3 {
		t.Errorf("unexpected values after intersection: %v", vals)
	}
}

func TestSetRemovePreservesOrder(t *testing.T) {
	s := NewSet(0).Add("a", "b", "c", "d")
	s.Remove("b")
	vals := s.Values()
	if len(vals) != 3 || vals[0] != "a" || vals[1] != "c" || vals[2] != "d" {
		t.Errorf("unexpected order after remove: %v", vals)
	}
	s.Add("b")
	if s.Values()[3] != "b" {
		t.Errorf("expected re-added element at the end")
	}
}
