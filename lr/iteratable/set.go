package iteratable

// Set is an insertion-ordered set of comparable values.
type Set struct {
	values []interface{}
	index  map[interface{}]int
	cursor int
}

// NewSet creates an empty set with room for n elements.
func NewSet(n int) *Set {
	if n < 0 {
		n = 0
	}
	return &Set{
		values: make([]interface{}, 0, n),
		index:  make(map[interface{}]int, n),
		cursor: -1,
	}
}

// Add adds elements to the set. Elements already present are ignored.
// Returns the set (for chaining).
func (s *Set) Add(items ...interface{}) *Set {
	for _, x := range items {
		if _, ok := s.index[x]; ok {
			continue
		}
		s.index[x] = len(s.values)
		s.values = append(s.values, x)
	}
	return s
}

// Contains checks if all items are in the set.
func (s *Set) Contains(items ...interface{}) bool {
	for _, x := range items {
		if _, ok := s.index[x]; !ok {
			return false
		}
	}
	return true
}

// Remove deletes elements from the set. Iteration order of the remaining
// elements is preserved.
func (s *Set) Remove(items ...interface{}) *Set {
	removed := false
	for _, x := range items {
		if _, ok := s.index[x]; ok {
			delete(s.index, x)
			removed = true
		}
	}
	if !removed {
		return s
	}
	values := s.values[:0]
	for _, x := range s.values {
		if _, ok := s.index[x]; ok {
			s.index[x] = len(values)
			values = append(values, x)
		}
	}
	for i := len(values); i < len(s.values); i++ {
		s.values[i] = nil
	}
	s.values = values
	return s
}

// Size returns the number of elements.
func (s *Set) Size() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Empty is true for a set without elements.
func (s *Set) Empty() bool {
	return s.Size() == 0
}

// Values returns a copy of the elements, in insertion order.
func (s *Set) Values() []interface{} {
	if s == nil {
		return nil
	}
	vals := make([]interface{}, len(s.values))
	copy(vals, s.values)
	return vals
}

// Copy returns a shallow copy of the set.
func (s *Set) Copy() *Set {
	c := NewSet(s.Size())
	if s != nil {
		c.Add(s.values...)
	}
	return c
}

// Union adds all elements of other to s. Destructive!
func (s *Set) Union(other *Set) *Set {
	if other != nil {
		s.Add(other.values...)
	}
	return s
}

// Difference removes all elements of other from s. Destructive!
func (s *Set) Difference(other *Set) *Set {
	if other != nil {
		s.Remove(other.values...)
	}
	return s
}

// Intersection keeps only elements of s which are in other as well. Destructive!
func (s *Set) Intersection(other *Set) *Set {
	var drop []interface{}
	for _, x := range s.values {
		if !other.Contains(x) {
			drop = append(drop, x)
		}
	}
	return s.Remove(drop...)
}

// Equals is true if s and other contain the same elements, regardless
// of order.
func (s *Set) Equals(other *Set) bool {
	if s.Size() != other.Size() {
		return false
	}
	for _, x := range other.values {
		if _, ok := s.index[x]; !ok {
			return false
		}
	}
	return true
}

// Each calls f for every element, in insertion order.
func (s *Set) Each(f func(interface{})) {
	for _, x := range s.values {
		f(x)
	}
}

// --- Iteration -------------------------------------------------------------

// IterateOnce starts an iteration cycle.
func (s *Set) IterateOnce() {
	s.cursor = -1
}

// Next moves to the next element. Elements added after IterateOnce() are
// visited as well. Returns false when the cycle is exhausted.
func (s *Set) Next() bool {
	if s.cursor+1 >= len(s.values) {
		s.cursor = len(s.values)
		return false
	}
	s.cursor++
	return true
}

// Item returns the current element of an iteration cycle.
func (s *Set) Item() interface{} {
	if s.cursor < 0 || s.cursor >= len(s.values) {
		return nil
	}
	return s.values[s.cursor]
}
