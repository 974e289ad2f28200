/*
Package sparse implements a simple type for sparse integer matrices.
It is used for the LR(1) parser tables (GOTO-table and ACTION-table).
Every entry in the table is either a single int32 or a pair (int32,int32);
the second value of a pair records a conflicting table entry.

This implementation uses the COO algorithm (a.k.a. triplet-encoding), with
triplets kept sorted in row-major order.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(9, 9)              // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten with the null-value. Space for
// null-values is not re-claimed.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

// Triplet values to store
type triplet struct {
	row, col int
	value    intPair
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// find returns the index of the first triplet not stored left of (i,j).
func (m *IntMatrix) find(i, j int) int {
	return sort.Search(len(m.values), func(k int) bool {
		return !m.values[k].storedLeftOf(i, j)
	})
}

// Value returns the primary value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	a, _ := m.Values(i, j)
	return a
}

// Values returns the pair of values at position (i,j), or (NullValue, NullValue)
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	if k := m.find(i, j); k < len(m.values) && m.values[k].storedAt(i, j) {
		return m.values[k].value.a, m.values[k].value.b
	}
	return m.nullval, m.nullval
}

// Set a value in the matrix at position (i,j), replacing an existing entry.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	m.setOrAdd(i, j, value, false)
	return m
}

// Add a value in the matrix at position (i,j). If a value is already present
// at (i,j), the new value is stored as the secondary value. Add reports if
// the position has already been occupied.
func (m *IntMatrix) Add(i, j int, value int32) bool {
	return m.setOrAdd(i, j, value, true)
}

func (m *IntMatrix) setOrAdd(i, j int, value int32, doAdd bool) bool {
	m.checkBounds(i, j)
	at := m.find(i, j)
	if at < len(m.values) && m.values[at].storedAt(i, j) { // value already present
		if doAdd {
			v := m.values[at].value
			m.values[at].value = addIntValue(v, value, m.nullval)
			return v.a != m.nullval
		}
		m.values[at].value = newIntPair(value, m.nullval)
		return true
	}
	tnew := triplet{row: i, col: j, value: newIntPair(value, m.nullval)}
	// the following 3 lines have to work for `at` being the right edge of values or not
	m.values = append(m.values, tnew)    // make room
	copy(m.values[at+1:], m.values[at:]) // copy remainder values one index to right
	m.values[at] = tnew                  // if not append-case: insert new triplet
	return false
}

// Each calls f for every position set, in row-major order.
func (m *IntMatrix) Each(f func(i, j int, a, b int32)) {
	for _, t := range m.values {
		f(t.row, t.col, t.value.a, t.value.b)
	}
}

func (m *IntMatrix) checkBounds(i, j int) {
	if i < 0 || j < 0 || i >= m.rowcnt || j >= m.colcnt {
		panic(fmt.Sprintf("sparse.IntMatrix index (%d,%d) out of range %dx%d", i, j, m.rowcnt, m.colcnt))
	}
}

func addIntValue(v intPair, n int32, nullval int32) intPair {
	if v.a == nullval {
		v.a = n
	} else if v.b == nullval {
		v.b = n
	} else {
		// entry is full: the latest conflicting value replaces the secondary one
		v.b = n
	}
	return v
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return (t.row == i && t.col == j)
}

// we will store 2 int32 in one position
type intPair struct {
	a int32
	b int32
}

func (pr intPair) String() string {
	return fmt.Sprintf("[%d,%d]", pr.a, pr.b)
}

func newIntPair(a, b int32) intPair {
	return intPair{a, b}
}
