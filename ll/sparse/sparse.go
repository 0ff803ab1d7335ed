/*
Package sparse implements a simple type for sparse integer matrices.
It is used for LL(1) parse tables, where rows are non-terminals, columns
are lookahead terminals and values are rule numbers.
Every entry in the table is a list of int32, usually holding a single value;
more than one value in an entry represents a conflict.

This implementation uses the COO algorithm (a.k.a. triplet-encoding).

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
)

// IntMatrix is a type for a spare matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     vs := M.Values(2, 3)           // returns [4711 123]
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(10, 10)            // returns -1, i.e. the null-value
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
	value    intList
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

// Value returns the primary value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	if t := m.find(i, j); t != nil && len(t.value) > 0 {
		return t.value[0]
	}
	return m.nullval
}

// Values returns all values at position (i,j), or nil for an empty position.
// The result is a copy.
func (m *IntMatrix) Values(i, j int) []int32 {
	if t := m.find(i, j); t != nil && len(t.value) > 0 {
		vs := make([]int32, len(t.value))
		copy(vs, t.value)
		return vs
	}
	return nil
}

// Count returns the number of values at position (i,j).
func (m *IntMatrix) Count(i, j int) int {
	if t := m.find(i, j); t != nil {
		return len(t.value)
	}
	return 0
}

// Set a value in the matrix at position (i,j), replacing all values present.
// Setting the null-value empties the position.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, false)
}

// Add a value in the matrix at position (i,j), keeping values already present.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, true)
}

// Each calls f for every non-empty position, in row-major order.
func (m *IntMatrix) Each(f func(i, j int, values []int32)) {
	for _, t := range m.values {
		if len(t.value) > 0 {
			f(t.row, t.col, t.value)
		}
	}
}

func (m *IntMatrix) find(i, j int) *triplet {
	for k, t := range m.values {
		if !t.storedLeftOf(i, j) { // have skipped all lesser indices
			if t.storedAt(i, j) {
				return &m.values[k]
			}
			break
		}
	}
	return nil
}

func (m *IntMatrix) setOrAdd(i, j int, value int32, doAdd bool) *IntMatrix {
	if i < 0 || j < 0 {
		panic(fmt.Sprintf("sparse.IntMatrix: index (%d,%d) out of range", i, j))
	}
	at := 0 // will be position of new value
	for k, t := range m.values {
		if !t.storedLeftOf(i, j) { // have skipped all lesser indices
			if t.storedAt(i, j) { // value already present
				if doAdd {
					m.values[k].value = m.values[k].value.add(value, m.nullval)
				} else {
					m.values[k].value = newIntList(value, m.nullval)
				}
				return m // and done
			}
			break // no old value present
		}
		at++
	}
	tnew := triplet{row: i, col: j, value: newIntList(value, m.nullval)}
	// the following 3 lines have to work for k being the right edge of v or not
	m.values = append(m.values, tnew)    // make room
	copy(m.values[at+1:], m.values[at:]) // copy remainder values one index to right
	m.values[at] = tnew                  // if not append-case: insert new triplet
	if i >= m.rowcnt {
		m.rowcnt = i + 1
	}
	if j >= m.colcnt {
		m.colcnt = j + 1
	}
	return m
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return (t.row == i && t.col == j)
}

// we will store any number of int32 in one position
type intList []int32

func newIntList(v int32, nullval int32) intList {
	if v == nullval {
		return intList{}
	}
	return intList{v}
}

func (l intList) add(v int32, nullval int32) intList {
	if v == nullval {
		return l
	}
	return append(l, v)
}

func (l intList) String() string {
	return fmt.Sprintf("%v", []int32(l))
}
