// Package frontmatter parses and formats the leading `---` delimited metadata
// block of agent definition files.
//
// The parser is deliberately lenient: it never fails, and lines it does not
// understand are skipped. Values are represented by the sealed Value type so
// consumers can switch over every possible shape:
//
//	switch v := block.Get("tools").(type) {
//	case *frontmatter.BoolMap:
//	case frontmatter.StringList:
//	case frontmatter.Scalar:
//	case frontmatter.Number:
//	case nil:
//	}
package frontmatter

// Value is a frontmatter value. It is implemented by Scalar, Number, *BoolMap
// and StringList only.
type Value interface {
	isValue()
}

// Scalar is a plain string value
type Scalar string

// Number is a numeric value. Only the temperature key produces numbers.
type Number float64

// StringList is the legacy comma separated tools representation
type StringList []string

func (Scalar) isValue()     {}
func (Number) isValue()     {}
func (StringList) isValue() {}
func (*BoolMap) isValue()   {}

// BoolMap is an insertion ordered map of names to booleans
type BoolMap struct {
	keys   []string
	values map[string]bool
}

// NewBoolMap creates an empty BoolMap
func NewBoolMap() *BoolMap {
	return &BoolMap{values: make(map[string]bool)}
}

// Set sets name to value. An existing name keeps its position.
func (m *BoolMap) Set(name string, value bool) {
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = value
}

// Get returns the value for name and whether it is present
func (m *BoolMap) Get(name string) (bool, bool) {
	if m == nil {
		return false, false
	}
	v, ok := m.values[name]
	return v, ok
}

// Keys returns the names in insertion order
func (m *BoolMap) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of entries
func (m *BoolMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Merge copies every entry of other into m, overwriting matching names
func (m *BoolMap) Merge(other *BoolMap) {
	for _, name := range other.Keys() {
		v, _ := other.Get(name)
		m.Set(name, v)
	}
}

// Clone returns a deep copy of m
func (m *BoolMap) Clone() *BoolMap {
	c := NewBoolMap()
	c.Merge(m)
	return c
}
