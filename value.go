package html2toml

// Value is a node of the generic tree built from an HTML document. It is
// one of String, *Table or Array.
type Value interface {
	value()
}

// String is a leaf value: an attribute value or the text of an element.
type String string

// Array is an ordered sequence of values. Repeated sibling tags end up here.
type Array []Value

func (String) value() {}
func (Array) value()  {}
func (*Table) value() {}

type entry struct {
	key string
	val Value
}

// Table is an insertion ordered mapping from string keys to values.
// The zero value is an empty table ready to use.
type Table struct {
	entries []entry
	index   map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Len returns the number of keys in t.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (Value, bool) {
	if t == nil {
		return nil, false
	}
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.entries[i].val, true
}

// Set stores v under key. An existing key keeps its position and gets
// the new value.
func (t *Table) Set(key string, v Value) {
	if i, ok := t.index[key]; ok {
		t.entries[i].val = v
		return
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, entry{key: key, val: v})
}

// Merge stores v under key, grouping repeated keys into an Array: the
// first value is stored bare, the second turns it into a two element
// Array, and later ones are appended.
func (t *Table) Merge(key string, v Value) {
	i, ok := t.index[key]
	if !ok {
		t.Set(key, v)
		return
	}
	if a, ok := t.entries[i].val.(Array); ok {
		t.entries[i].val = append(a, v)
		return
	}
	t.entries[i].val = Array{t.entries[i].val, v}
}

// Keys returns the keys of t in insertion order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.key
	}
	return keys
}
