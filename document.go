// document.go - ordered document type and dotted-path field resolution

package doclite

import "strings"

// Document is an ordered mapping from field name to Value. Field-name
// uniqueness within a document is enforced by Set (a repeated Set
// overwrites in place, preserving the original position).
type Document struct {
	keys []string
	vals map[string]Value
}

// NewDocument returns an empty, ready-to-use Document.
func NewDocument() *Document {
	return &Document{vals: make(map[string]Value)}
}

// Set assigns the top-level field key (a dotted key is stored as-is, not
// traversed), appending a new key in insertion order the first time it is
// seen.
func (d *Document) Set(key string, v Value) *Document {
	if _, ok := d.vals[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = v
	return d
}

// Delete removes key if present, preserving the order of the remaining
// keys.
func (d *Document) Delete(key string) {
	if _, ok := d.vals[key]; !ok {
		return
	}
	delete(d.vals, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Get returns the top-level field value (no dotted-path traversal).
func (d *Document) Get(key string) (Value, bool) {
	v, ok := d.vals[key]
	return v, ok
}

// Keys returns the field names in insertion order. The returned slice
// must not be mutated by callers.
func (d *Document) Keys() []string { return d.keys }

// Len reports the number of top-level fields.
func (d *Document) Len() int { return len(d.keys) }

// Clone makes a deep-enough copy for write-path diffing: scalar values are
// copied by value, nested documents/arrays are copied structurally.
func (d *Document) Clone() *Document {
	c := NewDocument()
	for _, k := range d.keys {
		c.Set(k, cloneValue(d.vals[k]))
	}
	return c
}

func cloneValue(v Value) Value {
	switch v.kind {
	case KindDocument:
		return DocValue(v.doc.Clone())
	case KindArray:
		arr := make([]Value, len(v.arr))
		for i, e := range v.arr {
			arr[i] = cloneValue(e)
		}
		return Array(arr)
	default:
		return v
	}
}

// Missing is the sentinel the field-path resolver returns when path does
// not resolve to any value (§4.3).
var Missing = Value{kind: -1}

func isMissing(v Value) bool { return v.kind == -1 }

// Resolve walks a dot-separated field path through nested documents and
// returns (Missing, false) if any segment is absent. It does not descend
// into arrays positionally; MongoDB-style implicit array traversal for
// intermediate path segments is outside this engine's scope (§1 lists
// only the matching/indexing rules in §4 as in-scope).
func Resolve(doc *Document, path string) (Value, bool) {
	if doc == nil || path == "" {
		return Missing, false
	}
	cur := DocValue(doc)
	for rest, more := path, true; more; {
		var seg string
		seg, rest, more = strings.Cut(rest, ".")
		d, ok := cur.AsDocument()
		if !ok {
			return Missing, false
		}
		v, ok := d.Get(seg)
		if !ok {
			return Missing, false
		}
		cur = v
	}
	return cur, true
}
