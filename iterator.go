// iterator.go - result cursor (adapted from modern_iterator.go's ModernIt:
// the Next/Close/All shape survives, the BSON cursor and decode step do
// not, since results are already *Document here)

package doclite

// Cursor walks a Query's result set lazily, re-checking each candidate
// record against the compiled predicate as it goes (the planner's
// candidate set can be a superset of the true match set).
type Cursor struct {
	coll *Collection
	pred Predicate
	ids  []RecordID
	pos  int

	skip  int
	limit int

	served int
	err    error
	closed bool
}

// Next advances the cursor and, on success, sets *dst to the next
// matching document.
func (cur *Cursor) Next(dst **Document) bool {
	if cur.err != nil || cur.closed {
		return false
	}
	if cur.limit > 0 && cur.served >= cur.limit {
		return false
	}
	for cur.pos < len(cur.ids) {
		id := cur.ids[cur.pos]
		cur.pos++
		doc, ok := cur.coll.st.get(id)
		if !ok || !Matches(doc, cur.pred) {
			continue
		}
		if cur.skip > 0 {
			cur.skip--
			continue
		}
		*dst = doc
		cur.served++
		return true
	}
	return false
}

// Err reports the first error encountered, if any.
func (cur *Cursor) Err() error { return cur.err }

// Close marks the cursor exhausted. There is no underlying connection to
// release; Close exists so callers can defer it unconditionally.
func (cur *Cursor) Close() error {
	cur.closed = true
	return cur.err
}

// All drains the cursor into a slice.
func (cur *Cursor) All() ([]*Document, error) {
	var out []*Document
	var doc *Document
	for cur.Next(&doc) {
		out = append(out, doc)
	}
	if cur.err != nil {
		return nil, cur.err
	}
	return out, nil
}
