// query.go - fluent query builder (adapted from modern_query.go's ModernQ:
// Skip/Limit/Iter/All survive, Sort and projection do not - see the
// ordering open question recorded in the grounding ledger)

package doclite

// Query accumulates a selector plus skip/limit before producing a Cursor.
// Compile errors in the selector are deferred until Iter/All/One so the
// builder chain never needs an error return.
type Query struct {
	coll *Collection
	pred Predicate
	err  error

	skip  int
	limit int
}

// Query begins a query against selector.
func (c *Collection) Query(selector *Document) *Query {
	pred, err := Compile(selector)
	return &Query{coll: c, pred: pred, err: err}
}

// Skip drops the first n matching documents from the result.
func (q *Query) Skip(n int) *Query {
	q.skip = n
	return q
}

// Limit caps the number of documents returned; 0 (the default) means
// unbounded.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Iter runs the query and returns a Cursor over the results.
func (q *Query) Iter() *Cursor {
	if q.err != nil {
		return &Cursor{err: q.err}
	}
	ids := q.coll.findIDs(q.pred)
	return &Cursor{coll: q.coll, pred: q.pred, ids: ids, skip: q.skip, limit: q.limit}
}

// All materializes every result into a slice.
func (q *Query) All() ([]*Document, error) {
	it := q.Iter()
	defer it.Close()
	return it.All()
}

// One returns the first result, or ErrNotFound if there is none.
func (q *Query) One() (*Document, error) {
	it := q.Iter()
	defer it.Close()
	var doc *Document
	if it.Next(&doc) {
		return doc, nil
	}
	if it.Err() != nil {
		return nil, it.Err()
	}
	return nil, ErrNotFound
}
