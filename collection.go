// collection.go - the external Collection API: insert/find/update/delete
// and index creation, wired on top of store.go, index.go, maintenance.go
// and planner.go (adapted from modern_collection.go's ModernColl methods)

package doclite

import "sync"

// Collection is a named set of documents plus its secondary indexes.
type Collection struct {
	name string

	st *store

	mu            sync.RWMutex
	indexes       []*Index
	indexesByPath map[string][]*Index

	metrics *Metrics
}

func newCollection(name string) *Collection {
	return &Collection{
		name:          name,
		st:            newStore(),
		indexesByPath: make(map[string][]*Index),
		metrics:       NewMetrics(),
	}
}

func (c *Collection) Name() string { return c.name }

// Metrics returns the collection's running counters, including
// find_by_index_count.
func (c *Collection) Metrics() *Metrics { return c.metrics }

// Indexes returns the collection's indexes in creation order.
func (c *Collection) Indexes() []*Index {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Index, len(c.indexes))
	copy(out, c.indexes)
	return out
}

// CreateIndex builds a new index on spec.Path, backfilling it against
// every document already in the collection before making it visible to
// finds. A unique-constraint violation discovered during backfill aborts
// index creation entirely; no partial index is left behind.
func (c *Collection) CreateIndex(spec IndexSpec) (*Index, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := spec.Name
	if name == "" {
		name = spec.Path + "_idx"
	}
	ix := NewIndex(name, spec.Path, spec.Unique, len(c.indexes))

	built := make([]RecordID, 0, c.st.len())
	for _, id := range c.st.allIDs() {
		doc, ok := c.st.get(id)
		if !ok {
			continue
		}
		if err := InsertDocumentIndexEntries(ix, doc, id); err != nil {
			for _, prev := range built {
				if d, ok := c.st.get(prev); ok {
					RemoveDocumentIndexEntries(ix, d, prev)
				}
			}
			return nil, err
		}
		built = append(built, id)
	}

	c.indexes = append(c.indexes, ix)
	c.indexesByPath[spec.Path] = append(c.indexesByPath[spec.Path], ix)
	return ix, nil
}

func (c *Collection) snapshotIndexes() ([]*Index, map[string][]*Index) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ixs := make([]*Index, len(c.indexes))
	copy(ixs, c.indexes)
	byPath := make(map[string][]*Index, len(c.indexesByPath))
	for k, v := range c.indexesByPath {
		cp := make([]*Index, len(v))
		copy(cp, v)
		byPath[k] = cp
	}
	return ixs, byPath
}

// InsertOne inserts doc and returns its assigned record id. If any unique
// index rejects one of doc's entries, the document and any entries
// already written to earlier indexes are rolled back.
func (c *Collection) InsertOne(doc *Document) (RecordID, error) {
	ixs, _ := c.snapshotIndexes()
	id := c.st.put(doc)

	for i, ix := range ixs {
		if err := InsertDocumentIndexEntries(ix, doc, id); err != nil {
			for _, prev := range ixs[:i] {
				RemoveDocumentIndexEntries(prev, doc, id)
			}
			c.st.delete(id)
			return 0, err
		}
	}
	return id, nil
}

// InsertMany inserts docs best-effort: a failure on one document is
// recorded and the rest are still attempted, mirroring the batch
// semantics of a bulk insert. The returned ids correspond, in order, to
// the documents that succeeded; a non-nil *BulkError carries every
// failure's original index and cause.
func (c *Collection) InsertMany(docs []*Document) ([]RecordID, error) {
	ids := make([]RecordID, 0, len(docs))
	var ecases []BulkErrorCase
	for i, d := range docs {
		id, err := c.InsertOne(d)
		if err != nil {
			ecases = append(ecases, BulkErrorCase{Index: i, Err: err})
			continue
		}
		ids = append(ids, id)
	}
	if len(ecases) > 0 {
		return ids, &BulkError{ecases: ecases}
	}
	return ids, nil
}

// findIDs compiles nothing itself; it runs the planner over an
// already-compiled predicate and records which path was taken.
func (c *Collection) findIDs(pred Predicate) []RecordID {
	_, byPath := c.snapshotIndexes()
	ids, used := Plan(pred, byPath, c.st.allIDs)
	if used {
		c.metrics.recordIndexUsed()
	} else {
		c.metrics.recordFullScan()
	}
	return ids
}

// Find returns every document matching query, in the candidate set's
// iteration order (§9's open question on result ordering): insertion
// order for a full scan, record-id order for a single equality probe, and
// the unfixed iteration order of a record-id set for an $in or $all
// probe. No order is part of the contract.
func (c *Collection) Find(query *Document) ([]*Document, error) {
	pred, err := Compile(query)
	if err != nil {
		return nil, err
	}
	var out []*Document
	for _, id := range c.findIDs(pred) {
		if doc, ok := c.st.get(id); ok && Matches(doc, pred) {
			out = append(out, doc)
		}
	}
	return out, nil
}

// FindOne returns the first matching document without materializing the
// rest of the candidate set, reusing Find's plan path end to end -
// including its find_by_index_count accounting, since a short-circuited
// find is still a find.
func (c *Collection) FindOne(query *Document) (*Document, error) {
	pred, err := Compile(query)
	if err != nil {
		return nil, err
	}
	for _, id := range c.findIDs(pred) {
		if doc, ok := c.st.get(id); ok && Matches(doc, pred) {
			return doc, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateOne applies update to the first document matching selector.
// update must be a "$set" document (§1's operator scope); any other
// shape replaces the matched document outright. Index maintenance for
// the match is applied per-index, and a unique-constraint failure midway
// rolls back every index already updated for this call.
func (c *Collection) UpdateOne(selector, update *Document) (ChangeInfo, error) {
	pred, err := Compile(selector)
	if err != nil {
		return ChangeInfo{}, err
	}

	for _, id := range c.findIDs(pred) {
		doc, ok := c.st.get(id)
		if !ok || !Matches(doc, pred) {
			continue
		}

		newDoc := applyUpdate(doc, update)

		ixs, _ := c.snapshotIndexes()
		applied := make([]*Index, 0, len(ixs))
		for _, ix := range ixs {
			if err := UpdateDocumentIndexEntries(ix, doc, newDoc, id); err != nil {
				for _, a := range applied {
					UpdateDocumentIndexEntries(a, newDoc, doc, id)
				}
				return ChangeInfo{Matched: 1}, err
			}
			applied = append(applied, ix)
		}

		c.st.replace(id, newDoc)
		return ChangeInfo{Matched: 1, Updated: 1}, nil
	}
	return ChangeInfo{}, nil
}

// applyUpdate builds the post-update document: fields named under "$set"
// are written onto a clone of doc, anything else is a full replacement.
func applyUpdate(doc *Document, update *Document) *Document {
	setVal, hasSet := update.Get("$set")
	if !hasSet {
		return update.Clone()
	}
	setDoc, ok := setVal.AsDocument()
	if !ok {
		return update.Clone()
	}
	out := doc.Clone()
	for _, k := range setDoc.Keys() {
		v, _ := setDoc.Get(k)
		out.Set(k, v)
	}
	return out
}

// DeleteOne removes the first document matching selector, maintaining
// every index.
func (c *Collection) DeleteOne(selector *Document) (ChangeInfo, error) {
	pred, err := Compile(selector)
	if err != nil {
		return ChangeInfo{}, err
	}

	for _, id := range c.findIDs(pred) {
		doc, ok := c.st.get(id)
		if !ok || !Matches(doc, pred) {
			continue
		}
		ixs, _ := c.snapshotIndexes()
		for _, ix := range ixs {
			RemoveDocumentIndexEntries(ix, doc, id)
		}
		c.st.delete(id)
		return ChangeInfo{Matched: 1, Removed: 1}, nil
	}
	return ChangeInfo{}, nil
}

// Count reports the collection's live document count.
func (c *Collection) Count() int { return c.st.len() }
