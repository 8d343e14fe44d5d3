// maintenance.go - index write-path: expanding a document into index
// entries and keeping indexes in sync with insert/remove/update (component E)

package doclite

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Entries expands the value at path into the set of keys a multikey index
// stores for one document, per §4.5:
//
//   - path missing               -> [Null]
//   - path resolves to an array  -> deduplicated elements, in document
//     order; an empty array expands to the reserved sentinel key so it
//     still produces exactly one (removable) index entry
//   - anything else              -> [value]
func Entries(doc *Document, path string) []Value {
	v, found := Resolve(doc, path)
	if !found {
		return []Value{Null()}
	}
	if !v.IsArray() {
		return []Value{v}
	}

	arr := v.AsArray()
	if len(arr) == 0 {
		return []Value{emptyArraySentinel()}
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	out := make([]Value, 0, len(arr))
	for _, e := range arr {
		hk := e.hashKey()
		if seen.Contains(hk) {
			continue
		}
		seen.Add(hk)
		out = append(out, e)
	}
	return out
}

// InsertDocumentIndexEntries expands doc at ix's path and writes every
// resulting entry. If any entry violates a unique constraint, the entries
// already written for this call are rolled back and the first error is
// returned, so a failed insert never leaves a document partially indexed.
func InsertDocumentIndexEntries(ix *Index, doc *Document, id RecordID) error {
	if v, found := Resolve(doc, ix.Path()); found && v.IsArray() {
		ix.markMultikey()
	}

	entries := Entries(doc, ix.Path())
	written := make([]Value, 0, len(entries))
	for _, e := range entries {
		if err := ix.Insert(e, id); err != nil {
			for _, r := range written {
				ix.Remove(r, id)
			}
			return err
		}
		written = append(written, e)
	}
	return nil
}

// RemoveDocumentIndexEntries deletes every entry doc contributed to ix.
// Removal never fails: a missing entry is simply a no-op (§4.4).
func RemoveDocumentIndexEntries(ix *Index, doc *Document, id RecordID) {
	for _, e := range Entries(doc, ix.Path()) {
		ix.Remove(e, id)
	}
}

// UpdateDocumentIndexEntries diffs the entries old and updated documents
// contribute to ix and writes only the delta: entries unique to the
// updated document are inserted, entries unique to the old document are
// removed. Unchanged entries are left untouched so a concurrent range
// scan never observes them disappear and reappear.
func UpdateDocumentIndexEntries(ix *Index, oldDoc, newDoc *Document, id RecordID) error {
	oldEntries := Entries(oldDoc, ix.Path())
	newEntries := Entries(newDoc, ix.Path())

	oldByKey := make(map[string]Value, len(oldEntries))
	oldSet := mapset.NewThreadUnsafeSet[string]()
	for _, e := range oldEntries {
		k := e.hashKey()
		oldByKey[k] = e
		oldSet.Add(k)
	}
	newByKey := make(map[string]Value, len(newEntries))
	newSet := mapset.NewThreadUnsafeSet[string]()
	for _, e := range newEntries {
		k := e.hashKey()
		newByKey[k] = e
		newSet.Add(k)
	}

	if v, found := Resolve(newDoc, ix.Path()); found && v.IsArray() {
		ix.markMultikey()
	}

	toAdd := newSet.Difference(oldSet)
	toRemove := oldSet.Difference(newSet)

	added := make([]string, 0, toAdd.Cardinality())
	for _, k := range toAdd.ToSlice() {
		if err := ix.Insert(newByKey[k], id); err != nil {
			for _, ak := range added {
				ix.Remove(newByKey[ak], id)
			}
			return err
		}
		added = append(added, k)
	}
	for _, k := range toRemove.ToSlice() {
		ix.Remove(oldByKey[k], id)
	}
	return nil
}
