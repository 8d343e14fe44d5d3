// index.go - multikey B-tree index (component D)
//
// Grounded on asaidimu-go-store's core/collection/index.go: a
// btree.Item-implementing composite key plus range scans via
// AscendGreaterOrEqual. Unlike that example, which groups all matching
// document ids behind one tree entry, §4.4 requires (indexed_key,
// record_id) to be the key itself so that duplicate keys across distinct
// documents remain distinct, individually removable B-tree entries.

package doclite

import (
	"sync"
	"sync/atomic"

	"github.com/google/btree"
)

// RecordID is an opaque, monotonically assigned per-collection document
// identifier (§3).
type RecordID uint64

// indexItem is the B-tree key/value pair: the payload is empty (per
// §4.4), only the key tuple (indexed_value, record_id) is stored.
type indexItem struct {
	key Value
	id  RecordID
}

func (a indexItem) Less(other btree.Item) bool {
	b := other.(indexItem)
	switch Compare(a.key, b.key) {
	case Less:
		return true
	case Greater:
		return false
	default:
		return a.id < b.id
	}
}

// Index is a simple-path (single field) multikey secondary index.
type Index struct {
	name   string
	path   string
	unique bool
	seq    int // creation order, used by the planner's tie-break rule

	mu   sync.RWMutex
	tree *btree.BTree

	multikey atomic.Bool
}

// NewIndex creates an empty index on path. seq should be the index's
// position in collection creation order (§4.6's tie-break rule).
func NewIndex(name, path string, unique bool, seq int) *Index {
	return &Index{
		name:   name,
		path:   path,
		unique: unique,
		seq:    seq,
		tree:   btree.New(32),
	}
}

func (ix *Index) Name() string   { return ix.name }
func (ix *Index) Path() string   { return ix.path }
func (ix *Index) Unique() bool   { return ix.unique }
func (ix *Index) Seq() int       { return ix.seq }
func (ix *Index) IsMultikey() bool { return ix.multikey.Load() }
func (ix *Index) markMultikey()    { ix.multikey.Store(true) }

// Len reports the number of entries currently stored.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.tree.Len()
}

// Insert writes one (value, id) entry. It fails with ErrDuplicateKey iff
// the index is unique and an entry with an equal key but a different
// record id already exists (§4.4, §3 invariant 3).
func (ix *Index) Insert(v Value, id RecordID) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.unique {
		dup := false
		ix.tree.AscendGreaterOrEqual(indexItem{key: v, id: 0}, func(item btree.Item) bool {
			it := item.(indexItem)
			if Compare(it.key, v) != Equal {
				return false
			}
			if it.id != id {
				dup = true
				return false
			}
			return true
		})
		if dup {
			return wrapf(ErrDuplicateKey, "index %q: duplicate key for %s", ix.name, ix.path)
		}
	}

	ix.tree.ReplaceOrInsert(indexItem{key: v, id: id})
	return nil
}

// Remove deletes the (value, id) entry if present, reporting whether it
// was found. It is idempotent (§4.4).
func (ix *Index) Remove(v Value, id RecordID) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.tree.Delete(indexItem{key: v, id: id}) != nil
}

// Ascend visits every (value, id) entry with lo <= value <= hi in
// ascending key order, calling fn until it returns false. A plain
// equality scan is Ascend(v, v, fn).
func (ix *Index) Ascend(lo, hi Value, fn func(v Value, id RecordID) bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	ix.tree.AscendGreaterOrEqual(indexItem{key: lo, id: 0}, func(item btree.Item) bool {
		it := item.(indexItem)
		if Compare(it.key, hi) == Greater {
			return false
		}
		return fn(it.key, it.id)
	})
}

// RangeScan collects the record ids of an Ascend call; range_scan(v, v)
// is the equality-probe form the planner uses.
func (ix *Index) RangeScan(lo, hi Value) []RecordID {
	var ids []RecordID
	ix.Ascend(lo, hi, func(_ Value, id RecordID) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}
