// bulk.go - batched mixed insert/update/remove operations (adapted from
// modern_bulk.go's ModernBulk: the accumulate-then-run shape survives,
// WriteModel/ordered-vs-unordered wire semantics do not - every operation
// here runs in its index, best-effort, against the same in-process store)

package doclite

type bulkOpKind int

const (
	bulkInsert bulkOpKind = iota
	bulkUpdate
	bulkRemove
)

type bulkOp struct {
	kind     bulkOpKind
	doc      *Document // insert
	selector *Document // update, remove
	update   *Document // update
}

// Bulk accumulates operations to run against one collection as a single
// batch.
type Bulk struct {
	coll *Collection
	ops  []bulkOp
}

// Bulk starts a new batch against c.
func (c *Collection) Bulk() *Bulk { return &Bulk{coll: c} }

func (b *Bulk) Insert(doc *Document) *Bulk {
	b.ops = append(b.ops, bulkOp{kind: bulkInsert, doc: doc})
	return b
}

func (b *Bulk) Update(selector, update *Document) *Bulk {
	b.ops = append(b.ops, bulkOp{kind: bulkUpdate, selector: selector, update: update})
	return b
}

func (b *Bulk) Remove(selector *Document) *Bulk {
	b.ops = append(b.ops, bulkOp{kind: bulkRemove, selector: selector})
	return b
}

// Run executes every accumulated operation in order, best-effort: a
// failing operation is recorded and the batch continues. The returned
// ChangeInfo sums matched/updated/removed counts across all operations;
// each successful insert adds one to Updated.
func (b *Bulk) Run() (ChangeInfo, error) {
	var info ChangeInfo
	var ecases []BulkErrorCase

	for i, op := range b.ops {
		switch op.kind {
		case bulkInsert:
			if _, err := b.coll.InsertOne(op.doc); err != nil {
				ecases = append(ecases, BulkErrorCase{Index: i, Err: err})
				continue
			}
			info.Updated++
		case bulkUpdate:
			ci, err := b.coll.UpdateOne(op.selector, op.update)
			info.Matched += ci.Matched
			info.Updated += ci.Updated
			if err != nil {
				ecases = append(ecases, BulkErrorCase{Index: i, Err: err})
			}
		case bulkRemove:
			ci, err := b.coll.DeleteOne(op.selector)
			info.Matched += ci.Matched
			info.Removed += ci.Removed
			if err != nil {
				ecases = append(ecases, BulkErrorCase{Index: i, Err: err})
			}
		}
	}

	if len(ecases) > 0 {
		return info, &BulkError{ecases: ecases}
	}
	return info, nil
}
