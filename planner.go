// planner.go - chooses an index-assisted scan over a full scan when one
// of the top-level query atoms is eligible, and tracks how often it does (component F)

package doclite

import (
	"sort"
	"sync/atomic"

	mapset "github.com/deckarep/golang-set/v2"
)

// Metrics accumulates counters a caller can inspect after running finds.
// find_by_index_count is the one the specification names explicitly; it
// counts finds whose candidate set came from an index probe rather than a
// full collection scan.
type Metrics struct {
	findByIndexCount uint64
	fullScanCount    uint64
}

func NewMetrics() *Metrics { return &Metrics{} }

func (m *Metrics) FindByIndexCount() uint64 { return atomic.LoadUint64(&m.findByIndexCount) }
func (m *Metrics) FullScanCount() uint64    { return atomic.LoadUint64(&m.fullScanCount) }

func (m *Metrics) recordIndexUsed() { atomic.AddUint64(&m.findByIndexCount, 1) }
func (m *Metrics) recordFullScan()  { atomic.AddUint64(&m.fullScanCount, 1) }

// candidate is one index's proposed result set for a single top-level
// query atom.
type candidate struct {
	ix             *Index
	ids            []RecordID
	estimate       int
	isIntersection bool
}

// Plan picks the candidate record-id set to confirm against the full
// predicate. If pred's top level is an And with at least one eligible
// field atom, the chosen index's candidates are returned together with
// usedIndex=true; otherwise allIDs is returned and usedIndex is false.
// Either way the caller must still re-check every candidate with Matches:
// Plan only narrows, it never decides (index probes can return documents
// that later fail other conjuncts, and $in unions and $all intersections
// require no false negatives, not an exact answer).
func Plan(pred Predicate, indexesByPath map[string][]*Index, allIDs func() []RecordID) ([]RecordID, bool) {
	and, ok := pred.(And)
	if !ok {
		return allIDs(), false
	}

	cands := eligibleCandidates(and.Children, indexesByPath)
	if len(cands) == 0 {
		return allIDs(), false
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].isIntersection != cands[j].isIntersection {
			return cands[i].isIntersection
		}
		if cands[i].estimate != cands[j].estimate {
			return cands[i].estimate < cands[j].estimate
		}
		return cands[i].ix.Seq() < cands[j].ix.Seq()
	})

	return cands[0].ids, true
}

// eligibleCandidates implements the per-atom-type eligibility rules: a
// scalar EqualOrContains or an all-scalar In becomes a union of equality
// probes; All becomes an intersection of per-value probes (each array
// element produces its own multikey entry, so no array containing every
// value is missed; a scalar field equal to the single value also shows up
// and is rejected by Matches); ArrayEqualExact and any
// atom referencing a field with no index are never eligible and fall
// through to the full scan.
func eligibleCandidates(children []Predicate, indexesByPath map[string][]*Index) []candidate {
	var out []candidate
	for _, c := range children {
		fp, ok := c.(FieldPredicate)
		if !ok {
			continue
		}
		ixs := indexesByPath[fp.Path]
		if len(ixs) == 0 {
			continue
		}

		switch a := fp.Atom.(type) {
		case EqualOrContains:
			if a.V.IsArray() {
				continue
			}
			for _, ix := range ixs {
				ids := ix.RangeScan(a.V, a.V)
				out = append(out, candidate{ix: ix, ids: ids, estimate: len(ids)})
			}
		case In:
			if !allScalar(a.Values) {
				continue
			}
			for _, ix := range ixs {
				set := mapset.NewThreadUnsafeSet[RecordID]()
				for _, v := range a.Values {
					for _, id := range ix.RangeScan(v, v) {
						set.Add(id)
					}
				}
				out = append(out, candidate{ix: ix, ids: set.ToSlice(), estimate: set.Cardinality()})
			}
		case All:
			if len(a.Values) == 0 {
				continue
			}
			for _, ix := range ixs {
				inter := probeSet(ix, a.Values[0])
				for _, v := range a.Values[1:] {
					inter = inter.Intersect(probeSet(ix, v))
				}
				out = append(out, candidate{
					ix:             ix,
					ids:            inter.ToSlice(),
					estimate:       inter.Cardinality(),
					isIntersection: true,
				})
			}
		}
	}
	return out
}

func probeSet(ix *Index, v Value) mapset.Set[RecordID] {
	s := mapset.NewThreadUnsafeSet[RecordID]()
	for _, id := range ix.RangeScan(v, v) {
		s.Add(id)
	}
	return s
}

func allScalar(vs []Value) bool {
	for _, v := range vs {
		if v.IsArray() {
			return false
		}
	}
	return true
}
