package doclite

import (
	"testing"

	check "gopkg.in/check.v1"
)

func TestIndexBasic(t *testing.T) {
	ix := NewIndex("age_idx", "age", false, 0)
	AssertNoError(t, ix.Insert(Int64(30), 1), "insert should succeed")
	AssertNoError(t, ix.Insert(Int64(30), 2), "a second document at the same key should succeed")
	AssertEqual(t, 2, ix.Len(), "two distinct entries for an equal key")

	ids := ix.RangeScan(Int64(30), Int64(30))
	AssertEqual(t, 2, len(ids), "range scan should return both entries")
}

func TestIndexUniqueRejectsDuplicateKeyDifferentRecord(t *testing.T) {
	ix := NewIndex("email_idx", "email", true, 0)
	AssertNoError(t, ix.Insert(String("a@example.com"), 1), "first insert should succeed")

	err := ix.Insert(String("a@example.com"), 2)
	AssertError(t, err, "a second record with the same key should violate uniqueness")
	AssertEqual(t, 1, ix.Len(), "the failed insert must not have been written")
}

func TestIndexUniqueAllowsReinsertingSameRecord(t *testing.T) {
	ix := NewIndex("email_idx", "email", true, 0)
	AssertNoError(t, ix.Insert(String("a@example.com"), 1), "first insert should succeed")
	AssertNoError(t, ix.Insert(String("a@example.com"), 1), "re-inserting the same (key, id) pair is not a duplicate")
}

func TestIndexRemoveIsIdempotent(t *testing.T) {
	ix := NewIndex("x_idx", "x", false, 0)
	AssertNoError(t, ix.Insert(Int64(1), 1), "insert should succeed")
	AssertTrue(t, ix.Remove(Int64(1), 1), "first remove should report the entry existed")
	AssertTrue(t, !ix.Remove(Int64(1), 1), "second remove should report nothing was there")
}

// TestGocheck runs the suite below through gocheck's TestingT entry point.
func TestGocheck(t *testing.T) { check.TestingT(t) }

type multikeyIndexSuite struct{}

var _ = check.Suite(&multikeyIndexSuite{})

// TestArrayFieldMarksMultikey exercises the invariant that inserting a
// document whose indexed field is an array flips the multikey flag and
// writes one entry per element.
func (s *multikeyIndexSuite) TestArrayFieldMarksMultikey(c *check.C) {
	ix := NewIndex("tags_idx", "tags", false, 0)
	d := doc("tags", Array([]Value{String("a"), String("b")}))

	c.Assert(ix.IsMultikey(), check.Equals, false)
	err := InsertDocumentIndexEntries(ix, d, 1)
	c.Assert(err, check.IsNil)
	c.Assert(ix.IsMultikey(), check.Equals, true)
	c.Assert(ix.Len(), check.Equals, 2)
}

func (s *multikeyIndexSuite) TestEmptyArrayUsesSentinelEntry(c *check.C) {
	ix := NewIndex("tags_idx", "tags", false, 0)
	d := doc("tags", Array(nil))

	err := InsertDocumentIndexEntries(ix, d, 1)
	c.Assert(err, check.IsNil)
	c.Assert(ix.Len(), check.Equals, 1)
}

func (s *multikeyIndexSuite) TestDuplicateArrayElementsCollapseToOneEntry(c *check.C) {
	ix := NewIndex("tags_idx", "tags", false, 0)
	d := doc("tags", Array([]Value{String("a"), String("a"), String("b")}))

	err := InsertDocumentIndexEntries(ix, d, 1)
	c.Assert(err, check.IsNil)
	c.Assert(ix.Len(), check.Equals, 2)
}

func (s *multikeyIndexSuite) TestRemoveDocumentIndexEntriesClearsEveryElement(c *check.C) {
	ix := NewIndex("tags_idx", "tags", false, 0)
	d := doc("tags", Array([]Value{String("a"), String("b")}))

	c.Assert(InsertDocumentIndexEntries(ix, d, 1), check.IsNil)
	RemoveDocumentIndexEntries(ix, d, 1)
	c.Assert(ix.Len(), check.Equals, 0)
}
