package doclite

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestEqualsNumericCrossType(t *testing.T) {
	AssertTrue(t, Equals(Int64(3), Double(3.0)), "int64 3 should equal double 3.0")
	AssertTrue(t, !Equals(Int64(3), Double(3.5)), "int64 3 should not equal double 3.5")
}

func TestEqualsDocumentPairwise(t *testing.T) {
	a := doc("x", Int64(1), "y", String("a"))
	b := doc("x", Int64(1), "y", String("a"))
	c := doc("y", String("a"), "x", Int64(1))

	AssertTrue(t, Equals(DocValue(a), DocValue(b)), "identical key order should be equal")
	AssertTrue(t, !Equals(DocValue(a), DocValue(c)), "differing key order should not be equal")
}

func TestCompareTypeRank(t *testing.T) {
	AssertEqual(t, Less, Compare(Null(), Bool(false)), "Null < Bool")
	AssertEqual(t, Less, Compare(Bool(true), Int64(0)), "Bool < Numeric")
	AssertEqual(t, Less, Compare(Int64(1), String("a")), "Numeric < String")
	AssertEqual(t, Less, Compare(String("z"), DocValue(NewDocument())), "String < Document")
	AssertEqual(t, Less, Compare(DocValue(NewDocument()), Array(nil)), "Document < Array")
	AssertEqual(t, Less, Compare(Array(nil), Binary([]byte("x"))), "Array < Binary")
}

func TestCompareEmptyArraySentinelRanksLowest(t *testing.T) {
	AssertEqual(t, Less, Compare(emptyArraySentinel(), Null()), "sentinel sorts below Null")
}

func TestFromBSONRoundTrip(t *testing.T) {
	in := bson.D{
		{Key: "name", Value: "ada"},
		{Key: "tags", Value: bson.A{"a", "b", "a"}},
		{Key: "nested", Value: bson.D{{Key: "n", Value: int32(7)}}},
	}
	v, err := FromBSON(in)
	AssertNoError(t, err, "FromBSON should not fail on a well-formed bson.D")

	d, ok := v.AsDocument()
	AssertTrue(t, ok, "top level value should be a Document")

	name, _ := d.Get("name")
	s, ok := name.AsString()
	AssertTrue(t, ok, "name should decode as a string")
	AssertEqual(t, "ada", s, "name value")

	tags, _ := d.Get("tags")
	AssertTrue(t, tags.IsArray(), "tags should decode as an array")
	AssertEqual(t, 3, len(tags.AsArray()), "tags length")

	back := v.ToBSON()
	_, ok = back.(bson.D)
	AssertTrue(t, ok, "ToBSON should produce a bson.D for a Document value")
}

func TestResolveDottedPath(t *testing.T) {
	inner := doc("city", String("nyc"))
	d := doc("address", DocValue(inner))

	v, found := Resolve(d, "address.city")
	AssertTrue(t, found, "address.city should resolve")
	s, _ := v.AsString()
	AssertEqual(t, "nyc", s, "resolved city")

	_, found = Resolve(d, "address.zip")
	AssertTrue(t, !found, "address.zip should not resolve")
}
