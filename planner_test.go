package doclite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanUsesEqualityIndexWhenEligible(t *testing.T) {
	ix := NewIndex("age_idx", "age", false, 0)
	require.NoError(t, ix.Insert(Int64(30), 1))
	require.NoError(t, ix.Insert(Int64(40), 2))
	byPath := map[string][]*Index{"age": {ix}}

	pred, err := Compile(doc("age", Int64(30)))
	require.NoError(t, err)

	ids, used := Plan(pred, byPath, func() []RecordID { return []RecordID{1, 2} })
	require.True(t, used)
	require.Equal(t, []RecordID{1}, ids)
}

func TestPlanFallsBackToFullScanWithoutAnEligibleIndex(t *testing.T) {
	pred, err := Compile(doc("age", Int64(30)))
	require.NoError(t, err)

	ids, used := Plan(pred, map[string][]*Index{}, func() []RecordID { return []RecordID{1, 2, 3} })
	require.False(t, used)
	require.Equal(t, []RecordID{1, 2, 3}, ids)
}

func TestPlanAllUsesIntersection(t *testing.T) {
	ix := NewIndex("tags_idx", "tags", false, 0)
	// doc 1: [a, b]; doc 2: [a]; doc 3: [a, b, c]
	require.NoError(t, ix.Insert(String("a"), 1))
	require.NoError(t, ix.Insert(String("b"), 1))
	require.NoError(t, ix.Insert(String("a"), 2))
	require.NoError(t, ix.Insert(String("a"), 3))
	require.NoError(t, ix.Insert(String("b"), 3))
	require.NoError(t, ix.Insert(String("c"), 3))
	byPath := map[string][]*Index{"tags": {ix}}

	all := NewDocument().Set("$all", Array([]Value{String("a"), String("b")}))
	pred, err := Compile(doc("tags", DocValue(all)))
	require.NoError(t, err)

	ids, used := Plan(pred, byPath, func() []RecordID { return []RecordID{1, 2, 3} })
	require.True(t, used)
	require.ElementsMatch(t, []RecordID{1, 3}, ids)
}

func TestPlanInIsEligibleOnlyWhenAllValuesAreScalar(t *testing.T) {
	ix := NewIndex("tags_idx", "tags", false, 0)
	require.NoError(t, ix.Insert(String("a"), 1))
	byPath := map[string][]*Index{"tags": {ix}}

	withArray := NewDocument().Set("$in", Array([]Value{Array([]Value{String("a")})}))
	pred, err := Compile(doc("tags", DocValue(withArray)))
	require.NoError(t, err)

	_, used := Plan(pred, byPath, func() []RecordID { return []RecordID{1} })
	require.False(t, used, "an $in containing an array value is not index-eligible")
}

func TestPlanArrayEqualExactNeverEligible(t *testing.T) {
	ix := NewIndex("tags_idx", "tags", false, 0)
	require.NoError(t, ix.Insert(String("a"), 1))
	byPath := map[string][]*Index{"tags": {ix}}

	pred, err := Compile(doc("tags", Array([]Value{String("a")})))
	require.NoError(t, err)

	_, used := Plan(pred, byPath, func() []RecordID { return []RecordID{1} })
	require.False(t, used)
}
