package doclite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileImplicitAnd(t *testing.T) {
	q := doc("a", Int64(1), "b", String("x"))
	p, err := Compile(q)
	require.NoError(t, err)

	and, ok := p.(And)
	require.True(t, ok)
	require.Len(t, and.Children, 2)
}

func TestCompileOperatorObject(t *testing.T) {
	op := NewDocument().Set("$gte", Int64(10))
	q := doc("age", DocValue(op))

	p, err := Compile(q)
	require.NoError(t, err)

	fp := p.(And).Children[0].(FieldPredicate)
	cmp, ok := fp.Atom.(CompareAtom)
	require.True(t, ok)
	require.Equal(t, OpGTE, cmp.Op)
}

func TestCompileEmptyDocumentIsLiteral(t *testing.T) {
	q := doc("meta", DocValue(NewDocument()))
	p, err := Compile(q)
	require.NoError(t, err)

	fp := p.(And).Children[0].(FieldPredicate)
	_, ok := fp.Atom.(EqualOrContains)
	require.True(t, ok, "an empty document RHS is a literal value, not an operator object")
}

func TestCompileArrayLiteralIsExact(t *testing.T) {
	q := doc("tags", Array([]Value{String("a"), String("b")}))
	p, err := Compile(q)
	require.NoError(t, err)

	fp := p.(And).Children[0].(FieldPredicate)
	_, ok := fp.Atom.(ArrayEqualExact)
	require.True(t, ok)
}

func TestCompileRejectsUnknownOperator(t *testing.T) {
	op := NewDocument().Set("$bogus", Int64(1))
	q := doc("age", DocValue(op))
	_, err := Compile(q)
	require.Error(t, err)
}

func TestCompileRejectsMultipleOperatorsOnOneField(t *testing.T) {
	op := NewDocument().Set("$gte", Int64(1)).Set("$lte", Int64(9))
	q := doc("age", DocValue(op))
	_, err := Compile(q)
	require.Error(t, err)
}

func TestCompileAndOr(t *testing.T) {
	left := doc("a", Int64(1))
	right := doc("b", Int64(2))
	q := NewDocument().Set("$or", Array([]Value{DocValue(left), DocValue(right)}))

	p, err := Compile(q)
	require.NoError(t, err)

	and := p.(And)
	require.Len(t, and.Children, 1)
	_, ok := and.Children[0].(Or)
	require.True(t, ok)
}

func TestCompileNinIsNegatedIn(t *testing.T) {
	op := NewDocument().Set("$nin", Array([]Value{Int64(1), Int64(2)}))
	q := doc("x", DocValue(op))
	p, err := Compile(q)
	require.NoError(t, err)

	fp := p.(And).Children[0].(FieldPredicate)
	_, ok := fp.Atom.(notWrapper)
	require.True(t, ok)
}
