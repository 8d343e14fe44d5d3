// value.go - the typed value model and total order used by indexes (component A)

package doclite

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind tags the payload carried by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt64
	KindDouble
	KindString
	KindBinary
	KindObjectID
	KindTimestamp
	KindDocument
	KindArray

	// kindEmptyArraySentinel never appears in a stored document; it is the
	// distinguished index key an empty array expands to (see §4.5/§9 of
	// the specification this engine implements). It sorts below every
	// other kind.
	kindEmptyArraySentinel
)

// Value is a tagged variant over the document model's scalar and
// compound types. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	bin  []byte
	oid  primitive.ObjectID
	ts   time.Time
	doc  *Document
	arr  []Value
}

func Null() Value                 { return Value{kind: KindNull} }
func Bool(b bool) Value           { return Value{kind: KindBool, b: b} }
func Int64(n int64) Value         { return Value{kind: KindInt64, i: n} }
func Double(f float64) Value      { return Value{kind: KindDouble, f: f} }
func String(s string) Value       { return Value{kind: KindString, s: s} }
func Binary(b []byte) Value       { return Value{kind: KindBinary, bin: append([]byte(nil), b...)} }
func ObjectID(id primitive.ObjectID) Value {
	return Value{kind: KindObjectID, oid: id}
}
func Timestamp(t time.Time) Value { return Value{kind: KindTimestamp, ts: t} }
func DocValue(d *Document) Value  { return Value{kind: KindDocument, doc: d} }
func Array(vs []Value) Value      { return Value{kind: KindArray, arr: vs} }

// emptyArraySentinel is the reserved index key for an empty array field.
func emptyArraySentinel() Value { return Value{kind: kindEmptyArraySentinel} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsArray() bool {
	return v.kind == KindArray
}
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsArray returns the element sequence; it panics if v is not an Array,
// matching §4.1's "fails if v is not Array" contract for iter_array.
func (v Value) AsArray() []Value {
	if v.kind != KindArray {
		panic("doclite: AsArray called on non-array Value")
	}
	return v.arr
}

func (v Value) AsDocument() (*Document, bool) {
	if v.kind != KindDocument {
		return nil, false
	}
	return v.doc, true
}

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// typeRank orders types per §3: Null < Bool < Numeric < String < Document
// < Array < Binary < ObjectId < Timestamp, with the empty-array sentinel
// ranked below everything else so it never collides with a real value.
func typeRank(k Kind) int {
	switch k {
	case kindEmptyArraySentinel:
		return -1
	case KindNull:
		return 0
	case KindBool:
		return 1
	case KindInt64, KindDouble:
		return 2
	case KindString:
		return 3
	case KindDocument:
		return 4
	case KindArray:
		return 5
	case KindBinary:
		return 6
	case KindObjectID:
		return 7
	case KindTimestamp:
		return 8
	default:
		return 99
	}
}

func isNumeric(k Kind) bool { return k == KindInt64 || k == KindDouble }

func (v Value) numeric() float64 {
	if v.kind == KindInt64 {
		return float64(v.i)
	}
	return v.f
}

// Equals implements §3's equality: tags must match except for the
// documented Int64/Double numeric cross-type case, Document equality is
// pairwise-in-order, Array equality is pairwise-by-position.
func Equals(a, b Value) bool {
	if isNumeric(a.kind) && isNumeric(b.kind) {
		if a.kind == b.kind {
			if a.kind == KindInt64 {
				return a.i == b.i
			}
			return a.f == b.f
		}
		// Int64 n equals Double d iff d is finite and d == n exactly.
		var n int64
		var d float64
		if a.kind == KindInt64 {
			n, d = a.i, b.f
		} else {
			n, d = b.i, a.f
		}
		// float64(n) rounds once |n| exceeds 2^53, so the match is confirmed
		// in int64 space; 2^63 itself lies outside int64's range.
		return !math.IsInf(d, 0) && !math.IsNaN(d) && d == float64(n) &&
			d < math.MaxInt64 && int64(d) == n
	}

	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindNull, kindEmptyArraySentinel:
		return true
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindBinary:
		return string(a.bin) == string(b.bin)
	case KindObjectID:
		return a.oid == b.oid
	case KindTimestamp:
		return a.ts.Equal(b.ts)
	case KindDocument:
		return documentEquals(a.doc, b.doc)
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equals(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func documentEquals(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.keys) != len(b.keys) {
		return false
	}
	for i, k := range a.keys {
		if b.keys[i] != k {
			return false
		}
		if !Equals(a.vals[k], b.vals[b.keys[i]]) {
			return false
		}
	}
	return true
}

// Ordering is the result of Compare.
type Ordering int

const (
	Less Ordering = -1
	Equal Ordering = 0
	Greater Ordering = 1
)

// Compare defines the total order from §3 used as B-tree key order by the
// multikey index (component D).
func Compare(a, b Value) Ordering {
	if isNumeric(a.kind) && isNumeric(b.kind) {
		x, y := a.numeric(), b.numeric()
		switch {
		case x < y:
			return Less
		case x > y:
			return Greater
		default:
			return Equal
		}
	}

	ra, rb := typeRank(a.kind), typeRank(b.kind)
	if ra != rb {
		if ra < rb {
			return Less
		}
		return Greater
	}

	switch a.kind {
	case KindNull, kindEmptyArraySentinel:
		return Equal
	case KindBool:
		return compareBool(a.b, b.b)
	case KindString:
		return compareString(a.s, b.s)
	case KindBinary:
		return compareString(string(a.bin), string(b.bin))
	case KindObjectID:
		return compareString(a.oid.Hex(), b.oid.Hex())
	case KindTimestamp:
		switch {
		case a.ts.Before(b.ts):
			return Less
		case a.ts.After(b.ts):
			return Greater
		default:
			return Equal
		}
	case KindDocument:
		return compareDocument(a.doc, b.doc)
	case KindArray:
		return compareArray(a.arr, b.arr)
	default:
		return Equal
	}
}

func compareBool(a, b bool) Ordering {
	if a == b {
		return Equal
	}
	if !a {
		return Less
	}
	return Greater
}

func compareString(a, b string) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

func compareDocument(a, b *Document) Ordering {
	n := len(a.keys)
	if len(b.keys) < n {
		n = len(b.keys)
	}
	for i := 0; i < n; i++ {
		if o := compareString(a.keys[i], b.keys[i]); o != Equal {
			return o
		}
		if o := Compare(a.vals[a.keys[i]], b.vals[b.keys[i]]); o != Equal {
			return o
		}
	}
	return compareInt(len(a.keys), len(b.keys))
}

func compareArray(a, b []Value) Ordering {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if o := Compare(a[i], b[i]); o != Equal {
			return o
		}
	}
	return compareInt(len(a), len(b))
}

func compareInt(a, b int) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

// hashKey returns a deterministic string encoding of v suitable for use as
// a map/set key (de-duplicating array elements per document in §4.5, and
// diffing old/new index entries on update). It is not part of the
// public ordering contract; Compare/Equals remain authoritative.
func (v Value) hashKey() string {
	switch v.kind {
	case KindNull:
		return "n:"
	case kindEmptyArraySentinel:
		return "e:"
	case KindBool:
		return "b:" + strconv.FormatBool(v.b)
	case KindInt64:
		// Numeric cross-type equality means 3 (Int64) and 3.0 (Double)
		// must hash identically.
		return "#:" + strconv.FormatFloat(float64(v.i), 'g', -1, 64)
	case KindDouble:
		return "#:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return "s:" + v.s
	case KindBinary:
		return "x:" + string(v.bin)
	case KindObjectID:
		return "o:" + v.oid.Hex()
	case KindTimestamp:
		return "t:" + v.ts.UTC().Format(time.RFC3339Nano)
	case KindDocument:
		s := "d:{"
		for _, k := range v.doc.keys {
			s += k + "=" + v.doc.vals[k].hashKey() + ";"
		}
		return s + "}"
	case KindArray:
		s := "a:["
		for _, e := range v.arr {
			s += e.hashKey() + ","
		}
		return s + "]"
	default:
		return fmt.Sprintf("?:%v", v.kind)
	}
}

// FromBSON converts a decoded BSON value (as produced by bson.Unmarshal
// into an interface{}, e.g. bson.D/bson.A/primitive.* values) into a
// Value. BSON decode/encode itself stays an external collaborator (§1);
// this is purely the boundary adapter, modeled on the recursive
// type-switch conversion the teacher package uses at its own BSON
// boundary.
func FromBSON(in interface{}) (Value, error) {
	switch v := in.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(v), nil
	case int:
		return Int64(int64(v)), nil
	case int32:
		return Int64(int64(v)), nil
	case int64:
		return Int64(v), nil
	case float64:
		return Double(v), nil
	case string:
		return String(v), nil
	case []byte:
		return Binary(v), nil
	case primitive.Binary:
		return Binary(v.Data), nil
	case primitive.ObjectID:
		return ObjectID(v), nil
	case time.Time:
		return Timestamp(v), nil
	case primitive.DateTime:
		return Timestamp(v.Time()), nil
	case bson.D:
		d := NewDocument()
		for _, e := range v {
			vv, err := FromBSON(e.Value)
			if err != nil {
				return Value{}, err
			}
			d.Set(e.Key, vv)
		}
		return DocValue(d), nil
	case bson.M:
		d := NewDocument()
		for k, raw := range v {
			vv, err := FromBSON(raw)
			if err != nil {
				return Value{}, err
			}
			d.Set(k, vv)
		}
		return DocValue(d), nil
	case bson.A:
		arr := make([]Value, 0, len(v))
		for _, e := range v {
			vv, err := FromBSON(e)
			if err != nil {
				return Value{}, err
			}
			arr = append(arr, vv)
		}
		return Array(arr), nil
	case []interface{}:
		arr := make([]Value, 0, len(v))
		for _, e := range v {
			vv, err := FromBSON(e)
			if err != nil {
				return Value{}, err
			}
			arr = append(arr, vv)
		}
		return Array(arr), nil
	case map[string]interface{}:
		d := NewDocument()
		for k, raw := range v {
			vv, err := FromBSON(raw)
			if err != nil {
				return Value{}, err
			}
			d.Set(k, vv)
		}
		return DocValue(d), nil
	case *Document:
		return DocValue(v), nil
	case Value:
		return v, nil
	default:
		return Value{}, wrapf(ErrTypeMismatch, "unsupported BSON-decoded type %T", in)
	}
}

// ToBSON converts a Value back into the BSON-library shape used for wire
// encode/decode, the mirror of FromBSON.
func (v Value) ToBSON() interface{} {
	switch v.kind {
	case KindNull, kindEmptyArraySentinel:
		return nil
	case KindBool:
		return v.b
	case KindInt64:
		return v.i
	case KindDouble:
		return v.f
	case KindString:
		return v.s
	case KindBinary:
		return primitive.Binary{Data: v.bin}
	case KindObjectID:
		return v.oid
	case KindTimestamp:
		return primitive.NewDateTimeFromTime(v.ts)
	case KindDocument:
		d := bson.D{}
		for _, k := range v.doc.keys {
			d = append(d, bson.E{Key: k, Value: v.doc.vals[k].ToBSON()})
		}
		return d
	case KindArray:
		a := bson.A{}
		for _, e := range v.arr {
			a = append(a, e.ToBSON())
		}
		return a
	default:
		return nil
	}
}
