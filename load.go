// load.go - JSON document ingestion
//
// Bulk-loading line-delimited JSON straight into a collection is not part
// of the external API this engine distills, but every tool that sits in
// front of a document store (mongoimport foremost among them) offers it,
// and tidwall/gjson gives a query-free, allocation-light path from raw
// JSON text to a Document without round-tripping through encoding/json
// and interface{}.

package doclite

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseDocument parses one JSON object into a Document.
func ParseDocument(jsonText string) (*Document, error) {
	if !gjson.Valid(jsonText) {
		return nil, wrapf(ErrMalformedQuery, "invalid json document")
	}
	r := gjson.Parse(jsonText)
	if !r.IsObject() {
		return nil, wrapf(ErrTypeMismatch, "top-level json value must be an object")
	}
	return documentFromGJSON(r), nil
}

func documentFromGJSON(r gjson.Result) *Document {
	d := NewDocument()
	r.ForEach(func(key, value gjson.Result) bool {
		d.Set(key.String(), valueFromGJSON(value))
		return true
	})
	return d
}

func valueFromGJSON(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.String:
		return String(r.Str)
	case gjson.Number:
		// A number without a fractional or exponent part that fits an
		// int64 is stored as Int64 so it round-trips exactly and compares
		// equal to the same value written as a Go int; anything else
		// (decimals, exponents, oversized integers) is a Double.
		if !strings.ContainsAny(r.Raw, ".eE") {
			if n, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
				return Int64(n)
			}
		}
		return Double(r.Num)
	case gjson.JSON:
		if r.IsArray() {
			var arr []Value
			r.ForEach(func(_, v gjson.Result) bool {
				arr = append(arr, valueFromGJSON(v))
				return true
			})
			return Array(arr)
		}
		return DocValue(documentFromGJSON(r))
	default:
		return Null()
	}
}

// InsertJSON parses and inserts a single JSON object document.
func (c *Collection) InsertJSON(jsonText string) (RecordID, error) {
	doc, err := ParseDocument(jsonText)
	if err != nil {
		return 0, err
	}
	return c.InsertOne(doc)
}

// InsertManyJSON parses each element of jsonDocs as a standalone JSON
// object and inserts them as a single best-effort batch, mirroring
// mongoimport's one-document-per-line ingestion model. Parsing is not
// best-effort: if any element fails to parse, nothing is inserted.
func (c *Collection) InsertManyJSON(jsonDocs []string) ([]RecordID, error) {
	docs := make([]*Document, 0, len(jsonDocs))
	for i, text := range jsonDocs {
		doc, err := ParseDocument(text)
		if err != nil {
			return nil, wrapf(ErrMalformedQuery, "document %d: %v", i, err)
		}
		docs = append(docs, doc)
	}
	return c.InsertMany(docs)
}
