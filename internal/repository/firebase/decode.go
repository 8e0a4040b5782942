package firebase

import (
	"strconv"
	"strings"
	"time"

	"smartfarm-assistant/internal/model"
)

// Firestore REST wire shapes. Values are tagged unions keyed by type name and
// integers arrive as decimal strings.
type firestoreValue struct {
	NullValue      *struct{}            `json:"nullValue,omitempty"`
	BooleanValue   *bool                `json:"booleanValue,omitempty"`
	IntegerValue   *string              `json:"integerValue,omitempty"`
	DoubleValue    *float64             `json:"doubleValue,omitempty"`
	TimestampValue *string              `json:"timestampValue,omitempty"`
	StringValue    *string              `json:"stringValue,omitempty"`
	MapValue       *firestoreMapValue   `json:"mapValue,omitempty"`
	ArrayValue     *firestoreArrayValue `json:"arrayValue,omitempty"`
}

type firestoreMapValue struct {
	Fields map[string]firestoreValue `json:"fields,omitempty"`
}

type firestoreArrayValue struct {
	Values []firestoreValue `json:"values,omitempty"`
}

type firestoreDocument struct {
	Name   string                    `json:"name,omitempty"`
	Fields map[string]firestoreValue `json:"fields,omitempty"`
}

type runQueryResult struct {
	Document *firestoreDocument `json:"document,omitempty"`
}

// decodeDocument flattens a Firestore document into a Record and keeps the
// trailing path segment as the document ID.
func decodeDocument(doc *firestoreDocument) model.Record {
	if doc == nil {
		return nil
	}
	rec := decodeFields(doc.Fields)
	if doc.Name != "" {
		if i := strings.LastIndex(doc.Name, "/"); i >= 0 {
			rec["_id"] = doc.Name[i+1:]
		}
	}
	return rec
}

func decodeFields(fields map[string]firestoreValue) model.Record {
	rec := make(model.Record, len(fields))
	for k, v := range fields {
		rec[k] = decodeValue(v)
	}
	return rec
}

func decodeValue(v firestoreValue) any {
	switch {
	case v.BooleanValue != nil:
		return *v.BooleanValue
	case v.IntegerValue != nil:
		n, err := strconv.ParseInt(*v.IntegerValue, 10, 64)
		if err != nil {
			return *v.IntegerValue
		}
		return float64(n)
	case v.DoubleValue != nil:
		return *v.DoubleValue
	case v.TimestampValue != nil:
		if ts, err := time.Parse(time.RFC3339Nano, *v.TimestampValue); err == nil {
			return ts
		}
		return *v.TimestampValue
	case v.StringValue != nil:
		return *v.StringValue
	case v.MapValue != nil:
		return map[string]any(decodeFields(v.MapValue.Fields))
	case v.ArrayValue != nil:
		out := make([]any, 0, len(v.ArrayValue.Values))
		for _, item := range v.ArrayValue.Values {
			out = append(out, decodeValue(item))
		}
		return out
	}
	return nil
}

// encodeValue builds the typed wire value for a plain Go value. Only the
// shapes this client writes are covered.
func encodeValue(v any) firestoreValue {
	switch t := v.(type) {
	case bool:
		return firestoreValue{BooleanValue: &t}
	case string:
		return firestoreValue{StringValue: &t}
	case float64:
		return firestoreValue{DoubleValue: &t}
	case int:
		s := strconv.Itoa(t)
		return firestoreValue{IntegerValue: &s}
	case time.Time:
		s := t.UTC().Format(time.RFC3339Nano)
		return firestoreValue{TimestampValue: &s}
	}
	return firestoreValue{NullValue: &struct{}{}}
}
