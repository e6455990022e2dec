package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

// Unit describes how a price-bearing resource is measured and billed.
//
// Older documents and clients send the unit as a bare string ("kg"). Those
// are migrated on decode into Measurement with an empty Currency; encoding
// always produces the structured form.
type Unit struct {
	Measurement string `bson:"measurement" json:"measurement"`
	Currency    string `bson:"currency" json:"currency"`
}

// UnmarshalJSON accepts both the structured and the legacy string form.
func (u *Unit) UnmarshalJSON(data []byte) error {
	var legacy string
	if err := json.Unmarshal(data, &legacy); err == nil {
		*u = Unit{Measurement: legacy}
		return nil
	}

	type plain Unit
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode unit: %w", err)
	}
	*u = Unit(p)
	return nil
}

// UnmarshalBSONValue accepts both the structured and the legacy string form.
func (u *Unit) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bson.TypeString:
		raw := bson.RawValue{Type: t, Value: data}
		*u = Unit{Measurement: raw.StringValue()}
		return nil
	case bson.TypeEmbeddedDocument:
		type plain Unit
		var p plain
		if err := bson.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("decode unit: %w", err)
		}
		*u = Unit(p)
		return nil
	case bson.TypeNull, bson.TypeUndefined:
		*u = Unit{}
		return nil
	default:
		return fmt.Errorf("decode unit: unsupported bson type %s", t)
	}
}

// Timestamp is a point in time that accepts either RFC 3339 or a plain
// calendar date (2006-01-02) from clients. It is stored as a BSON datetime.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t, normalised to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// ParseTimestamp parses RFC 3339 or 2006-01-02 values.
func ParseTimestamp(value string) (Timestamp, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Timestamp{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return NewTimestamp(t), nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid date %q: expected RFC 3339 or %s", value, dateLayout)
	}
	return NewTimestamp(t), nil
}

// MarshalJSON renders the timestamp as RFC 3339 in UTC.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON parses RFC 3339 or 2006-01-02 strings.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode date: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalText lets text based decoders (yaml, flags) share the JSON rules.
func (t *Timestamp) UnmarshalText(text []byte) error {
	parsed, err := ParseTimestamp(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalBSONValue stores the timestamp as a BSON datetime.
func (t Timestamp) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(t.Time.UTC())
}

// UnmarshalBSONValue reads a BSON datetime (or a string written by hand).
func (t *Timestamp) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: bt, Value: data}
	switch bt {
	case bson.TypeDateTime:
		*t = NewTimestamp(raw.Time())
		return nil
	case bson.TypeString:
		parsed, err := ParseTimestamp(raw.StringValue())
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case bson.TypeNull, bson.TypeUndefined:
		*t = Timestamp{}
		return nil
	default:
		return fmt.Errorf("decode date: unsupported bson type %s", bt)
	}
}

// Ref holds the identity of another document as a hex string.
// Nothing in the API verifies that the referenced document exists.
type Ref string

// RefTo builds a reference to the given document id.
func RefTo(id primitive.ObjectID) Ref {
	return Ref(id.Hex())
}

// ObjectID parses the reference back into a document id.
func (r Ref) ObjectID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(string(r))
}

// IsZero reports whether the reference is empty.
func (r Ref) IsZero() bool {
	return r == ""
}

func (r Ref) String() string {
	return string(r)
}

// UnmarshalBSONValue reads references stored either as strings or as ObjectIDs.
func (r *Ref) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeString:
		*r = Ref(raw.StringValue())
	case bson.TypeObjectID:
		*r = RefTo(raw.ObjectID())
	case bson.TypeNull, bson.TypeUndefined:
		*r = ""
	default:
		return fmt.Errorf("decode reference: unsupported bson type %s", t)
	}
	return nil
}

// PriceEntry is a dated price appended to a material or tool.
type PriceEntry struct {
	Price float64   `bson:"price" json:"price"`
	Date  Timestamp `bson:"date" json:"date"`
}

// ValueEntry is a dated value appended to equipment prices or profession rates.
type ValueEntry struct {
	Value float64   `bson:"value" json:"value"`
	Date  Timestamp `bson:"date" json:"date"`
}
