package repository

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrSchemaViolation is matched by every *SchemaError.
var ErrSchemaViolation = errors.New("schema violation")

// SchemaError lists the required paths a document is missing.
type SchemaError struct {
	Collection string
	Missing    []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required fields %s", e.Collection, strings.Join(e.Missing, ", "))
}

// Is lets callers match with errors.Is(err, ErrSchemaViolation).
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaViolation
}

// Schema describes what the storage layer enforces for a collection.
//
// Required holds dotted bson paths that must be present on insert. Strings
// must be non-empty and datetimes non-zero; numbers only need to be present.
// Arrays holds fields that are always stored as arrays, so a missing or null
// value is written as an empty array.
type Schema struct {
	Collection string
	Required   []string
	Arrays     []string
}

// Prepare encodes doc for insertion: it drops any client supplied _id,
// defaults array fields and checks the required paths.
func (s Schema) Prepare(doc any) (bson.M, error) {
	m, err := toDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s document: %w", s.Collection, err)
	}
	delete(m, "_id")

	for _, field := range s.Arrays {
		if v, ok := m[field]; !ok || v == nil {
			m[field] = bson.A{}
		}
	}

	if err := s.Check(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Check verifies that every required path holds a usable value.
func (s Schema) Check(doc bson.M) error {
	var missing []string
	for _, path := range s.Required {
		v, ok := lookup(doc, strings.Split(path, "."))
		if !ok || isBlank(v) {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Collection: s.Collection, Missing: missing}
	}
	return nil
}

func lookup(doc any, path []string) (any, bool) {
	if len(path) == 0 {
		return doc, true
	}

	var (
		v  any
		ok bool
	)
	switch d := doc.(type) {
	case bson.M:
		v, ok = d[path[0]]
	case map[string]any:
		v, ok = d[path[0]]
	case bson.D:
		for _, e := range d {
			if e.Key == path[0] {
				v, ok = e.Value, true
				break
			}
		}
	}
	if !ok {
		return nil, false
	}
	return lookup(v, path[1:])
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case primitive.DateTime:
		return x.Time().IsZero()
	case primitive.Null, primitive.Undefined:
		return true
	}
	return false
}
