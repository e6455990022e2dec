package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound indicates no document matches the requested id.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidID indicates the id is not a well-formed ObjectID.
	ErrInvalidID = errors.New("invalid document id")
)

// Collection is the set of single-document operations a document store
// backend must provide. Documents travel as raw BSON so that backends stay
// independent of the Go types stored in them.
type Collection interface {
	InsertOne(ctx context.Context, doc bson.M) (bson.Raw, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (bson.Raw, error)
	Find(ctx context.Context, filter bson.M) ([]bson.Raw, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (bson.Raw, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	PushByID(ctx context.Context, id primitive.ObjectID, field string, value any) (bson.Raw, error)
}

// Database hands out collections by name.
type Database interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Store is a typed view over a Collection. It applies the collection schema
// on insert and decodes documents into T.
type Store[T any] struct {
	coll   Collection
	schema Schema
}

// NewStore binds a typed store to the schema's collection in db.
func NewStore[T any](db Database, schema Schema) *Store[T] {
	return &Store[T]{coll: db.Collection(schema.Collection), schema: schema}
}

// Schema returns the schema the store enforces.
func (s *Store[T]) Schema() Schema {
	return s.schema
}

// Insert validates and stores doc, returning it with its assigned id.
func (s *Store[T]) Insert(ctx context.Context, doc T) (T, error) {
	var zero T

	prepared, err := s.schema.Prepare(doc)
	if err != nil {
		return zero, err
	}

	raw, err := s.coll.InsertOne(ctx, prepared)
	if err != nil {
		return zero, fmt.Errorf("insert into %s: %w", s.schema.Collection, err)
	}
	return decode[T](raw)
}

// FindByID returns ErrNotFound when no document has the given id.
func (s *Store[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T

	oid, err := ParseID(id)
	if err != nil {
		return zero, err
	}

	raw, err := s.coll.FindByID(ctx, oid)
	if err != nil {
		return zero, err
	}
	return decode[T](raw)
}

// FindAll returns every document in storage order. The slice is never nil.
func (s *Store[T]) FindAll(ctx context.Context) ([]T, error) {
	return s.find(ctx, bson.M{})
}

// FindByField returns documents whose field equals value.
func (s *Store[T]) FindByField(ctx context.Context, field string, value any) ([]T, error) {
	return s.find(ctx, bson.M{field: value})
}

// FindByReference returns documents whose field points at id. Older records
// hold the reference as an ObjectID rather than its hex string, so a key that
// parses as an ObjectID matches both forms.
func (s *Store[T]) FindByReference(ctx context.Context, field, id string) ([]T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return s.find(ctx, bson.M{field: id})
	}
	return s.find(ctx, bson.M{field: bson.M{"$in": bson.A{id, oid}}})
}

// UpdateByID merges the non-empty fields of patch into the document and
// returns the result. Fields absent from the patch are left untouched.
func (s *Store[T]) UpdateByID(ctx context.Context, id string, patch any) (T, error) {
	var zero T

	oid, err := ParseID(id)
	if err != nil {
		return zero, err
	}

	set, err := toDocument(patch)
	if err != nil {
		return zero, fmt.Errorf("encode patch: %w", err)
	}
	delete(set, "_id")

	var raw bson.Raw
	if len(set) == 0 {
		raw, err = s.coll.FindByID(ctx, oid)
	} else {
		raw, err = s.coll.UpdateByID(ctx, oid, set)
	}
	if err != nil {
		return zero, err
	}
	return decode[T](raw)
}

// DeleteByID removes the document if present. Missing ids are not an error.
func (s *Store[T]) DeleteByID(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	return s.coll.DeleteByID(ctx, oid)
}

// PushByID appends value to the array field and returns the updated document.
func (s *Store[T]) PushByID(ctx context.Context, id string, field string, value any) (T, error) {
	var zero T

	oid, err := ParseID(id)
	if err != nil {
		return zero, err
	}

	raw, err := s.coll.PushByID(ctx, oid, field, value)
	if err != nil {
		return zero, err
	}
	return decode[T](raw)
}

func (s *Store[T]) find(ctx context.Context, filter bson.M) ([]T, error) {
	raws, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		doc, err := decode[T](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// ParseID converts a hex id into an ObjectID, wrapping ErrInvalidID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w %q", ErrInvalidID, id)
	}
	return oid, nil
}

func decode[T any](raw bson.Raw) (T, error) {
	var out T
	if err := bson.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode document: %w", err)
	}
	return out, nil
}

func toDocument(v any) (bson.M, error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	doc := bson.M{}
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
