// Package memory provides an in-process document store used for local
// development and tests. It mirrors the single-document semantics of the
// MongoDB backend: atomic push, last-write-wins updates and idempotent deletes.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ojmarte/construction-api/internal/repository"
)

// Database is a set of named in-memory collections.
type Database struct {
	mu          sync.Mutex
	collections map[string]*Collection
}

func NewDatabase() *Database {
	return &Database{collections: make(map[string]*Collection)}
}

// Collection returns the named collection, creating it on first use.
func (d *Database) Collection(name string) repository.Collection {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.collections[name]
	if !ok {
		c = newCollection(name)
		d.collections[name] = c
	}
	return c
}

func (d *Database) Ping(context.Context) error { return nil }

func (d *Database) Close(context.Context) error { return nil }

// Collection keeps documents as BSON in insertion order.
type Collection struct {
	name string

	mu    sync.RWMutex
	order []primitive.ObjectID
	docs  map[primitive.ObjectID]bson.Raw

	// fail, when set, is returned by every operation.
	fail error
}

func newCollection(name string) *Collection {
	return &Collection{name: name, docs: make(map[primitive.ObjectID]bson.Raw)}
}

// FailWith makes every subsequent operation return err. Passing nil heals it.
func (c *Collection) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fail = err
}

// Len returns the number of stored documents.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

func (c *Collection) InsertOne(_ context.Context, doc bson.M) (bson.Raw, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return nil, c.fail
	}

	stored := make(bson.M, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}

	id, ok := stored["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		stored["_id"] = id
	}
	if _, exists := c.docs[id]; exists {
		return nil, fmt.Errorf("duplicate key %s in %s", id.Hex(), c.name)
	}

	raw, err := bson.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	c.docs[id] = raw
	c.order = append(c.order, id)
	return raw, nil
}

func (c *Collection) FindByID(_ context.Context, id primitive.ObjectID) (bson.Raw, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.fail != nil {
		return nil, c.fail
	}

	raw, ok := c.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return raw, nil
}

// Find supports equality filters on top-level fields.
func (c *Collection) Find(_ context.Context, filter bson.M) ([]bson.Raw, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.fail != nil {
		return nil, c.fail
	}

	out := make([]bson.Raw, 0, len(c.order))
	for _, id := range c.order {
		raw := c.docs[id]
		ok, err := matches(raw, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, raw)
		}
	}
	return out, nil
}

// UpdateByID builds a new document from the stored one with the set fields
// replaced. The stored value is swapped, never modified in place.
func (c *Collection) UpdateByID(_ context.Context, id primitive.ObjectID, set bson.M) (bson.Raw, error) {
	return c.modify(id, func(doc bson.M) error {
		for k, v := range set {
			doc[k] = v
		}
		return nil
	})
}

func (c *Collection) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}

	if _, ok := c.docs[id]; !ok {
		return nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *Collection) PushByID(_ context.Context, id primitive.ObjectID, field string, value any) (bson.Raw, error) {
	return c.modify(id, func(doc bson.M) error {
		switch current := doc[field].(type) {
		case nil:
			doc[field] = bson.A{value}
		case bson.A:
			next := make(bson.A, 0, len(current)+1)
			next = append(next, current...)
			doc[field] = append(next, value)
		default:
			return fmt.Errorf("the field '%s' must be an array but is of type %T", field, current)
		}
		return nil
	})
}

func (c *Collection) modify(id primitive.ObjectID, fn func(doc bson.M) error) (bson.Raw, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return nil, c.fail
	}

	raw, ok := c.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode stored document: %w", err)
	}
	if err := fn(doc); err != nil {
		return nil, err
	}
	doc["_id"] = id

	next, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	c.docs[id] = next
	return next, nil
}

func matches(raw bson.Raw, filter bson.M) (bool, error) {
	if len(filter) == 0 {
		return true, nil
	}

	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return false, fmt.Errorf("decode stored document: %w", err)
	}

	for field, want := range filter {
		got, ok := doc[field]
		if !ok {
			return false, nil
		}
		if !matchValue(got, want) {
			return false, nil
		}
	}
	return true, nil
}

// matchValue supports plain equality and the $in operator.
func matchValue(got, want any) bool {
	ops, ok := want.(bson.M)
	if !ok {
		return equal(got, want)
	}
	in, ok := ops["$in"]
	if !ok || len(ops) != 1 {
		return equal(got, want)
	}

	var candidates []any
	switch v := in.(type) {
	case bson.A:
		candidates = v
	case []any:
		candidates = v
	default:
		return false
	}
	for _, c := range candidates {
		if equal(got, c) {
			return true
		}
	}
	return false
}

// equal compares a decoded BSON value with a filter value by re-encoding the
// filter value, so that typed Go values compare like their stored form.
func equal(got, want any) bool {
	t, data, err := bson.MarshalValue(want)
	if err != nil {
		return false
	}
	var normalized any
	if err := (bson.RawValue{Type: t, Value: data}).Unmarshal(&normalized); err != nil {
		return false
	}
	return reflect.DeepEqual(got, normalized)
}
