// Package resource implements the CRUD contract shared by every catalog
// resource on top of a typed document store.
package resource

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ojmarte/construction-api/internal/repository"
)

// Storage is the subset of repository.Store the services depend on.
type Storage[T any] interface {
	Insert(ctx context.Context, doc T) (T, error)
	FindByID(ctx context.Context, id string) (T, error)
	FindAll(ctx context.Context) ([]T, error)
	FindByReference(ctx context.Context, field, id string) ([]T, error)
	UpdateByID(ctx context.Context, id string, patch any) (T, error)
	DeleteByID(ctx context.Context, id string) error
	PushByID(ctx context.Context, id string, field string, value any) (T, error)
}

// Service exposes create, read, update and delete for documents of type T
// with partial updates expressed as P.
type Service[T any, P any] struct {
	store  Storage[T]
	desc   Descriptor
	logger *zap.Logger
}

// NewService wires a resource service.
func NewService[T any, P any](store Storage[T], desc Descriptor, logger *zap.Logger) *Service[T, P] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service[T, P]{store: store, desc: desc, logger: logger}
}

// Descriptor returns the resource descriptor.
func (s *Service[T, P]) Descriptor() Descriptor {
	return s.desc
}

// Create stores a new document and returns it with its assigned id.
func (s *Service[T, P]) Create(ctx context.Context, doc T) (T, error) {
	var zero T
	created, err := s.store.Insert(ctx, doc)
	if err != nil {
		return zero, s.fail(OpCreate, err)
	}
	return created, nil
}

// Get returns ErrNotFound when id does not exist.
func (s *Service[T, P]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	doc, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, s.fail(OpGet, err)
	}
	return doc, nil
}

// List returns every document. The result may be empty but never nil.
func (s *Service[T, P]) List(ctx context.Context) ([]T, error) {
	docs, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, s.fail(OpList, err)
	}
	return docs, nil
}

// ListByReference returns the documents whose reference field points at key.
func (s *Service[T, P]) ListByReference(ctx context.Context, key string) ([]T, error) {
	if !s.desc.HasReference() {
		return nil, s.fail(OpListByReference, fmt.Errorf("%w: %s", ErrNoReference, s.desc.Plural))
	}

	docs, err := s.store.FindByReference(ctx, s.desc.ReferenceField, key)
	if err != nil {
		return nil, s.fail(OpListByReference, err)
	}
	return docs, nil
}

// Update merges patch into the document and returns the new state. Missing
// documents yield ErrNotFound; nothing is created.
func (s *Service[T, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	var zero T
	doc, err := s.store.UpdateByID(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, s.fail(OpUpdate, err)
	}
	return doc, nil
}

// Delete removes the document. Deleting a missing document succeeds.
func (s *Service[T, P]) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return s.fail(OpDelete, err)
	}
	return nil
}

func (s *Service[T, P]) fail(op Op, err error) error {
	opErr := &OperationError{
		Resource: s.desc.Singular,
		Op:       op,
		Message:  s.desc.Message(op),
		Err:      err,
	}
	s.logger.Error("storage operation failed",
		zap.String("resource", s.desc.Singular),
		zap.String("op", string(op)),
		zap.Error(err))
	return opErr
}

// EntryService adds the append-only entry operation to a Service.
type EntryService[T any, P any, E any] struct {
	*Service[T, P]
}

// NewEntryService wires a resource service whose documents carry an entry list.
func NewEntryService[T any, P any, E any](store Storage[T], desc Descriptor, logger *zap.Logger) *EntryService[T, P, E] {
	return &EntryService[T, P, E]{Service: NewService[T, P](store, desc, logger)}
}

// AppendEntry pushes entry onto the document's entry list and returns the
// updated document, or ErrNotFound.
func (s *EntryService[T, P, E]) AppendEntry(ctx context.Context, id string, entry E) (T, error) {
	var zero T
	if !s.desc.HasEntries() {
		return zero, s.fail(OpAppendEntry, fmt.Errorf("%s has no entry list", s.desc.Plural))
	}

	doc, err := s.store.PushByID(ctx, id, s.desc.EntriesField, entry)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, s.fail(OpAppendEntry, err)
	}
	return doc, nil
}
