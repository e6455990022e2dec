package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ojmarte/construction-api/internal/service/resource"
)

// ResourceService describes the operations the HTTP layer performs on a resource.
type ResourceService[T any, P any] interface {
	Descriptor() resource.Descriptor
	Create(ctx context.Context, doc T) (T, error)
	Get(ctx context.Context, id string) (T, error)
	List(ctx context.Context) ([]T, error)
	ListByReference(ctx context.Context, key string) ([]T, error)
	Update(ctx context.Context, id string, patch P) (T, error)
	Delete(ctx context.Context, id string) error
}

// EntryResourceService adds entry appends to ResourceService.
type EntryResourceService[T any, P any, E any] interface {
	ResourceService[T, P]
	AppendEntry(ctx context.Context, id string, entry E) (T, error)
}

// ResourceHandler adapts a resource service to gin handlers.
type ResourceHandler[T any, P any] struct {
	svc     ResourceService[T, P]
	idParam string
	logger  *zap.Logger
}

// NewResourceHandler constructs the HTTP handler adapter. idParam names the
// path parameter holding the document id.
func NewResourceHandler[T any, P any](svc ResourceService[T, P], idParam string, logger *zap.Logger) *ResourceHandler[T, P] {
	if logger == nil {
		logger = zap.NewNop()
	}
	if idParam == "" {
		idParam = "id"
	}
	return &ResourceHandler[T, P]{svc: svc, idParam: idParam, logger: logger}
}

// List returns every document as a JSON array.
func (h *ResourceHandler[T, P]) List(c *gin.Context) {
	docs, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, resource.OpList, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// Get returns one document or 404.
func (h *ResourceHandler[T, P]) Get(c *gin.Context) {
	doc, err := h.svc.Get(c.Request.Context(), c.Param(h.idParam))
	if err != nil {
		h.respondError(c, resource.OpGet, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// ListByReference returns a handler listing the documents that reference the
// parent id found in the given path parameter.
func (h *ResourceHandler[T, P]) ListByReference(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, err := h.svc.ListByReference(c.Request.Context(), c.Param(param))
		if err != nil {
			h.respondError(c, resource.OpListByReference, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

// Create stores the request body as a new document.
func (h *ResourceHandler[T, P]) Create(c *gin.Context) {
	var doc T
	if !h.bind(c, &doc) {
		return
	}

	created, err := h.svc.Create(c.Request.Context(), doc)
	if err != nil {
		h.respondError(c, resource.OpCreate, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update applies the request body as a partial update.
func (h *ResourceHandler[T, P]) Update(c *gin.Context) {
	var patch P
	if !h.bind(c, &patch) {
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param(h.idParam), patch)
	if err != nil {
		h.respondError(c, resource.OpUpdate, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete always answers 204 unless the storage layer fails.
func (h *ResourceHandler[T, P]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param(h.idParam)); err != nil {
		h.respondError(c, resource.OpDelete, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResourceHandler[T, P]) bind(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		h.logger.Warn("invalid request body",
			zap.String("resource", h.svc.Descriptor().Singular),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func (h *ResourceHandler[T, P]) respondError(c *gin.Context, op resource.Op, err error) {
	desc := h.svc.Descriptor()

	if errors.Is(err, resource.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": desc.NotFoundMessage()})
		return
	}

	message := desc.Message(op)
	var opErr *resource.OperationError
	if errors.As(err, &opErr) {
		message = opErr.Message
	} else {
		h.logger.Error("unexpected service error",
			zap.String("resource", desc.Singular),
			zap.String("op", string(op)),
			zap.Error(err))
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// EntryHandler adds the entry append endpoint to ResourceHandler.
type EntryHandler[T any, P any, E any] struct {
	*ResourceHandler[T, P]
	entries EntryResourceService[T, P, E]
}

// NewEntryHandler constructs the handler for resources with an entry list.
func NewEntryHandler[T any, P any, E any](svc EntryResourceService[T, P, E], idParam string, logger *zap.Logger) *EntryHandler[T, P, E] {
	return &EntryHandler[T, P, E]{
		ResourceHandler: NewResourceHandler[T, P](svc, idParam, logger),
		entries:         svc,
	}
}

// AppendEntry appends the request body to the document's entry list.
func (h *EntryHandler[T, P, E]) AppendEntry(c *gin.Context) {
	var entry E
	if !h.bind(c, &entry) {
		return
	}

	doc, err := h.entries.AppendEntry(c.Request.Context(), c.Param(h.idParam), entry)
	if err != nil {
		h.respondError(c, resource.OpAppendEntry, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
