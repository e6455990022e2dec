package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ojmarte/construction-api/internal/health"
	"github.com/ojmarte/construction-api/internal/scheduler"
	"github.com/ojmarte/construction-api/internal/service/resource"
)

type note struct {
	Text string `json:"text"`
}

type notePatch struct {
	Text *string `json:"text"`
}

// stubService answers every call with err, or with a fixed note.
type stubService struct {
	err error
}

func (s stubService) Descriptor() resource.Descriptor {
	return resource.Descriptor{Singular: "note", Plural: "notes", Entry: "line", EntriesField: "lines"}
}

func (s stubService) Create(context.Context, note) (note, error) { return note{Text: "created"}, s.err }
func (s stubService) Get(context.Context, string) (note, error) { return note{Text: "got"}, s.err }
func (s stubService) List(context.Context) ([]note, error) { return []note{}, s.err }
func (s stubService) ListByReference(context.Context, string) ([]note, error) { return nil, s.err }
func (s stubService) Update(context.Context, string, notePatch) (note, error) {
	return note{Text: "updated"}, s.err
}
func (s stubService) Delete(context.Context, string) error { return s.err }
func (s stubService) AppendEntry(context.Context, string, note) (note, error) {
	return note{Text: "appended"}, s.err
}

func newNoteEngine(svc stubService, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewEntryHandler[note, notePatch, note](svc, "", logger)

	r := gin.New()
	r.GET("/notes", h.List)
	r.POST("/notes", h.Create)
	r.GET("/notes/:id", h.Get)
	r.PUT("/notes/:id", h.Update)
	r.DELETE("/notes/:id", h.Delete)
	r.POST("/notes/:id/line", h.AppendEntry)
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestResourceHandler_StatusCodes(t *testing.T) {
	r := newNoteEngine(stubService{}, nil)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/notes", "").Code)
	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/notes", `{"text":"a"}`).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPut, "/notes/1", `{}`).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodDelete, "/notes/1", "").Code)

	rec := serve(r, http.MethodPost, "/notes/1/line", `{"text":"b"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":"appended"}`, rec.Body.String())
}

func TestResourceHandler_ErrorMapping(t *testing.T) {
	opErr := &resource.OperationError{Resource: "note", Op: resource.OpUpdate, Message: "Failed to update note", Err: errors.New("boom")}

	tests := []struct {
		name   string
		err    error
		method string
		path   string
		body   string
		code   int
		want   string
	}{
		{"not found", resource.ErrNotFound, http.MethodGet, "/notes/1", "", http.StatusNotFound, `{"error":"Note not found"}`},
		{"operation error", opErr, http.MethodPut, "/notes/1", `{}`, http.StatusInternalServerError, `{"error":"Failed to update note"}`},
		{"unexpected error", errors.New("surprise"), http.MethodPost, "/notes/1/line", `{}`, http.StatusInternalServerError, `{"error":"Failed to add line to note"}`},
		{"invalid body", nil, http.MethodPost, "/notes", `[`, http.StatusBadRequest, `{"error":"invalid request body"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			r := newNoteEngine(stubService{err: tt.err}, zap.New(core))

			rec := serve(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "surprise")

			if tt.name == "unexpected error" {
				assert.Equal(t, 1, logs.FilterMessage("unexpected service error").Len())
			}
		})
	}
}

var _ StatusReporter = (*scheduler.StorageMonitor)(nil)

type fixedStatus health.StorageStatus

func (f fixedStatus) Status() health.StorageStatus { return health.StorageStatus(f) }

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	checked := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		reporter StatusReporter
		code     int
		body     string
	}{
		{"no monitor", nil, http.StatusOK, `{"status":"ok"}`},
		{"healthy", fixedStatus{Healthy: true, CheckedAt: checked}, http.StatusOK, `{"status":"ok","checked_at":"2024-05-01T12:00:00Z"}`},
		{"down", fixedStatus{CheckedAt: checked, Err: errors.New("dial tcp")}, http.StatusServiceUnavailable,
			`{"status":"unavailable","checked_at":"2024-05-01T12:00:00Z","error":"storage unreachable"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.reporter)
			r := gin.New()
			r.GET("/readyz", h.Ready)
			r.GET("/healthz", h.Live)

			rec := serve(r, http.MethodGet, "/readyz", "")
			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())

			assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/healthz", "").Code)
		})
	}
}
