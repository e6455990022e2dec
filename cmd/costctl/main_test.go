package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ojmarte/construction-api/internal/repository/memory"
	"github.com/ojmarte/construction-api/internal/server/handlers"
	"github.com/ojmarte/construction-api/internal/server/router"
	"github.com/ojmarte/construction-api/internal/service/catalog"
	"github.com/ojmarte/construction-api/pkg/clients/costapi"
)

func newAPIServer(t *testing.T) string {
	t.Helper()
	api := handlers.NewAPI(catalog.NewServices(memory.NewDatabase(), nil), nil)
	srv := httptest.NewServer(router.New(api, router.Options{}, nil))
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func execute(t *testing.T, apiURL string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api-url", apiURL}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func listDocs(t *testing.T, apiURL, resource string, extra ...string) []map[string]any {
	t.Helper()
	out, err := execute(t, apiURL, append([]string{"list", resource}, extra...)...)
	require.NoError(t, err, out)
	var docs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &docs), out)
	return docs
}

func TestSeedAndList(t *testing.T) {
	apiURL := newAPIServer(t)

	out, err := execute(t, apiURL, "seed", "--file", filepath.Join("testdata", "catalog.yaml"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "materials: 2 created")
	assert.Contains(t, out, "workers: 1 created")
	assert.Contains(t, out, "Seeded 4 documents.")

	materials := listDocs(t, apiURL, "materials")
	require.Len(t, materials, 2)
	assert.Equal(t, "Cement", materials[0]["material_name"])
	assert.Len(t, materials[0]["prices"], 1)
	assert.Equal(t, []any{}, materials[1]["prices"])

	out, err = execute(t, apiURL, "list", "tools", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "tool_name: Trowel")
}

func TestSeed_DryRunCreatesNothing(t *testing.T) {
	apiURL := newAPIServer(t)

	out, err := execute(t, apiURL, "seed", "-f", filepath.Join("testdata", "catalog.yaml"), "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "materials: 2 to create")
	assert.Empty(t, listDocs(t, apiURL, "materials"))
}

func TestSeed_RejectsUnknownResource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bricks:\n  - name: red\n"), 0o600))

	_, err := execute(t, newAPIServer(t), "seed", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown resource "bricks"`)
}

func TestSeed_ReportsFailedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	content := "materials:\n  - material_name: Gravel\n    category: Aggregate\n    unit: t\n  - category: Missing name\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := execute(t, newAPIServer(t), "seed", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seeding materials #2")
	assert.Contains(t, err.Error(), "Failed to create material")
}

func TestGetAddEntryDelete(t *testing.T) {
	apiURL := newAPIServer(t)
	_, err := execute(t, apiURL, "seed", "-f", filepath.Join("testdata", "catalog.yaml"))
	require.NoError(t, err)

	worker := listDocs(t, apiURL, "workers")[0]
	id := worker["id"].(string)

	out, err := execute(t, apiURL, "add-entry", "workers", id, "--amount", "85", "--date", "2024-06-01")
	require.NoError(t, err, out)
	var updated map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	rates := updated["rates"].([]any)
	require.Len(t, rates, 1)
	assert.Equal(t, map[string]any{"value": float64(85), "date": "2024-06-01T00:00:00Z"}, rates[0])

	out, err = execute(t, apiURL, "get", "workers", id)
	require.NoError(t, err)
	assert.Contains(t, out, `"worker_name": "Mason"`)

	out, err = execute(t, apiURL, "delete", "workers", id)
	require.NoError(t, err)
	assert.Equal(t, "Deleted workers: "+id+"\n", out)

	_, err = execute(t, apiURL, "get", "workers", id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, costapi.ErrNotFound))
}

func TestAddEntry_Validation(t *testing.T) {
	apiURL := newAPIServer(t)

	_, err := execute(t, apiURL, "add-entry", "jobs", primitive.NewObjectID().Hex(), "--amount", "1")
	assert.ErrorContains(t, err, "does not keep prices or rates")

	_, err = execute(t, apiURL, "add-entry", "materials", primitive.NewObjectID().Hex(), "--amount", "1", "--date", "June")
	assert.ErrorContains(t, err, "invalid date")

	_, err = execute(t, apiURL, "add-entry", "materials", primitive.NewObjectID().Hex(), "--amount", "1")
	assert.True(t, errors.Is(err, costapi.ErrNotFound))

	_, err = execute(t, apiURL, "list", "materials", "-o", "xml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestListByReference(t *testing.T) {
	apiURL := newAPIServer(t)
	client := costapi.NewClient(apiURL, 0)
	ctx := context.Background()

	eq, err := client.Create(ctx, costapi.Equipment, map[string]any{
		"equipment_name": "Mixer", "category": "Concrete", "unit": "hour",
	})
	require.NoError(t, err)

	for _, ref := range []string{eq.ID(), primitive.NewObjectID().Hex()} {
		_, err := client.Create(ctx, costapi.EquipmentPerformance, map[string]any{
			"equipment_id": ref, "equipment_type": "Mixer", "performance_name": "Output", "unit": "m3/h",
		})
		require.NoError(t, err)
	}

	docs := listDocs(t, apiURL, "equipment-performance", "--by", eq.ID())
	require.Len(t, docs, 1)
	assert.Equal(t, eq.ID(), docs[0]["equipment_id"])

	_, err = execute(t, apiURL, "list", "tools", "--by", eq.ID())
	assert.ErrorContains(t, err, "cannot be listed by reference")
}

func TestRefs(t *testing.T) {
	apiURL := newAPIServer(t)
	client := costapi.NewClient(apiURL, 0)
	ctx := context.Background()

	worker, err := client.Create(ctx, costapi.Workers, map[string]any{
		"worker_name": "Mason", "category": "Skilled", "level": "Senior", "unit": "day",
	})
	require.NoError(t, err)

	out, err := execute(t, apiURL, "refs")
	require.NoError(t, err)
	assert.Equal(t, "All references resolve.\n", out)

	missingTool := primitive.NewObjectID().Hex()
	_, err = client.Create(ctx, costapi.Jobs, map[string]any{
		"job_name":     "Wall",
		"job_yield":    map[string]any{"unit": "m2", "value": 10},
		"job_date":     "2024-04-01",
		"worker_group": []any{map[string]any{"worker_id": worker.ID(), "quantity": 2}},
		"tool_group":   []any{map[string]any{"tool_id": missingTool, "value": 1}},
	})
	require.NoError(t, err)

	missingMaterial := primitive.NewObjectID().Hex()
	_, err = client.Create(ctx, costapi.MaterialYields, map[string]any{
		"material_id": missingMaterial, "yield_name": "Plaster", "category": "Finishing", "unit": "m2",
	})
	require.NoError(t, err)

	out, err = execute(t, apiURL, "refs")
	require.Error(t, err)
	assert.EqualError(t, err, "found 2 dangling reference(s)")
	assert.Contains(t, out, "missing tools "+missingTool)
	assert.Contains(t, out, "missing materials "+missingMaterial)
	assert.NotContains(t, out, worker.ID())
}

func TestResourcesCommand(t *testing.T) {
	out, err := execute(t, "http://unused", "resources")
	require.NoError(t, err)
	assert.Contains(t, out, "materials (entries)\n")
	assert.Contains(t, out, "material-yields (by reference)\n")
	assert.Contains(t, out, "jobs\n")
}
