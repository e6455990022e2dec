package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ojmarte/construction-api/internal/domain/models"
	"github.com/ojmarte/construction-api/internal/repository"
	"github.com/ojmarte/construction-api/internal/repository/memory"
	"github.com/ojmarte/construction-api/internal/service/catalog"
	"github.com/ojmarte/construction-api/internal/service/resource"
)

func allResources() map[string]catalog.Resource {
	return map[string]catalog.Resource{
		"Equipment":            catalog.Equipment,
		"EquipmentPerformance": catalog.EquipmentPerformance,
		"LabourProfession":     catalog.LabourProfession,
		"Material":             catalog.Material,
		"MaterialYield":        catalog.MaterialYield,
		"Tool":                 catalog.Tool,
		"ToolLifespan":         catalog.ToolLifespan,
		"Job":                  catalog.Job,
		"WorkerProfession":     catalog.WorkerProfession,
	}
}

func TestResources_AreConsistent(t *testing.T) {
	collections := map[string]string{}

	for name, res := range allResources() {
		t.Run(name, func(t *testing.T) {
			if other, dup := collections[res.Schema.Collection]; dup {
				t.Fatalf("collection %q used by %s and %s", res.Schema.Collection, other, name)
			}
			collections[res.Schema.Collection] = name

			assert.NotEmpty(t, res.Schema.Required)
			assert.NotEmpty(t, res.Descriptor.Singular)
			assert.NotEmpty(t, res.Descriptor.Plural)

			if res.Descriptor.HasEntries() {
				assert.Contains(t, res.Schema.Arrays, res.Descriptor.EntriesField)
				assert.NotEmpty(t, res.Descriptor.Entry)
			}
			if res.Descriptor.HasReference() {
				assert.Contains(t, res.Schema.Required, res.Descriptor.ReferenceField)
				assert.NotEmpty(t, res.Descriptor.Parent)
			}
		})
	}

	assert.Len(t, collections, 9)
}

func TestResources_Messages(t *testing.T) {
	assert.Equal(t, "Failed to fetch materials", catalog.Material.Descriptor.Message(resource.OpList))
	assert.Equal(t, "Failed to add rate to labour profession", catalog.LabourProfession.Descriptor.Message(resource.OpAppendEntry))
	assert.Equal(t, "Failed to fetch material yields by material ID", catalog.MaterialYield.Descriptor.Message(resource.OpListByReference))
	assert.Equal(t, "Equipment not found", catalog.Equipment.Descriptor.NotFoundMessage())
}

func TestResources_MessagesMatchExistingClients(t *testing.T) {
	tests := []struct {
		res  catalog.Resource
		op   resource.Op
		want string
	}{
		{catalog.Tool, resource.OpGet, "Failed to fetch tool"},
		{catalog.LabourProfession, resource.OpGet, "Failed to fetch labour profession"},
		{catalog.WorkerProfession, resource.OpGet, "Failed to fetch Worker profession"},
		{catalog.WorkerProfession, resource.OpList, "Failed to fetch Worker professions"},
		{catalog.WorkerProfession, resource.OpAppendEntry, "Failed to add rate to Worker profession"},
		{catalog.Job, resource.OpGet, "Failed to fetch job"},
		{catalog.MaterialYield, resource.OpList, "Failed to fetch all material yields"},
		{catalog.MaterialYield, resource.OpGet, "Failed to fetch material yield"},
		{catalog.EquipmentPerformance, resource.OpList, "Failed to fetch all equipment performances"},
		{catalog.EquipmentPerformance, resource.OpGet, "Failed to fetch equipment performance by ID"},
		{catalog.ToolLifespan, resource.OpList, "Failed to retrieve ToolLifespans"},
		{catalog.ToolLifespan, resource.OpGet, "Failed to retrieve ToolLifespan"},
		{catalog.ToolLifespan, resource.OpCreate, "Failed to create ToolLifespan"},
		{catalog.Equipment, resource.OpAppendEntry, "Failed to add price to equipment"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.Descriptor.Message(tt.op))
		})
	}

	assert.Equal(t, "ToolLifespan not found", catalog.ToolLifespan.Descriptor.NotFoundMessage())
	assert.Equal(t, "Worker profession not found", catalog.WorkerProfession.Descriptor.NotFoundMessage())
	assert.Equal(t, "Labour profession not found", catalog.LabourProfession.Descriptor.NotFoundMessage())
}

func TestNewServices_JobDefaultsAndReferences(t *testing.T) {
	svc := catalog.NewServices(memory.NewDatabase(), nil)
	ctx := context.Background()

	worker := models.RefTo(primitive.NewObjectID())
	job, err := svc.Jobs.Create(ctx, models.Job{
		JobName:     "Formwork",
		JobYield:    models.JobYield{Unit: "m2", Value: 20},
		JobDate:     models.NewTimestamp(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		WorkerGroup: []models.WorkerGroup{{WorkerID: worker, Quantity: 3}},
	})
	require.NoError(t, err)

	assert.False(t, job.ID.IsZero())
	assert.NotNil(t, job.ToolGroup)
	assert.Empty(t, job.ToolGroup)
	assert.NotNil(t, job.EquipmentGroup)
	assert.Equal(t, map[string][]models.Ref{"workers": {worker}}, job.References())

	_, err = svc.Jobs.Create(ctx, models.Job{JobName: "Undated", JobYield: models.JobYield{Unit: "m2"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, resource.ErrCreationFailed))

	var schemaErr *repository.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"job_date"}, schemaErr.Missing)
}

func TestNewServices_WorkerRequiresLevel(t *testing.T) {
	svc := catalog.NewServices(memory.NewDatabase(), nil)

	_, err := svc.WorkerProfessions.Create(context.Background(), models.WorkerProfession{
		WorkerName: "Electrician",
		Category:   "Skilled",
		Unit:       models.Unit{Measurement: "hour", Currency: "USD"},
	})

	var schemaErr *repository.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "workers", schemaErr.Collection)
	assert.Equal(t, []string{"level"}, schemaErr.Missing)
}
