package handlers

import (
	"go.uber.org/zap"

	"github.com/ojmarte/construction-api/internal/domain/models"
	"github.com/ojmarte/construction-api/internal/service/catalog"
)

// API groups the HTTP handlers of every catalog resource.
type API struct {
	Equipment            *EntryHandler[models.Equipment, models.EquipmentPatch, models.ValueEntry]
	EquipmentPerformance *ResourceHandler[models.EquipmentPerformance, models.EquipmentPerformancePatch]
	LabourProfessions    *EntryHandler[models.LabourProfession, models.LabourProfessionPatch, models.ValueEntry]
	Materials            *EntryHandler[models.Material, models.MaterialPatch, models.PriceEntry]
	MaterialYields       *ResourceHandler[models.MaterialYield, models.MaterialYieldPatch]
	Tools                *EntryHandler[models.Tool, models.ToolPatch, models.PriceEntry]
	ToolLifespans        *ResourceHandler[models.ToolLifespan, models.ToolLifespanPatch]
	Jobs                 *ResourceHandler[models.Job, models.JobPatch]
	WorkerProfessions    *EntryHandler[models.WorkerProfession, models.WorkerProfessionPatch, models.ValueEntry]
}

// NewAPI builds the handlers on top of the catalog services.
func NewAPI(svc *catalog.Services, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &API{
		Equipment:            NewEntryHandler[models.Equipment, models.EquipmentPatch, models.ValueEntry](svc.Equipment, "id", logger.Named("equipment")),
		EquipmentPerformance: NewResourceHandler[models.EquipmentPerformance, models.EquipmentPerformancePatch](svc.EquipmentPerformance, "id", logger.Named("equipment_performance")),
		LabourProfessions:    NewEntryHandler[models.LabourProfession, models.LabourProfessionPatch, models.ValueEntry](svc.LabourProfessions, "id", logger.Named("labour")),
		Materials:            NewEntryHandler[models.Material, models.MaterialPatch, models.PriceEntry](svc.Materials, "id", logger.Named("material")),
		MaterialYields:       NewResourceHandler[models.MaterialYield, models.MaterialYieldPatch](svc.MaterialYields, "id", logger.Named("material_yield")),
		Tools:                NewEntryHandler[models.Tool, models.ToolPatch, models.PriceEntry](svc.Tools, "id", logger.Named("tool")),
		ToolLifespans:        NewResourceHandler[models.ToolLifespan, models.ToolLifespanPatch](svc.ToolLifespans, "toolId", logger.Named("tool_lifespan")),
		Jobs:                 NewResourceHandler[models.Job, models.JobPatch](svc.Jobs, "jobId", logger.Named("job")),
		WorkerProfessions:    NewEntryHandler[models.WorkerProfession, models.WorkerProfessionPatch, models.ValueEntry](svc.WorkerProfessions, "id", logger.Named("worker")),
	}
}
