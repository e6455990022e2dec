// Package catalog declares the nine construction cost resources and wires a
// service for each of them against a document database.
package catalog

import (
	"go.uber.org/zap"

	"github.com/ojmarte/construction-api/internal/domain/models"
	"github.com/ojmarte/construction-api/internal/repository"
	"github.com/ojmarte/construction-api/internal/service/resource"
)

// Resource pairs what the storage layer enforces with how the resource is
// named towards clients.
type Resource struct {
	Schema     repository.Schema
	Descriptor resource.Descriptor
}

// Collection names and client messages are frozen: existing databases and
// clients depend on them.
var (
	Equipment = Resource{
		Schema: repository.Schema{
			Collection: "equipment",
			Required:   []string{"equipment_name", "category", "unit.measurement"},
			Arrays:     []string{"prices"},
		},
		Descriptor: resource.Descriptor{Singular: "equipment", Plural: "equipment", Entry: "price", EntriesField: "prices"},
	}

	EquipmentPerformance = Resource{
		Schema: repository.Schema{
			Collection: "equipmentperformances",
			Required:   []string{"equipment_id", "equipment_type", "performance_name", "unit"},
		},
		Descriptor: resource.Descriptor{
			Singular:       "equipment performance",
			Plural:         "equipment performances",
			Parent:         "equipment",
			ReferenceField: "equipment_id",
			Messages: map[resource.Op]string{
				resource.OpList: "Failed to fetch all equipment performances",
			},
		},
	}

	LabourProfession = Resource{
		Schema: repository.Schema{
			Collection: "labours",
			Required:   []string{"labour_name", "category", "unit.measurement"},
			Arrays:     []string{"rates"},
		},
		Descriptor: resource.Descriptor{
			Singular:     "labour profession",
			Plural:       "labour professions",
			Entry:        "rate",
			EntriesField: "rates",
			Messages:     map[resource.Op]string{resource.OpGet: "Failed to fetch labour profession"},
		},
	}

	Material = Resource{
		Schema: repository.Schema{
			Collection: "materials",
			Required:   []string{"material_name", "category", "unit.measurement"},
			Arrays:     []string{"prices"},
		},
		Descriptor: resource.Descriptor{Singular: "material", Plural: "materials", Entry: "price", EntriesField: "prices"},
	}

	MaterialYield = Resource{
		Schema: repository.Schema{
			Collection: "materialyields",
			Required:   []string{"material_id", "yield_name", "category", "unit"},
		},
		Descriptor: resource.Descriptor{
			Singular:       "material yield",
			Plural:         "material yields",
			Parent:         "material",
			ReferenceField: "material_id",
			Messages: map[resource.Op]string{
				resource.OpList: "Failed to fetch all material yields",
				resource.OpGet:  "Failed to fetch material yield",
			},
		},
	}

	Tool = Resource{
		Schema: repository.Schema{
			Collection: "tools",
			Required:   []string{"tool_name", "category", "unit.measurement"},
			Arrays:     []string{"prices"},
		},
		Descriptor: resource.Descriptor{
			Singular:     "tool",
			Plural:       "tools",
			Entry:        "price",
			EntriesField: "prices",
			Messages:     map[resource.Op]string{resource.OpGet: "Failed to fetch tool"},
		},
	}

	ToolLifespan = Resource{
		Schema: repository.Schema{
			Collection: "toollifespans",
			Required:   []string{"tool_id", "tool_name", "tool_type", "manufacturer"},
		},
		Descriptor: resource.Descriptor{
			Singular: "ToolLifespan",
			Plural:   "ToolLifespans",
			Messages: map[resource.Op]string{
				resource.OpList: "Failed to retrieve ToolLifespans",
				resource.OpGet:  "Failed to retrieve ToolLifespan",
			},
		},
	}

	Job = Resource{
		Schema: repository.Schema{
			Collection: "jobs",
			Required:   []string{"job_name", "job_yield.unit", "job_date"},
			Arrays:     []string{"worker_group", "tool_group", "equipment_group"},
		},
		Descriptor: resource.Descriptor{
			Singular: "job",
			Plural:   "jobs",
			Messages: map[resource.Op]string{resource.OpGet: "Failed to fetch job"},
		},
	}

	WorkerProfession = Resource{
		Schema: repository.Schema{
			Collection: "workers",
			Required:   []string{"worker_name", "category", "level", "unit.measurement"},
			Arrays:     []string{"rates"},
		},
		Descriptor: resource.Descriptor{
			Singular:     "Worker profession",
			Plural:       "Worker professions",
			Entry:        "rate",
			EntriesField: "rates",
			Messages:     map[resource.Op]string{resource.OpGet: "Failed to fetch Worker profession"},
		},
	}
)

// Services holds one service per resource.
type Services struct {
	Equipment            *resource.EntryService[models.Equipment, models.EquipmentPatch, models.ValueEntry]
	EquipmentPerformance *resource.Service[models.EquipmentPerformance, models.EquipmentPerformancePatch]
	LabourProfessions    *resource.EntryService[models.LabourProfession, models.LabourProfessionPatch, models.ValueEntry]
	Materials            *resource.EntryService[models.Material, models.MaterialPatch, models.PriceEntry]
	MaterialYields       *resource.Service[models.MaterialYield, models.MaterialYieldPatch]
	Tools                *resource.EntryService[models.Tool, models.ToolPatch, models.PriceEntry]
	ToolLifespans        *resource.Service[models.ToolLifespan, models.ToolLifespanPatch]
	Jobs                 *resource.Service[models.Job, models.JobPatch]
	WorkerProfessions    *resource.EntryService[models.WorkerProfession, models.WorkerProfessionPatch, models.ValueEntry]
}

// NewServices builds every resource service on top of db.
func NewServices(db repository.Database, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Services{
		Equipment: resource.NewEntryService[models.Equipment, models.EquipmentPatch, models.ValueEntry](
			repository.NewStore[models.Equipment](db, Equipment.Schema), Equipment.Descriptor, logger.Named("equipment")),
		EquipmentPerformance: resource.NewService[models.EquipmentPerformance, models.EquipmentPerformancePatch](
			repository.NewStore[models.EquipmentPerformance](db, EquipmentPerformance.Schema), EquipmentPerformance.Descriptor, logger.Named("equipment_performance")),
		LabourProfessions: resource.NewEntryService[models.LabourProfession, models.LabourProfessionPatch, models.ValueEntry](
			repository.NewStore[models.LabourProfession](db, LabourProfession.Schema), LabourProfession.Descriptor, logger.Named("labour")),
		Materials: resource.NewEntryService[models.Material, models.MaterialPatch, models.PriceEntry](
			repository.NewStore[models.Material](db, Material.Schema), Material.Descriptor, logger.Named("material")),
		MaterialYields: resource.NewService[models.MaterialYield, models.MaterialYieldPatch](
			repository.NewStore[models.MaterialYield](db, MaterialYield.Schema), MaterialYield.Descriptor, logger.Named("material_yield")),
		Tools: resource.NewEntryService[models.Tool, models.ToolPatch, models.PriceEntry](
			repository.NewStore[models.Tool](db, Tool.Schema), Tool.Descriptor, logger.Named("tool")),
		ToolLifespans: resource.NewService[models.ToolLifespan, models.ToolLifespanPatch](
			repository.NewStore[models.ToolLifespan](db, ToolLifespan.Schema), ToolLifespan.Descriptor, logger.Named("tool_lifespan")),
		Jobs: resource.NewService[models.Job, models.JobPatch](
			repository.NewStore[models.Job](db, Job.Schema), Job.Descriptor, logger.Named("job")),
		WorkerProfessions: resource.NewEntryService[models.WorkerProfession, models.WorkerProfessionPatch, models.ValueEntry](
			repository.NewStore[models.WorkerProfession](db, WorkerProfession.Schema), WorkerProfession.Descriptor, logger.Named("worker")),
	}
}
