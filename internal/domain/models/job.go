package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Job is a unit of work composed from worker, tool and equipment groups.
// Group members reference other resources by id without integrity checks.
type Job struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JobName        string             `bson:"job_name" json:"job_name"`
	JobYield       JobYield           `bson:"job_yield" json:"job_yield"`
	JobDate        Timestamp          `bson:"job_date" json:"job_date"`
	WorkerGroup    []WorkerGroup      `bson:"worker_group" json:"worker_group"`
	ToolGroup      []ToolGroup        `bson:"tool_group" json:"tool_group"`
	EquipmentGroup []EquipmentGroup   `bson:"equipment_group" json:"equipment_group"`
}

// JobYield is the output a job produces.
type JobYield struct {
	Unit  string  `bson:"unit" json:"unit"`
	Value float64 `bson:"value" json:"value"`
}

// WorkerGroup is a number of workers of one profession assigned to a job.
type WorkerGroup struct {
	WorkerID Ref     `bson:"worker_id" json:"worker_id"`
	Quantity float64 `bson:"quantity" json:"quantity"`
}

// ToolGroup is a tool usage line on a job.
type ToolGroup struct {
	ToolID Ref     `bson:"tool_id" json:"tool_id"`
	Value  float64 `bson:"value" json:"value"`
}

// EquipmentGroup is an equipment usage line on a job.
type EquipmentGroup struct {
	EquipmentID Ref     `bson:"equipment_id" json:"equipment_id"`
	Value       float64 `bson:"value" json:"value"`
}

// JobPatch lists the job fields a partial update may replace. Group lists
// are replaced as a whole when present.
type JobPatch struct {
	JobName        *string           `bson:"job_name,omitempty" json:"job_name"`
	JobYield       *JobYield         `bson:"job_yield,omitempty" json:"job_yield"`
	JobDate        *Timestamp        `bson:"job_date,omitempty" json:"job_date"`
	WorkerGroup    *[]WorkerGroup    `bson:"worker_group,omitempty" json:"worker_group"`
	ToolGroup      *[]ToolGroup      `bson:"tool_group,omitempty" json:"tool_group"`
	EquipmentGroup *[]EquipmentGroup `bson:"equipment_group,omitempty" json:"equipment_group"`
}

// References returns every foreign reference the job holds, grouped by
// the collection they point into.
func (j Job) References() map[string][]Ref {
	refs := map[string][]Ref{}
	for _, w := range j.WorkerGroup {
		refs["workers"] = append(refs["workers"], w.WorkerID)
	}
	for _, t := range j.ToolGroup {
		refs["tools"] = append(refs["tools"], t.ToolID)
	}
	for _, e := range j.EquipmentGroup {
		refs["equipment"] = append(refs["equipment"], e.EquipmentID)
	}
	return refs
}
