package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// LabourProfession is a labour trade billed at a rate.
type LabourProfession struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LabourName string             `bson:"labour_name" json:"labour_name"`
	Category   string             `bson:"category" json:"category"`
	Unit       Unit               `bson:"unit" json:"unit"`
	Rates      []ValueEntry       `bson:"rates" json:"rates"`
}

// LabourProfessionPatch lists the fields a partial update may replace.
type LabourProfessionPatch struct {
	LabourName *string `bson:"labour_name,omitempty" json:"labour_name"`
	Category   *string `bson:"category,omitempty" json:"category"`
	Unit       *Unit   `bson:"unit,omitempty" json:"unit"`
}

// WorkerProfession is a worker grade (trade and level) billed at a rate.
type WorkerProfession struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkerName string             `bson:"worker_name" json:"worker_name"`
	Category   string             `bson:"category" json:"category"`
	Level      string             `bson:"level" json:"level"`
	Unit       Unit               `bson:"unit" json:"unit"`
	Rates      []ValueEntry       `bson:"rates" json:"rates"`
}

// WorkerProfessionPatch lists the fields a partial update may replace.
type WorkerProfessionPatch struct {
	WorkerName *string `bson:"worker_name,omitempty" json:"worker_name"`
	Category   *string `bson:"category,omitempty" json:"category"`
	Level      *string `bson:"level,omitempty" json:"level"`
	Unit       *Unit   `bson:"unit,omitempty" json:"unit"`
}
