package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Equipment is a piece of plant hired or owned for construction work.
type Equipment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EquipmentName string             `bson:"equipment_name" json:"equipment_name"`
	Category      string             `bson:"category" json:"category"`
	Unit          Unit               `bson:"unit" json:"unit"`
	Prices        []ValueEntry       `bson:"prices" json:"prices"`
}

// EquipmentPatch lists the equipment fields a partial update may replace.
type EquipmentPatch struct {
	EquipmentName *string `bson:"equipment_name,omitempty" json:"equipment_name"`
	Category      *string `bson:"category,omitempty" json:"category"`
	Unit          *Unit   `bson:"unit,omitempty" json:"unit"`
}

// EquipmentPerformance records how much work a piece of equipment delivers.
type EquipmentPerformance struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EquipmentID      Ref                `bson:"equipment_id" json:"equipment_id"`
	EquipmentType    string             `bson:"equipment_type" json:"equipment_type"`
	PerformanceName  string             `bson:"performance_name" json:"performance_name"`
	Unit             string             `bson:"unit" json:"unit"`
	PerformanceValue float64            `bson:"performance_value" json:"performance_value"`
	Year             int                `bson:"year" json:"year"`
}

// EquipmentPerformancePatch lists the fields a partial update may replace.
type EquipmentPerformancePatch struct {
	EquipmentID      *Ref     `bson:"equipment_id,omitempty" json:"equipment_id"`
	EquipmentType    *string  `bson:"equipment_type,omitempty" json:"equipment_type"`
	PerformanceName  *string  `bson:"performance_name,omitempty" json:"performance_name"`
	Unit             *string  `bson:"unit,omitempty" json:"unit"`
	PerformanceValue *float64 `bson:"performance_value,omitempty" json:"performance_value"`
	Year             *int     `bson:"year,omitempty" json:"year"`
}
