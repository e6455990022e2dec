package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Material is a consumable building material with its price history.
type Material struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MaterialName string             `bson:"material_name" json:"material_name"`
	Category     string             `bson:"category" json:"category"`
	Unit         Unit               `bson:"unit" json:"unit"`
	Prices       []PriceEntry       `bson:"prices" json:"prices"`
}

// MaterialPatch lists the material fields a partial update may replace.
type MaterialPatch struct {
	MaterialName *string `bson:"material_name,omitempty" json:"material_name"`
	Category     *string `bson:"category,omitempty" json:"category"`
	Unit         *Unit   `bson:"unit,omitempty" json:"unit"`
}

// MaterialYield is the quantity of work a unit of material covers.
type MaterialYield struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MaterialID Ref                `bson:"material_id" json:"material_id"`
	YieldName  string             `bson:"yield_name" json:"yield_name"`
	Category   string             `bson:"category" json:"category"`
	Unit       string             `bson:"unit" json:"unit"`
	Yield      float64            `bson:"yield" json:"yield"`
}

// MaterialYieldPatch lists the fields a partial update may replace.
type MaterialYieldPatch struct {
	MaterialID *Ref     `bson:"material_id,omitempty" json:"material_id"`
	YieldName  *string  `bson:"yield_name,omitempty" json:"yield_name"`
	Category   *string  `bson:"category,omitempty" json:"category"`
	Unit       *string  `bson:"unit,omitempty" json:"unit"`
	Yield      *float64 `bson:"yield,omitempty" json:"yield"`
}
