package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Tool is a hand or power tool with its price history.
type Tool struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ToolName string             `bson:"tool_name" json:"tool_name"`
	Category string             `bson:"category" json:"category"`
	Unit     Unit               `bson:"unit" json:"unit"`
	Prices   []PriceEntry       `bson:"prices" json:"prices"`
}

// ToolPatch lists the tool fields a partial update may replace.
type ToolPatch struct {
	ToolName *string `bson:"tool_name,omitempty" json:"tool_name"`
	Category *string `bson:"category,omitempty" json:"category"`
	Unit     *Unit   `bson:"unit,omitempty" json:"unit"`
}

// ToolLifespan describes how long a tool model lasts in service.
type ToolLifespan struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ToolID       Ref                `bson:"tool_id" json:"tool_id"`
	ToolName     string             `bson:"tool_name" json:"tool_name"`
	ToolType     string             `bson:"tool_type" json:"tool_type"`
	Manufacturer string             `bson:"manufacturer" json:"manufacturer"`
	Lifespan     float64            `bson:"lifespan" json:"lifespan"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ToolLifespanPatch lists the fields a partial update may replace.
type ToolLifespanPatch struct {
	ToolID       *Ref     `bson:"tool_id,omitempty" json:"tool_id"`
	ToolName     *string  `bson:"tool_name,omitempty" json:"tool_name"`
	ToolType     *string  `bson:"tool_type,omitempty" json:"tool_type"`
	Manufacturer *string  `bson:"manufacturer,omitempty" json:"manufacturer"`
	Lifespan     *float64 `bson:"lifespan,omitempty" json:"lifespan"`
	Notes        *string  `bson:"notes,omitempty" json:"notes"`
}
