package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUnit_DecodesLegacyString(t *testing.T) {
	var m Material
	require.NoError(t, json.Unmarshal([]byte(`{"material_name":"Cement","unit":"kg"}`), &m))
	assert.Equal(t, Unit{Measurement: "kg"}, m.Unit)

	require.NoError(t, json.Unmarshal([]byte(`{"unit":{"measurement":"t","currency":"EUR"}}`), &m))
	assert.Equal(t, Unit{Measurement: "t", Currency: "EUR"}, m.Unit)

	assert.Error(t, json.Unmarshal([]byte(`{"unit":42}`), &m))

	raw, err := bson.Marshal(bson.M{"tool_name": "Saw", "unit": "piece"})
	require.NoError(t, err)
	var tool Tool
	require.NoError(t, bson.Unmarshal(raw, &tool))
	assert.Equal(t, Unit{Measurement: "piece"}, tool.Unit)

	data, err := json.Marshal(tool.Unit)
	require.NoError(t, err)
	assert.JSONEq(t, `{"measurement":"piece","currency":""}`, string(data))
}

func TestTimestamp_Parsing(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:30:00Z", time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-01-01T10:30:00+02:00", time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ts, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time))
			assert.Equal(t, time.UTC, ts.Location())
		})
	}

	_, err := ParseTimestamp("01/02/2024")
	assert.ErrorContains(t, err, "invalid date")

	empty, err := ParseTimestamp("  ")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}

func TestTimestamp_RoundTrips(t *testing.T) {
	var entry PriceEntry
	require.NoError(t, json.Unmarshal([]byte(`{"price":12.5,"date":"2024-01-01"}`), &entry))

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":12.5,"date":"2024-01-01T00:00:00Z"}`, string(data))

	raw, err := bson.Marshal(entry)
	require.NoError(t, err)
	assert.Equal(t, bson.TypeDateTime, bson.Raw(raw).Lookup("date").Type)

	var back PriceEntry
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.True(t, entry.Date.Equal(back.Date.Time))

	raw, err = bson.Marshal(bson.M{"value": 3, "date": "2023-12-31"})
	require.NoError(t, err)
	var fromString ValueEntry
	require.NoError(t, bson.Unmarshal(raw, &fromString))
	assert.Equal(t, 2023, fromString.Date.Year())
}

func TestRef_AcceptsObjectIDs(t *testing.T) {
	id := primitive.NewObjectID()

	raw, err := bson.Marshal(bson.M{"material_id": id, "yield_name": "Plaster"})
	require.NoError(t, err)
	var y MaterialYield
	require.NoError(t, bson.Unmarshal(raw, &y))
	assert.Equal(t, RefTo(id), y.MaterialID)

	back, err := y.MaterialID.ObjectID()
	require.NoError(t, err)
	assert.Equal(t, id, back)

	raw, err = bson.Marshal(y)
	require.NoError(t, err)
	assert.Equal(t, bson.TypeString, bson.Raw(raw).Lookup("material_id").Type)

	assert.True(t, Ref("").IsZero())
	_, err = Ref("nope").ObjectID()
	assert.Error(t, err)
}

func TestJob_References(t *testing.T) {
	job := Job{
		WorkerGroup:    []WorkerGroup{{WorkerID: "w1", Quantity: 2}, {WorkerID: "w2", Quantity: 1}},
		EquipmentGroup: []EquipmentGroup{{EquipmentID: "e1", Value: 4}},
	}

	assert.Equal(t, map[string][]Ref{
		"workers":   {"w1", "w2"},
		"equipment": {"e1"},
	}, job.References())
	assert.Empty(t, Job{}.References())
}
