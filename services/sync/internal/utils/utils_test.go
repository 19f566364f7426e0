package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/02loveslollipop/polar-ec-dashboard/internal/dataset"
	"github.com/02loveslollipop/polar-ec-dashboard/internal/model"
)

func f(v float64) *float64 { return &v }

func fixture() *dataset.Dataset {
	return &dataset.Dataset{
		Conditions: []model.Condition{{Name: "A", TargetEC: 1}, {Name: "B", TargetEC: 2}},
		Environment: []model.EnvironmentRecord{
			{Condition: "A", EC: f(1.1)},
			{Condition: "A", EC: nil},
			{Condition: "B", EC: f(2.2)},
		},
		Growth: []model.GrowthRecord{
			{Condition: "B", FreshWeightGrams: f(9), Metrics: map[string]*float64{"생중량(g)": f(9)}},
			{Condition: "B", FreshWeightGrams: nil},
		},
	}
}

func TestBuildConditionRows(t *testing.T) {
	rows := BuildConditionRows(fixture())
	require.Len(t, rows, 2)
	assert.Equal(t, 2.0, rows[1].TargetEC)
	assert.Equal(t, []string{"A", "B"}, ConditionNames(rows))
}

func TestBuildReadingRows(t *testing.T) {
	rows := BuildReadingRows(fixture())
	require.Len(t, rows, 3)
	assert.Equal(t, 1, rows[0].Seq)
	assert.Equal(t, 2, rows[1].Seq)
	assert.Nil(t, rows[1].EC)
	assert.Equal(t, "B", rows[2].Condition)
	assert.Equal(t, 1, rows[2].Seq)
}

func TestBuildPlantRows(t *testing.T) {
	rows := BuildPlantRows(fixture())
	require.Len(t, rows, 2)
	assert.Equal(t, []int{1, 2}, []int{rows[0].Seq, rows[1].Seq})
	assert.Equal(t, 9.0, *rows[0].Metrics["생중량(g)"])
	assert.Nil(t, rows[1].FreshWeight)
}

func TestValuePtrString(t *testing.T) {
	assert.Equal(t, "null", ValuePtrString(nil))
	assert.Equal(t, "1.250", ValuePtrString(f(1.25)))
}
