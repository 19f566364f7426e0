package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/02loveslollipop/polar-ec-dashboard/internal/dataset"
	"github.com/02loveslollipop/polar-ec-dashboard/internal/model"
)

func f(v float64) *float64 { return &v }
func n(v int) *int         { return &v }

func fixture() *dataset.Dataset {
	return &dataset.Dataset{
		Conditions: []model.Condition{
			{Name: "Alpha", TargetEC: 1.0},
			{Name: "Beta", TargetEC: 2.0},
			{Name: "Gamma", TargetEC: 4.0},
		},
		Environment: []model.EnvironmentRecord{
			{Condition: "Alpha", TargetEC: 1, Temperature: f(18), Humidity: f(60), PH: f(6), EC: f(1.2)},
			{Condition: "Alpha", TargetEC: 1, Temperature: f(20), Humidity: nil, PH: f(6.2), EC: f(1.0)},
			{Condition: "Beta", TargetEC: 2, Temperature: nil, Humidity: f(70), PH: nil, EC: nil},
		},
		Growth: []model.GrowthRecord{
			{Condition: "Alpha", FreshWeightGrams: f(10), LeafCount: n(4), ShootLengthMm: f(50)},
			{Condition: "Alpha", FreshWeightGrams: f(14), LeafCount: nil, ShootLengthMm: f(60), RootLengthMm: f(20)},
			{Condition: "Gamma", FreshWeightGrams: f(15), LeafCount: n(6)},
		},
	}
}

func TestDescribe(t *testing.T) {
	s := Describe([]*float64{f(2), nil, f(4)})
	assert.Equal(t, 2, s.N)
	require.NotNil(t, s.Mean)
	assert.InDelta(t, 3.0, *s.Mean, 1e-9)
	require.NotNil(t, s.StdDev)
	assert.InDelta(t, 1.41421356, *s.StdDev, 1e-6)

	single := Describe([]*float64{f(5)})
	assert.Nil(t, single.StdDev)

	empty := Describe([]*float64{nil})
	assert.Equal(t, 0, empty.N)
	assert.Nil(t, empty.Mean)
}

func TestEnvironment(t *testing.T) {
	got := Environment(fixture())
	require.Len(t, got, 3)

	alpha := got[0]
	assert.Equal(t, "Alpha", alpha.Condition)
	assert.Equal(t, 2, alpha.Readings)
	assert.InDelta(t, 19.0, *alpha.Temperature.Mean, 1e-9)
	assert.Equal(t, 1, alpha.Humidity.N)
	assert.InDelta(t, 0.1, *alpha.ECDeviation, 1e-9)

	beta := got[1]
	assert.Equal(t, 1, beta.Readings)
	assert.Nil(t, beta.EC.Mean)
	assert.Nil(t, beta.ECDeviation)

	gamma := got[2]
	assert.Equal(t, 0, gamma.Readings)
	assert.Equal(t, 4.0, gamma.TargetEC)
}

func TestGrowth(t *testing.T) {
	got := Growth(fixture())
	require.Len(t, got, 3)

	assert.Equal(t, 2, got[0].Plants)
	assert.InDelta(t, 12.0, *got[0].FreshWeight.Mean, 1e-9)
	assert.Equal(t, 1, got[0].LeafCount.N)
	assert.Equal(t, 1, got[0].RootLength.N)

	assert.Equal(t, 0, got[1].Plants)
	assert.Nil(t, got[1].FreshWeight.Mean)

	assert.Equal(t, 1, got[2].Plants)
	assert.InDelta(t, 6.0, *got[2].LeafCount.Mean, 1e-9)
}

func TestSummarize(t *testing.T) {
	o := Summarize(fixture())
	assert.Equal(t, 3, o.Conditions)
	assert.Equal(t, 3, o.TotalPlants)
	assert.Equal(t, 3, o.TotalReadings)
	assert.InDelta(t, 19.0, *o.MeanTemperature, 1e-9)
	assert.InDelta(t, 65.0, *o.MeanHumidity, 1e-9)
	require.NotNil(t, o.Best)
	assert.Equal(t, "Gamma", o.Best.Name)

	empty := Summarize(&dataset.Dataset{Conditions: []model.Condition{{Name: "A", TargetEC: 1}}})
	assert.Nil(t, empty.Best)
	assert.Nil(t, empty.MeanTemperature)
}
