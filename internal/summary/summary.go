// Package summary computes the per-condition comparisons shown on the dashboard.
package summary

import (
	"gonum.org/v1/gonum/stat"

	"github.com/02loveslollipop/polar-ec-dashboard/internal/dataset"
	"github.com/02loveslollipop/polar-ec-dashboard/internal/model"
)

// Stat is a mean with its sample count. Mean and StdDev are nil when no
// valid value exists.
type Stat struct {
	N      int      `json:"n"`
	Mean   *float64 `json:"mean"`
	StdDev *float64 `json:"std_dev,omitempty"`
}

// EnvironmentSummary compares one condition's measured environment to its target.
type EnvironmentSummary struct {
	Condition   string   `json:"condition"`
	TargetEC    float64  `json:"target_ec"`
	Readings    int      `json:"readings"`
	Temperature Stat     `json:"temperature"`
	Humidity    Stat     `json:"humidity"`
	PH          Stat     `json:"ph"`
	EC          Stat     `json:"ec"`
	ECDeviation *float64 `json:"ec_deviation"`
}

// GrowthSummary aggregates one condition's plants.
type GrowthSummary struct {
	Condition   string  `json:"condition"`
	TargetEC    float64 `json:"target_ec"`
	Plants      int     `json:"plants"`
	FreshWeight Stat    `json:"fresh_weight_g"`
	LeafCount   Stat    `json:"leaf_count"`
	ShootLength Stat    `json:"shoot_length_mm"`
	RootLength  Stat    `json:"root_length_mm"`
}

// Overview is the headline block.
type Overview struct {
	Conditions      int      `json:"conditions"`
	TotalPlants     int      `json:"total_plants"`
	TotalReadings   int      `json:"total_readings"`
	MeanTemperature *float64 `json:"mean_temperature"`
	MeanHumidity    *float64 `json:"mean_humidity"`
	// Best is the condition with the highest mean fresh weight, if any
	// condition has one.
	Best *model.Condition `json:"best,omitempty"`
}

// Describe summarizes the non-nil values.
func Describe(values []*float64) Stat {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil {
			xs = append(xs, *v)
		}
	}
	s := Stat{N: len(xs)}
	if len(xs) == 0 {
		return s
	}
	mean := stat.Mean(xs, nil)
	s.Mean = &mean
	if len(xs) > 1 {
		sd := stat.StdDev(xs, nil)
		s.StdDev = &sd
	}
	return s
}

// Environment returns one summary per configured condition in configuration
// order, including conditions without readings.
func Environment(ds *dataset.Dataset) []EnvironmentSummary {
	out := make([]EnvironmentSummary, 0, len(ds.Conditions))
	for _, c := range ds.Conditions {
		recs := ds.EnvironmentFor(c.Name)
		temp := make([]*float64, len(recs))
		hum := make([]*float64, len(recs))
		ph := make([]*float64, len(recs))
		ec := make([]*float64, len(recs))
		for i, r := range recs {
			temp[i], hum[i], ph[i], ec[i] = r.Temperature, r.Humidity, r.PH, r.EC
		}

		s := EnvironmentSummary{
			Condition:   c.Name,
			TargetEC:    c.TargetEC,
			Readings:    len(recs),
			Temperature: Describe(temp),
			Humidity:    Describe(hum),
			PH:          Describe(ph),
			EC:          Describe(ec),
		}
		if s.EC.Mean != nil {
			dev := *s.EC.Mean - c.TargetEC
			s.ECDeviation = &dev
		}
		out = append(out, s)
	}
	return out
}

// Growth returns one summary per configured condition in configuration order.
func Growth(ds *dataset.Dataset) []GrowthSummary {
	out := make([]GrowthSummary, 0, len(ds.Conditions))
	for _, c := range ds.Conditions {
		recs := ds.GrowthFor(c.Name)
		fresh := make([]*float64, len(recs))
		leaves := make([]*float64, len(recs))
		shoot := make([]*float64, len(recs))
		root := make([]*float64, len(recs))
		for i, r := range recs {
			fresh[i], shoot[i], root[i] = r.FreshWeightGrams, r.ShootLengthMm, r.RootLengthMm
			if r.LeafCount != nil {
				n := float64(*r.LeafCount)
				leaves[i] = &n
			}
		}
		out = append(out, GrowthSummary{
			Condition:   c.Name,
			TargetEC:    c.TargetEC,
			Plants:      len(recs),
			FreshWeight: Describe(fresh),
			LeafCount:   Describe(leaves),
			ShootLength: Describe(shoot),
			RootLength:  Describe(root),
		})
	}
	return out
}

// Summarize builds the overview from the whole dataset.
func Summarize(ds *dataset.Dataset) Overview {
	temp := make([]*float64, len(ds.Environment))
	hum := make([]*float64, len(ds.Environment))
	for i, r := range ds.Environment {
		temp[i], hum[i] = r.Temperature, r.Humidity
	}

	o := Overview{
		Conditions:      len(ds.Conditions),
		TotalPlants:     len(ds.Growth),
		TotalReadings:   len(ds.Environment),
		MeanTemperature: Describe(temp).Mean,
		MeanHumidity:    Describe(hum).Mean,
	}

	var bestMean float64
	for i, g := range Growth(ds) {
		if g.FreshWeight.Mean == nil {
			continue
		}
		if o.Best == nil || *g.FreshWeight.Mean > bestMean {
			c := ds.Conditions[i]
			o.Best = &c
			bestMean = *g.FreshWeight.Mean
		}
	}
	return o
}
