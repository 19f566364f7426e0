package utils

import (
	"fmt"

	"github.com/02loveslollipop/polar-ec-dashboard/internal/dataset"
	"github.com/02loveslollipop/polar-ec-dashboard/services/sync/internal/models"
)

// BuildConditionRows converts configured conditions into database rows.
func BuildConditionRows(ds *dataset.Dataset) []models.ConditionRow {
	rows := make([]models.ConditionRow, 0, len(ds.Conditions))
	for _, c := range ds.Conditions {
		rows = append(rows, models.ConditionRow{Name: c.Name, TargetEC: c.TargetEC})
	}
	return rows
}

// ConditionNames extracts condition names from condition rows.
func ConditionNames(rows []models.ConditionRow) []string {
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}
	return names
}

// BuildReadingRows numbers environment readings per condition in load order.
func BuildReadingRows(ds *dataset.Dataset) []models.ReadingRow {
	seq := make(map[string]int, len(ds.Conditions))
	rows := make([]models.ReadingRow, 0, len(ds.Environment))
	for _, r := range ds.Environment {
		seq[r.Condition]++
		rows = append(rows, models.ReadingRow{
			Condition:   r.Condition,
			Seq:         seq[r.Condition],
			TS:          r.Time,
			Temperature: r.Temperature,
			Humidity:    r.Humidity,
			PH:          r.PH,
			EC:          r.EC,
		})
	}
	return rows
}

// BuildPlantRows numbers growth records per condition in sheet order.
func BuildPlantRows(ds *dataset.Dataset) []models.PlantRow {
	seq := make(map[string]int, len(ds.Conditions))
	rows := make([]models.PlantRow, 0, len(ds.Growth))
	for _, g := range ds.Growth {
		seq[g.Condition]++
		rows = append(rows, models.PlantRow{
			Condition:   g.Condition,
			Seq:         seq[g.Condition],
			FreshWeight: g.FreshWeightGrams,
			LeafCount:   g.LeafCount,
			ShootLength: g.ShootLengthMm,
			RootLength:  g.RootLengthMm,
			Metrics:     g.Metrics,
		})
	}
	return rows
}

// ValuePtrString prints pointer values for logging.
func ValuePtrString(v *float64) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%.3f", *v)
}
