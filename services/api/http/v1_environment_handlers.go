package http

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/polar-ec-dashboard/internal/model"
	"github.com/02loveslollipop/polar-ec-dashboard/internal/summary"
)

const csvTimeLayout = "2006-01-02 15:04:05"

// handleV1EnvironmentSummary returns mean environment values per condition
// alongside the target EC
// GET /api/v1/environment/summary
func (s *Server) handleV1EnvironmentSummary(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}

	data := summary.Environment(snap.Dataset)
	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"meta": gin.H{
			"count": len(data),
		},
	})
}

// handleV1EnvironmentSeries returns the readings of one condition
// GET /api/v1/environment/:condition?start=2024-05-01T00:00:00Z&end=2024-05-31T23:59:59Z
func (s *Server) handleV1EnvironmentSeries(c *gin.Context) {
	var startTime, endTime *time.Time
	if start := c.Query("start"); start != "" {
		if t, err := time.Parse(time.RFC3339, start); err == nil {
			startTime = &t
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start time format, expected RFC3339"})
			return
		}
	}
	if end := c.Query("end"); end != "" {
		if t, err := time.Parse(time.RFC3339, end); err == nil {
			endTime = &t
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end time format, expected RFC3339"})
			return
		}
	}

	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	cond, ok := s.condition(c, snap.Dataset)
	if !ok {
		return
	}

	records := snap.Dataset.EnvironmentFor(cond.Name)
	if startTime != nil || endTime != nil {
		records = filterByTime(records, startTime, endTime)
	}

	c.JSON(http.StatusOK, gin.H{
		"data": records,
		"meta": gin.H{
			"condition": cond.Name,
			"target_ec": cond.TargetEC,
			"count":     len(records),
		},
	})
}

// handleV1EnvironmentCSV downloads one condition's readings as CSV with a
// UTF-8 BOM so spreadsheet tools detect the encoding
// GET /api/v1/environment/:condition/csv
func (s *Server) handleV1EnvironmentCSV(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	cond, ok := s.condition(c, snap.Dataset)
	if !ok {
		return
	}

	body, err := environmentCSV(snap.Dataset.EnvironmentFor(cond.Name))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := cond.Name + "_" + s.cfg.Data.Registry.EnvironmentKeyword + ".csv"
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="environment.csv"; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}

// filterByTime keeps readings inside [start, end]. Readings without a valid
// timestamp cannot be placed and are dropped.
func filterByTime(records []model.EnvironmentRecord, start, end *time.Time) []model.EnvironmentRecord {
	out := make([]model.EnvironmentRecord, 0, len(records))
	for _, r := range records {
		if r.Time == nil {
			continue
		}
		if start != nil && r.Time.Before(*start) {
			continue
		}
		if end != nil && r.Time.After(*end) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func environmentCSV(records []model.EnvironmentRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\ufeff")

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"time", "temperature", "humidity", "ph", "ec", "condition", "target_ec"}); err != nil {
		return nil, err
	}
	for _, r := range records {
		ts := ""
		if r.Time != nil {
			ts = r.Time.Format(csvTimeLayout)
		}
		row := []string{
			ts,
			formatFloat(r.Temperature),
			formatFloat(r.Humidity),
			formatFloat(r.PH),
			formatFloat(r.EC),
			r.Condition,
			strconv.FormatFloat(r.TargetEC, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
