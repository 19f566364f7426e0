package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/polar-ec-dashboard/internal/summary"
)

// handleV1Conditions returns the configured conditions with plant counts
// GET /api/v1/conditions
func (s *Server) handleV1Conditions(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}

	type conditionInfo struct {
		Name     string  `json:"name"`
		TargetEC float64 `json:"target_ec"`
		Plants   int     `json:"plants"`
		Readings int     `json:"readings"`
	}

	ds := snap.Dataset
	out := make([]conditionInfo, 0, len(ds.Conditions))
	for _, cond := range ds.Conditions {
		out = append(out, conditionInfo{
			Name:     cond.Name,
			TargetEC: cond.TargetEC,
			Plants:   len(ds.GrowthFor(cond.Name)),
			Readings: len(ds.EnvironmentFor(cond.Name)),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data": out,
		"meta": gin.H{
			"count": len(out),
		},
	})
}

// handleV1Overview returns the headline numbers
// GET /api/v1/overview
func (s *Server) handleV1Overview(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": summary.Summarize(snap.Dataset),
		"meta": gin.H{
			"loaded_at": snap.LoadedAt.UTC().Format(time.RFC3339),
			"warnings":  len(snap.Warnings),
		},
	})
}

// handleV1Warnings returns the recoverable issues of the current load
// GET /api/v1/warnings
func (s *Server) handleV1Warnings(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": snap.Warnings,
		"meta": gin.H{
			"count":            len(snap.Warnings),
			"unmatched_sheets": snap.Dataset.UnmatchedSheets,
		},
	})
}

// handleV1Refresh drops the cached dataset and loads it again
// POST /api/v1/refresh
func (s *Server) handleV1Refresh(c *gin.Context) {
	s.cache.Invalidate()

	snap, ok := s.snapshot(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"environment_rows": len(snap.Dataset.Environment),
			"growth_rows":      len(snap.Dataset.Growth),
			"warnings":         len(snap.Warnings),
		},
		"meta": gin.H{
			"loaded_at": snap.LoadedAt.UTC().Format(time.RFC3339),
		},
	})
}
