package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/polar-ec-dashboard/internal/summary"
)

// handleV1GrowthSummary returns growth means per condition
// GET /api/v1/growth/summary
func (s *Server) handleV1GrowthSummary(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}

	data := summary.Growth(snap.Dataset)
	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"meta": gin.H{
			"count": len(data),
		},
	})
}

// handleV1GrowthRecords returns the plants of one condition with the
// workbook's column labels
// GET /api/v1/growth/:condition
func (s *Server) handleV1GrowthRecords(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	cond, ok := s.condition(c, snap.Dataset)
	if !ok {
		return
	}

	records := snap.Dataset.GrowthFor(cond.Name)
	c.JSON(http.StatusOK, gin.H{
		"data": records,
		"meta": gin.H{
			"condition": cond.Name,
			"target_ec": cond.TargetEC,
			"columns":   snap.Dataset.GrowthColumns[cond.Name],
			"count":     len(records),
		},
	})
}
