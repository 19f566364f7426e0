package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/polar-ec-dashboard/services/api/db"
)

// PublishedReader reads the snapshot last written to Postgres by the sync job.
type PublishedReader interface {
	PublishedConditions(ctx context.Context) ([]db.PublishedCondition, error)
}

// WithPublished exposes the stored snapshot next to the live dataset.
func (s *Server) WithPublished(r PublishedReader) *Server {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware())
	v1.GET("/published", func(c *gin.Context) { s.handleV1Published(c, r) })
	return s
}

// handleV1Published compares the stored snapshot with the live dataset
// GET /api/v1/published
func (s *Server) handleV1Published(c *gin.Context, r PublishedReader) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	published, err := r.PublishedConditions(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type row struct {
		db.PublishedCondition
		LiveReadings int  `json:"live_readings"`
		LivePlants   int  `json:"live_plants"`
		InSync       bool `json:"in_sync"`
	}

	// A failed live load still lets the stored snapshot be inspected.
	snap, liveErr := s.cache.Get()

	out := make([]row, 0, len(published))
	for _, pc := range published {
		entry := row{PublishedCondition: pc}
		if liveErr == nil {
			entry.LiveReadings = len(snap.Dataset.EnvironmentFor(pc.Name))
			entry.LivePlants = len(snap.Dataset.GrowthFor(pc.Name))
			entry.InSync = entry.LiveReadings == pc.Readings && entry.LivePlants == pc.Plants
		}
		out = append(out, entry)
	}

	meta := gin.H{"count": len(out)}
	if liveErr != nil {
		meta["live_error"] = liveErr.Error()
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "meta": meta})
}
