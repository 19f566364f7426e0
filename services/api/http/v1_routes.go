package http

// registerV1Routes sets up the v1 API structure
// Groups: /api/v1 (core), /api/v1/environment, /api/v1/growth
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware()) // Add X-API-Version: v1 header

	// Core endpoints - conditions, headline numbers, load status
	{
		v1.GET("/conditions", s.handleV1Conditions)
		v1.GET("/overview", s.handleV1Overview)
		v1.GET("/warnings", s.handleV1Warnings)
		v1.POST("/refresh", s.handleV1Refresh)
	}

	// Environment endpoints - sensor logs per condition
	environment := v1.Group("/environment")
	{
		environment.GET("/summary", s.handleV1EnvironmentSummary)
		environment.GET("/:condition", s.handleV1EnvironmentSeries)
		environment.GET("/:condition/csv", s.handleV1EnvironmentCSV)
	}

	// Growth endpoints - plant measurements per condition
	growth := v1.Group("/growth")
	{
		growth.GET("/summary", s.handleV1GrowthSummary)
		growth.GET("/:condition", s.handleV1GrowthRecords)
	}
}
