package reporting

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/salescope-lab/salescope/internal/core/engine"
	httperr "github.com/salescope-lab/salescope/internal/core/errors"
)

// RegisterRoutes registers the analytics query API. Every endpoint is
// read-only over the current snapshot; the reload endpoint is the single
// mutating entry point and only swaps the snapshot pointer.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api")
	api.POST("/admin/reload", s.HandleReload)

	q := api.Group("", s.requireSnapshot)
	q.GET("/sales-over-time", s.HandleSalesOverTime)
	q.GET("/sales-by-category", s.HandleSalesByCategory)
	q.GET("/sales-by-country", s.HandleSalesByCountry)
	q.GET("/kpis", s.HandleKPIs)
	q.GET("/top-customers", s.HandleTopCustomers)
	q.GET("/monthly-trends", s.HandleMonthlyTrends)
	q.GET("/quarterly-analysis", s.HandleQuarterlyAnalysis)
	q.GET("/product-performance", s.HandleProductPerformance)
}

// requireSnapshot rejects queries arriving before the first snapshot load.
// Reload stays reachable so an operator can recover the instance.
func (s *Service) requireSnapshot(c *gin.Context) {
	if s.holder.Current() == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpSnapshotUnavailable,
			Message:   "No dataset snapshot is loaded",
		})
		return
	}
	c.Next()
}

// HandleSalesOverTime handles GET /api/sales-over-time?granularity=month
// Unknown granularity values fall back to month rather than erroring.
func (s *Service) HandleSalesOverTime(c *gin.Context) {
	granularity := engine.ParseGranularity(c.Query("granularity"))

	data := s.cached("sales-over-time", string(granularity), func(snap *engine.Snapshot) interface{} {
		return engine.SalesOverTime(snap, granularity)
	})
	c.JSON(http.StatusOK, gin.H{"data": data, "granularity": granularity})
}

// HandleSalesByCategory handles GET /api/sales-by-category
func (s *Service) HandleSalesByCategory(c *gin.Context) {
	data := s.cached("sales-by-category", "", func(snap *engine.Snapshot) interface{} {
		return engine.SalesByCategory(snap)
	})
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// HandleSalesByCountry handles GET /api/sales-by-country
func (s *Service) HandleSalesByCountry(c *gin.Context) {
	data := s.cached("sales-by-country", "", func(snap *engine.Snapshot) interface{} {
		return engine.SalesByCountry(snap)
	})
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// HandleKPIs handles GET /api/kpis
func (s *Service) HandleKPIs(c *gin.Context) {
	data := s.cached("kpis", "", func(snap *engine.Snapshot) interface{} {
		return engine.KPIs(snap)
	})
	c.JSON(http.StatusOK, gin.H{"data": data})
}

type topCustomersResult struct {
	Rows  []engine.CustomerSales
	Count int
}

// HandleTopCustomers handles GET /api/top-customers?limit=10
// A limit of zero yields an empty result, not an error; only a value that
// fails to parse as an integer is rejected.
func (s *Service) HandleTopCustomers(c *gin.Context) {
	limit := engine.DefaultTopCustomersLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidParameterError,
				Message:   "Invalid limit parameter",
				Details:   err.Error(),
			})
			return
		}
		limit = parsed
	}

	data := s.cached("top-customers", strconv.Itoa(limit), func(snap *engine.Snapshot) interface{} {
		rows, count := engine.TopCustomers(snap, limit)
		return topCustomersResult{Rows: rows, Count: count}
	})
	result := data.(topCustomersResult)
	c.JSON(http.StatusOK, gin.H{
		"data":            result.Rows,
		"limit_requested": limit,
		"results_count":   result.Count,
	})
}

// HandleMonthlyTrends handles GET /api/monthly-trends
func (s *Service) HandleMonthlyTrends(c *gin.Context) {
	data := s.cached("monthly-trends", "", func(snap *engine.Snapshot) interface{} {
		return engine.MonthlyTrends(snap)
	})
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// HandleQuarterlyAnalysis handles GET /api/quarterly-analysis
func (s *Service) HandleQuarterlyAnalysis(c *gin.Context) {
	data := s.cached("quarterly-analysis", "", func(snap *engine.Snapshot) interface{} {
		return engine.QuarterlyAnalysis(snap)
	})
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// HandleProductPerformance handles GET /api/product-performance
func (s *Service) HandleProductPerformance(c *gin.Context) {
	data := s.cached("product-performance", "", func(snap *engine.Snapshot) interface{} {
		return engine.ProductLinePerformance(snap)
	})
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// HandleReload handles POST /api/admin/reload
func (s *Service) HandleReload(c *gin.Context) {
	snap, err := s.Reload(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpReloadFailedError,
			Message:   "Failed to reload snapshot",
			Details:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "reloaded",
		"version": snap.Version(),
		"records": snap.Len(),
	})
}
