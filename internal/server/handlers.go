package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/auxcardio/mlcds/internal/model"
	"github.com/auxcardio/mlcds/internal/risk"
)

// degraded answers 503 with the startup load error when the scoring path is
// disabled. Returns true if the request was handled.
func (s *Server) degraded(c *gin.Context) bool {
	if s.svc != nil {
		return false
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error":   "scoring unavailable",
		"details": s.loadErr.Error(),
	})
	return true
}

func (s *Server) health(c *gin.Context) {
	if s.svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "degraded",
			"error":     s.loadErr.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"model":     s.svc.ModelInfo(),
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) assess(c *gin.Context) {
	if s.degraded(c) {
		return
	}

	var rec model.PatientRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid patient record",
			"details": err.Error(),
		})
		return
	}

	a, err := s.svc.Assess(&rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "assessment failed",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) schema(c *gin.Context) {
	if s.degraded(c) {
		return
	}

	sc := s.svc.Schema()
	fields := make([]gin.H, len(sc.Fields))
	for i, f := range sc.Fields {
		fields[i] = gin.H{"name": f.Name, "label": f.Label, "kind": f.Kind}
	}
	c.JSON(http.StatusOK, gin.H{
		"version": sc.Version,
		"fields":  fields,
	})
}

func (s *Server) thresholds(c *gin.Context) {
	if s.degraded(c) {
		return
	}

	th := s.svc.Thresholds()
	c.JSON(http.StatusOK, gin.H{
		"thresholds": th,
		"legend":     risk.Legend(th),
	})
}
