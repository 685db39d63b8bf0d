package server

import (
	"bytes"
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spektr-org/pokedata/dashboard"
	"github.com/spektr-org/pokedata/observability"
	"github.com/spektr-org/pokedata/render"
)

func (s *Server) handlePage(c *gin.Context) {
	sel, ok := s.selection(c)
	if !ok {
		return
	}
	d := s.build(sel)
	c.HTML(http.StatusOK, pageName, newPageData(d))
}

func (s *Server) handleGenerations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"options": dashboard.Options(s.data)})
}

func (s *Server) handleDashboard(c *gin.Context) {
	sel, ok := s.selection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.build(sel))
}

func (s *Server) handlePanel(c *gin.Context) {
	sel, ok := s.selection(c)
	if !ok {
		return
	}
	p, err := dashboard.BuildPanel(s.data, sel, c.Param("id"), s.limits...)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleChart(c *gin.Context) {
	file := c.Param("file")
	ext := path.Ext(file)
	format, err := render.ParseFormat(strings.TrimPrefix(ext, "."))
	if err != nil {
		s.fail(c, err)
		return
	}

	sel, ok := s.selection(c)
	if !ok {
		return
	}
	p, err := dashboard.BuildPanel(s.data, sel, strings.TrimSuffix(file, ext), s.limits...)
	if err != nil {
		s.fail(c, err)
		return
	}

	var buf bytes.Buffer
	start := time.Now()
	err = render.Panel(&buf, p, format, s.chartSize)
	observability.RecordChartRender(string(format), time.Since(start))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"rows":   s.data.Len(),
		"uptime": time.Since(s.started).String(),
	})
}

// ============================================================================
// HELPERS
// ============================================================================

func (s *Server) selection(c *gin.Context) (dashboard.Selection, bool) {
	sel, err := dashboard.ParseSelection(s.data, c.Query("gen"))
	if err != nil {
		s.fail(c, err)
		return dashboard.Selection{}, false
	}
	return sel, true
}

func (s *Server) build(sel dashboard.Selection) *dashboard.Dashboard {
	observability.RecordDashboardBuild(sel.String())
	return dashboard.Build(s.data, sel, s.limits...)
}

// fail writes the JSON error body with the status mapped from err.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("request_id", observability.GetRequestID(c)).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":      err.Error(),
		"request_id": observability.GetRequestID(c),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownGeneration),
		errors.Is(err, render.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrUnknownPanel),
		errors.Is(err, render.ErrNotAChart):
		return http.StatusNotFound
	case errors.Is(err, render.ErrEmptyChart):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
