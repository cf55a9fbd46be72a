package factsheethttp

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"factsheet/internal/catalog"
	"factsheet/internal/factsheet"
	"factsheet/internal/logger"
	"factsheet/internal/render"
)

// Service is the part of factsheet.Service the handlers need. Every call
// triggers a fresh fetch, same as a page load.
type Service interface {
	Load(ctx context.Context) (factsheet.Factsheet, error)
	Chart(ctx context.Context, id string) (factsheet.ChartPayload, error)
}

type Router struct {
	service Service
	render  render.Options
}

func NewRouter(service Service, opts render.Options) *Router {
	return &Router{service: service, render: opts}
}

// Register mounts the JSON routes on group.
func (r *Router) Register(group *gin.RouterGroup) {
	if group == nil {
		return
	}
	group.GET("", r.handleFactsheet)
	group.GET("/charts/:id", r.handleChart)
}

// RegisterPage mounts the rendered page at / and /factsheet.
func (r *Router) RegisterPage(router *gin.Engine) {
	router.GET("/", r.handlePage)
	router.GET("/factsheet", r.handlePage)
}

func (r *Router) handleFactsheet(c *gin.Context) {
	fs, err := r.service.Load(c.Request.Context())
	if err != nil {
		logger.Errorf("factsheet build failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, fs)
}

func (r *Router) handleChart(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	payload, err := r.service.Chart(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownChart) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Errorf("chart %s build failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (r *Router) handlePage(c *gin.Context) {
	fs, err := r.service.Load(c.Request.Context())
	if err != nil {
		logger.Errorf("factsheet build failed: %v", err)
		c.String(http.StatusInternalServerError, "factsheet unavailable")
		return
	}
	html, err := render.HTML(fs, r.render)
	if err != nil {
		logger.Errorf("factsheet render failed: %v", err)
		c.String(http.StatusInternalServerError, "factsheet unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
