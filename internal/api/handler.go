// Package api serves the read side of the catalog over http.
package api

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"schedulestorm-backend/internal/aggregate"
	"schedulestorm-backend/internal/components/assert"
	"schedulestorm-backend/internal/components/telemetry"

	"github.com/gin-gonic/gin"
)

const report_handler_respond = "handler.respond"

// Catalogs is the read model the handlers serve.
type Catalogs interface {
	GetCatalog(ctx context.Context, uni, term string) (aggregate.Catalog, error)
	ListTerms(ctx context.Context, uni string) (map[string]string, error)
	ListLocations(ctx context.Context, uni string) ([]string, error)
	ListUniversities(ctx context.Context) (map[string]aggregate.UniversityInfo, error)
}

type Handler struct {
	catalogs Catalogs
	tel      telemetry.API
}

func NewHandler(catalogs Catalogs, tel telemetry.API) *Handler {
	assert.NotNil(catalogs)
	assert.NotNil(tel)
	return &Handler{
		catalogs: catalogs,
		tel:      telemetry.NewScopedAPI("api", tel),
	}
}

type errorBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

var notFound = errorBody{
	Title:       "Resource Not Found",
	Description: "The specified university or term was not found",
}

func etag(body []byte) string {
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`
}

// respond writes v as json with a weak etag, answering 304 when the
// client already holds the same representation.
func (h *Handler) respond(c *gin.Context, v any, err error) {
	if errors.Is(err, aggregate.ErrUnknownUniversity) || errors.Is(err, aggregate.ErrUnknownTerm) {
		c.JSON(http.StatusBadRequest, notFound)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody{
			Title:       "Internal Server Error",
			Description: "The catalog could not be read",
		})
		return
	}

	body, err := json.Marshal(v)
	if err != nil {
		h.tel.ReportBroken(report_handler_respond, err, c.Request.URL.Path)
		c.Status(http.StatusInternalServerError)
		return
	}

	tag := etag(body)
	c.Header("ETag", tag)
	if match := c.GetHeader("If-None-Match"); match != "" && match == tag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// ListUniversities
// GET /v1/unis
func (h *Handler) ListUniversities(c *gin.Context) {
	unis, err := h.catalogs.ListUniversities(c.Request.Context())
	h.respond(c, unis, err)
}

// ListTerms
// GET /v1/unis/:uni/terms
func (h *Handler) ListTerms(c *gin.Context) {
	terms, err := h.catalogs.ListTerms(c.Request.Context(), c.Param("uni"))
	h.respond(c, terms, err)
}

// ListLocations
// GET /v1/unis/:uni/locations
func (h *Handler) ListLocations(c *gin.Context) {
	locations, err := h.catalogs.ListLocations(c.Request.Context(), c.Param("uni"))
	h.respond(c, locations, err)
}

// GetCatalog
// GET /v1/unis/:uni/:term/all
func (h *Handler) GetCatalog(c *gin.Context) {
	catalog, err := h.catalogs.GetCatalog(c.Request.Context(), c.Param("uni"), c.Param("term"))
	h.respond(c, catalog, err)
}
