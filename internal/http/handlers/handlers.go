package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/brewpulse/backend/internal/acquire"
	"github.com/brewpulse/backend/internal/service"
	"github.com/brewpulse/backend/internal/snapshot"
)

// Handler adapts the metrics engine to its HTTP boundary. Every GET returns
// a read-only view model computed off the current snapshot; the two admin
// POSTs are the engine's only load entry points.
type Handler struct {
	Cache            *snapshot.Cache
	Loader           *service.Loader
	Fetcher          *acquire.Fetcher
	Validator        *validator.Validate
	Logger           zerolog.Logger
	ExcludedCampaign string
	MaxUploadSizeMB  int64
}

func (h *Handler) extractor() *service.Extractor {
	return service.NewExtractor(h.Cache.Records(), h.ExcludedCampaign)
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"record_count": h.Cache.RecordCount(),
	})
}

// @Summary Dashboard metrics
// @Description Full metrics snapshot derived from the current dataset
// @Tags metrics
// @Produce json
// @Success 200 {object} models.MetricsSnapshot
// @Router /api/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.extractor().Snapshot())
}

// @Summary Daily trend series
// @Tags metrics
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/trends [get]
func (h *Handler) Trends(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"trend": h.extractor().Trend()})
}

// @Summary Risk hotspots
// @Tags metrics
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/hotspots [get]
func (h *Handler) Hotspots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hotspots": h.extractor().Hotspots()})
}

// @Summary Inferred master data
// @Description Best-effort products, breweries and outlets synthesized from
// @Description weak string signals; default fallback entries included.
// @Tags metrics
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/masterdata [get]
func (h *Handler) MasterData(c *gin.Context) {
	e := h.extractor()
	c.JSON(http.StatusOK, gin.H{
		"products":  e.Products(),
		"breweries": e.Breweries(),
		"outlets":   e.Outlets(),
	})
}

// @Summary Dataset validation verdict
// @Tags metrics
// @Produce json
// @Success 200 {object} models.ValidationResult
// @Router /api/validation [get]
func (h *Handler) Validation(c *gin.Context) {
	c.JSON(http.StatusOK, h.extractor().Snapshot().Validation)
}

// @Summary Dataset status
// @Description Record count and the sufficient-real-data predicate that
// @Description gates real versus synthetic metrics downstream.
// @Tags datasets
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/data-status [get]
func (h *Handler) DataStatus(c *gin.Context) {
	resp := gin.H{
		"record_count":         h.Cache.RecordCount(),
		"sufficient_real_data": h.Cache.HasSufficientRealData(),
	}
	if ds := h.Cache.Current(); ds != nil {
		resp["source"] = ds.Source
		resp["loaded_at"] = ds.LoadedAt
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Upload interaction-report CSV
// @Description Parses the upload and atomically replaces the cached dataset
// @Tags datasets
// @Accept multipart/form-data
// @Produce json
// @Param report formData file true "report.csv"
// @Success 200 {object} models.LoadSummary
// @Failure 400 {object} map[string]any
// @Router /api/datasets [post]
func (h *Handler) UploadDataset(c *gin.Context) {
	file, err := c.FormFile("report")
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "report file required", nil)
		return
	}
	if !validateExt(file.Filename) {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "report must be a .csv file", nil)
		return
	}
	if max := h.MaxUploadSizeMB << 20; max > 0 && file.Size > max {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST",
			fmt.Sprintf("report exceeds %dMB limit", h.MaxUploadSizeMB), nil)
		return
	}

	f, err := file.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, "UPLOAD_ERROR", "failed to open upload", err.Error())
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		writeError(c, http.StatusBadRequest, "UPLOAD_ERROR", "failed to read upload", err.Error())
		return
	}

	summary := h.Loader.LoadCSV(string(data), file.Filename)
	c.JSON(http.StatusOK, summary)
}

type FetchRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// @Summary Load interaction-report CSV from a URL
// @Tags datasets
// @Accept json
// @Produce json
// @Param request body FetchRequest true "fetch request"
// @Success 200 {object} models.LoadSummary
// @Failure 400 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /api/datasets/fetch [post]
func (h *Handler) FetchDataset(c *gin.Context) {
	var req FetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	// An acquisition failure is a hard load failure: the cached snapshot is
	// left untouched.
	text, err := h.Fetcher.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		h.Logger.Error().Err(err).Str("url", req.URL).Msg("dataset fetch failed")
		writeError(c, http.StatusBadGateway, "FETCH_ERROR", "Failed to fetch dataset", err.Error())
		return
	}

	summary := h.Loader.LoadCSV(text, req.URL)
	c.JSON(http.StatusOK, summary)
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

func validateExt(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == ".csv"
}
