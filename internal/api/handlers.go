package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/chat"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/domain"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/leadio"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/processor"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/scoring"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/telemetry"
)

// Handler handles HTTP requests for the lead scoring API
type Handler struct {
	engine      *scoring.Engine
	batchScorer *processor.BatchScorer
	advisor     *chat.Advisor
	telemetry   *telemetry.Provider
	batchLimit  int
	csvRowLimit int
	logger      Logger
}

// Logger defines the logging interface
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// NewHandler creates a new API handler
func NewHandler(
	engine *scoring.Engine,
	batchScorer *processor.BatchScorer,
	advisor *chat.Advisor,
	tp *telemetry.Provider,
	batchLimit int,
	csvRowLimit int,
	logger Logger,
) *Handler {
	return &Handler{
		engine:      engine,
		batchScorer: batchScorer,
		advisor:     advisor,
		telemetry:   tp,
		batchLimit:  batchLimit,
		csvRowLimit: csvRowLimit,
		logger:      logger,
	}
}

// Score handles POST /api/v1/score
func (h *Handler) Score(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid score request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("Scoring lead",
		"lead_id", req.Lead.ID,
		"company", req.Lead.Company,
	)

	start := time.Now()
	result := h.engine.ScoreTraced(c.Request.Context(), *req.Lead)
	h.recordScore(c, "single", result, time.Since(start))

	h.logger.Info("Lead scored",
		"lead_id", result.Lead.ID,
		"score", result.Score,
		"priority", result.Priority,
	)

	c.JSON(http.StatusOK, ScoreResponse{Result: result})
}

// ScoreBatch handles POST /api/v1/score/batch
func (h *Handler) ScoreBatch(c *gin.Context) {
	var req BatchScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid batch score request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.batchLimit > 0 && len(req.Leads) > h.batchLimit {
		h.logger.Warn("Batch too large", "batch_size", len(req.Leads), "limit", h.batchLimit)
		c.JSON(http.StatusBadRequest, gin.H{"error": "batch exceeds the size limit"})
		return
	}

	h.logger.Info("Batch scoring leads", "batch_size", len(req.Leads))

	start := time.Now()
	results, err := h.batchScorer.Score(c.Request.Context(), req.Leads)
	if err != nil {
		h.logger.Error("Batch scoring failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	perLead := time.Duration(0)
	if len(results) > 0 {
		perLead = time.Since(start) / time.Duration(len(results))
	}
	for _, result := range results {
		h.recordScore(c, "batch", result, perLead)
	}

	// Scoring is total; a lead only fails when the batch is cancelled,
	// which surfaces as a whole-batch error above.
	success := 0
	for _, result := range results {
		if result != nil {
			success++
		}
	}

	h.logger.Info("Batch scoring completed",
		"total", len(results),
		"success", success,
		"failed", len(results)-success,
	)

	c.JSON(http.StatusOK, BatchScoreResponse{
		Results: results,
		Total:   len(results),
		Success: success,
		Failed:  len(results) - success,
	})
}

// ScoreCSV handles POST /api/v1/score/csv. It accepts either a raw
// text/csv body or a multipart upload under the "file" field, scores every
// imported row, and responds with the scored rows. The default response is
// CSV with score, priority_label, and justification columns appended;
// ?format=json returns JSON including per-row rejection detail.
func (h *Handler) ScoreCSV(c *gin.Context) {
	body, err := h.csvBody(c)
	if err != nil {
		h.logger.Warn("Invalid CSV upload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imported, err := leadio.ImportLeads(body, h.csvRowLimit)
	if err != nil {
		h.handleImportError(c, err)
		return
	}

	h.logger.Info("CSV imported",
		"accepted", len(imported.Leads),
		"rejected", len(imported.Rejected),
	)
	if h.telemetry != nil {
		h.telemetry.RecordCSVImport(len(imported.Leads), imported.RejectedByReason())
	}

	start := time.Now()
	results, err := h.batchScorer.Score(c.Request.Context(), imported.Leads)
	if err != nil {
		h.logger.Error("CSV scoring failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	perLead := time.Duration(0)
	if len(results) > 0 {
		perLead = time.Since(start) / time.Duration(len(results))
	}
	for _, result := range results {
		h.recordScore(c, "csv", result, perLead)
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, CSVScoreResponse{
			Results:  results,
			Imported: len(imported.Leads),
			Rejected: imported.Rejected,
		})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="scored_leads.csv"`)
	c.Status(http.StatusOK)
	if err := leadio.ExportScored(c.Writer, results); err != nil {
		h.logger.Error("CSV export failed", "error", err)
	}
}

// Chat handles POST /api/v1/chat
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid chat request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.advisor.Ask(c.Request.Context(), req.Question, req.Leads)
	switch {
	case errors.Is(err, chat.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat advisor is not configured"})
		return
	case errors.Is(err, chat.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "chat rate limit exceeded, try again shortly"})
		return
	case err != nil:
		h.logger.Error("Chat request failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "chat advisor failed to answer"})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		Answer:       answer,
		LeadRelated:  chat.IsLeadQuestion(req.Question),
		LeadsFetched: len(req.Leads),
	})
}

// ChatSuggestions handles POST /api/v1/chat/suggestions
func (h *Handler) ChatSuggestions(c *gin.Context) {
	var req SuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid suggestions request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, SuggestionsResponse{
		Suggestions: h.advisor.Suggestions(req.Leads),
	})
}

// GetCatalog handles GET /api/v1/catalog
func (h *Handler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, toCatalogResponse(h.engine.Catalog()))
}

// ReadyCheck handles GET /ready
func (h *Handler) ReadyCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": gin.H{
			"catalog":      "ok",
			"chat_advisor": h.chatStatus(),
		},
	})
}

func (h *Handler) chatStatus() string {
	if h.advisor != nil && h.advisor.Enabled() {
		return "ok"
	}
	return "disabled"
}

// csvBody selects the CSV payload source: multipart "file" field when
// present, otherwise the raw request body.
func (h *Handler) csvBody(c *gin.Context) (io.Reader, error) {
	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, _, formErr := c.Request.FormFile("file")
		if formErr != nil {
			return nil, errors.New("multipart upload must carry a \"file\" field")
		}
		return file, nil
	}
	return c.Request.Body, nil
}

func (h *Handler) handleImportError(c *gin.Context, err error) {
	h.logger.Warn("CSV import failed", "error", err)
	switch {
	case errors.Is(err, leadio.ErrTooManyRows):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, leadio.ErrMissingColumns), errors.Is(err, leadio.ErrEmptyFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func (h *Handler) recordScore(c *gin.Context, source string, result *domain.ScoredLead, duration time.Duration) {
	if h.telemetry == nil {
		return
	}
	h.telemetry.RecordScore(
		c.Request.Context(),
		source,
		result.Priority,
		result.Score,
		result.Breakdown.IsUrgent,
		result.Breakdown.HasBudget,
		duration,
	)
}
