package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bizbooks_backend/internal/core/ports/services"
	"github.com/SscSPs/bizbooks_backend/internal/dto"
	"github.com/SscSPs/bizbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests for the posting workflow.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// RegisterJournalRoutes registers journal routes.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.POST("/:journalID/post", h.postJournal)
		journals.POST("/:journalID/void", h.voidJournal)
	}
}

// createJournal godoc
// @Summary Record a journal
// @Description Records a journal with its lines. With post=true it is validated and posted at once, otherwise it is kept as a draft.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest true "Journal details"
// @Success 201 {object} dto.GetJournalResponse
// @Failure 400 {object} map[string]string "Invalid input or unbalanced journal"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create journal"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireOwner(c, logger)
	if !ok {
		return
	}

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "Invalid request format")
		return
	}

	logger = logger.With(slog.String("owner_id", ownerID))
	logger.Info("Received request to create journal",
		slog.String("date", req.Date),
		slog.Int("lines", len(req.Lines)),
		slog.Bool("post", req.Post))

	journal, err := h.journalService.CreateJournal(c.Request.Context(), ownerID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create journal")
		return
	}

	logger.Info("Journal created successfully", slog.String("journal_id", journal.JournalID), slog.String("status", string(journal.Status)))
	c.JSON(http.StatusCreated, dto.ToGetJournalResponse(journal))
}

// getJournal godoc
// @Summary Get a journal
// @Description Retrieves a journal with its lines in entry order
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.GetJournalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Security BearerAuth
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireOwner(c, logger)
	if !ok {
		return
	}
	journalID := c.Param("journalID")
	logger = logger.With(slog.String("owner_id", ownerID), slog.String("journal_id", journalID))

	journal, err := h.journalService.GetJournal(c.Request.Context(), ownerID, journalID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToGetJournalResponse(journal))
}

// listJournals godoc
// @Summary List journals
// @Description Lists journals of every status, newest first, with cursor pagination
// @Tags journals
// @Produce  json
// @Param   fromDate query string false "Start date (YYYY-MM-DD)"
// @Param   toDate query string false "End date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journals"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireOwner(c, logger)
	if !ok {
		return
	}

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "Invalid query parameters")
		return
	}

	logger = logger.With(slog.String("owner_id", ownerID))
	resp, err := h.journalService.ListJournals(c.Request.Context(), ownerID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list journals")
		return
	}

	logger.Info("Journals listed successfully", slog.Int("count", len(resp.Journals)))
	c.JSON(http.StatusOK, resp)
}

// postJournal godoc
// @Summary Post a draft journal
// @Description Validates a draft journal and moves it to POSTED so it feeds reports
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Journal lines do not validate"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not a draft"
// @Failure 500 {object} map[string]string "Failed to post journal"
// @Security BearerAuth
// @Router /journals/{journalID}/post [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireOwner(c, logger)
	if !ok {
		return
	}
	journalID := c.Param("journalID")
	logger = logger.With(slog.String("owner_id", ownerID), slog.String("journal_id", journalID))
	logger.Info("Received request to post journal")

	journal, err := h.journalService.PostJournal(c.Request.Context(), ownerID, journalID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// voidJournal godoc
// @Summary Void a posted journal
// @Description Moves a POSTED journal to VOID, removing it from every report
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not posted"
// @Failure 500 {object} map[string]string "Failed to void journal"
// @Security BearerAuth
// @Router /journals/{journalID}/void [post]
func (h *journalHandler) voidJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireOwner(c, logger)
	if !ok {
		return
	}
	journalID := c.Param("journalID")
	logger = logger.With(slog.String("owner_id", ownerID), slog.String("journal_id", journalID))
	logger.Info("Received request to void journal")

	journal, err := h.journalService.VoidJournal(c.Request.Context(), ownerID, journalID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to void journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}
