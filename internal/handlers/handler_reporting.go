package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	portssvc "github.com/SscSPs/bizbooks_backend/internal/core/ports/services"
	"github.com/SscSPs/bizbooks_backend/internal/dto"
	"github.com/SscSPs/bizbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// agingKinds maps the aging path segment to the document kind.
var agingKinds = map[string]domain.DocumentKind{
	"receivables": domain.Receivable,
	"payables":    domain.Payable,
}

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers routes related to financial reports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/day-book", h.getDayBook)
		reportingGroup.GET("/account-summary", h.getAccountSummary)
		reportingGroup.GET("/aging/:kind", h.getAging)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Lists every account with its total debit and credit over all posted journals and whether the totals agree
// @Tags reports
// @Produce json
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireOwner(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("owner_id", ownerID))
	logger.Info("Received request to generate trial balance report")

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), ownerID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate trial balance report")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getDayBook godoc
// @Summary Generate day book
// @Description Lists cash and bank movements with a running balance that restarts every day
// @Tags reports
// @Produce json
// @Param fromDate query string false "Start date (YYYY-MM-DD)"
// @Param toDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.DayBookResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/day-book [get]
func (h *reportingHandler) getDayBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireOwner(c, logger)
	if !ok {
		return
	}

	var params dto.ReportRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "Invalid query parameters")
		return
	}
	dateRange, ok := parseRange(c, logger, params)
	if !ok {
		return
	}

	logger = logger.With(
		slog.String("owner_id", ownerID),
		slog.String("fromDate", params.FromDate),
		slog.String("toDate", params.ToDate),
	)
	logger.Info("Received request to generate day book")

	rows, err := h.reportingService.DayBook(c.Request.Context(), ownerID, dateRange)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate day book")
		return
	}

	c.JSON(http.StatusOK, dto.ToDayBookResponse(rows, dateRange))
}

// getAccountSummary godoc
// @Summary Generate account summary
// @Description Sums posted debits and credits per account for a period, optionally for some account types only
// @Tags reports
// @Produce json
// @Param fromDate query string false "Start date (YYYY-MM-DD)"
// @Param toDate query string false "End date (YYYY-MM-DD)"
// @Param types query string false "Comma separated account types, e.g. CASH,BANK"
// @Success 200 {object} dto.AccountSummaryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/account-summary [get]
func (h *reportingHandler) getAccountSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireOwner(c, logger)
	if !ok {
		return
	}

	var params dto.AccountSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "Invalid query parameters")
		return
	}
	dateRange, ok := parseRange(c, logger, params.ReportRangeParams)
	if !ok {
		return
	}
	types, err := params.AccountTypes()
	if err != nil {
		logger.Warn("Invalid account type filter", slog.String("types", params.Types), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger = logger.With(slog.String("owner_id", ownerID), slog.String("types", params.Types))
	logger.Info("Received request to generate account summary")

	summary, err := h.reportingService.AccountSummary(c.Request.Context(), ownerID, dateRange, types)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate account summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountSummaryResponse(summary))
}

// getAging godoc
// @Summary Generate aging report
// @Description Buckets unpaid invoices (receivables) or purchase bills (payables) by days past due
// @Tags reports
// @Produce json
// @Param kind path string true "receivables or payables"
// @Param asOf query string false "Evaluation date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.AgingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Unknown report kind"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/aging/{kind} [get]
func (h *reportingHandler) getAging(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := requireOwner(c, logger)
	if !ok {
		return
	}

	kind, known := agingKinds[c.Param("kind")]
	if !known {
		logger.Warn("Unknown aging report kind", slog.String("kind", c.Param("kind")))
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown aging report, use receivables or payables"})
		return
	}

	var params dto.AgingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "Invalid query parameters")
		return
	}
	var asOf time.Time
	if day, err := dto.ParseDate(params.AsOf); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf format. Use YYYY-MM-DD"})
		return
	} else if day != nil {
		asOf = *day
	}

	logger = logger.With(slog.String("owner_id", ownerID), slog.String("kind", string(kind)), slog.String("asOf", params.AsOf))
	logger.Info("Received request to generate aging report")

	report, err := h.reportingService.AgingReport(c.Request.Context(), ownerID, kind, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate aging report")
		return
	}

	c.JSON(http.StatusOK, dto.ToAgingResponse(report))
}

func parseRange(c *gin.Context, logger *slog.Logger, params dto.ReportRangeParams) (domain.DateRange, bool) {
	dateRange, err := params.DateRange()
	if err != nil {
		logger.Warn("Invalid date range", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return domain.DateRange{}, false
	}
	if dateRange.Start != nil && dateRange.End != nil && dateRange.End.Before(*dateRange.Start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "toDate must not be before fromDate"})
		return domain.DateRange{}, false
	}
	return dateRange, true
}
