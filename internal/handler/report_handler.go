package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/finacals/finacals-backend/internal/domain"
	"github.com/finacals/finacals-backend/internal/middleware"
	"github.com/finacals/finacals-backend/internal/service"
	"github.com/finacals/finacals-backend/internal/util"
)

// ReportHandler serves spreadsheet report downloads
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// DownloadReport handles GET /api/v1/expenses/report?year=&month=. Year is
// required; a missing month produces a full-year report. An empty range
// answers 200 with an ERROR envelope so clients can show the message instead
// of a broken download.
func (h *ReportHandler) DownloadReport(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return unauthorizedError(c)
	}

	rawYear := c.QueryParam("year")
	if rawYear == "" {
		return respondError(c, http.StatusBadRequest, "year is required")
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil || year < 1 {
		return respondError(c, http.StatusBadRequest, "year must be a positive number")
	}

	var month *int
	if rawMonth := c.QueryParam("month"); rawMonth != "" {
		m, err := strconv.Atoi(rawMonth)
		if err != nil || !util.ValidMonth(m) {
			return respondError(c, http.StatusBadRequest, "month must be between 1 and 12")
		}
		month = &m
	}

	report, err := h.reportService.Export(identity.Email, year, month)
	if err != nil {
		if errors.Is(err, domain.ErrNoExpensesInRange) {
			return respondEmptyResult(c, "no expenses recorded for the requested period")
		}
		log.Error().Err(err).Str("owner", identity.Email).Int("year", year).Msg("Failed to export report")
		return respondError(c, http.StatusInternalServerError, "failed to generate report")
	}

	log.Info().Str("owner", identity.Email).Str("filename", report.Filename).Msg("Report downloaded")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.Filename))
	return c.Blob(http.StatusOK, report.ContentType, report.Data)
}
