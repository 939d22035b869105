package handler

import (
	"fmt"
	"net/http"

	"oak-ledger/internal/model"
	"oak-ledger/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SpreadsheetContentType is used when the server does not name one
const SpreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportReport forwards an export request and returns the file as a download
func (h *Handler) ExportReport(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.ReportRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}

	report, err := h.reports.ExportReport(c.Request().Context(), req)
	if err != nil {
		log.Error("Report export failed",
			zap.String("category", req.Category),
			zap.String("duration", req.Duration),
			zap.Error(err))
		return respondError(c, err)
	}

	contentType := report.ContentType
	if contentType == "" || contentType == echo.MIMEApplicationJSON {
		contentType = SpreadsheetContentType
	}
	filename := req.Filename(h.store.Today())

	log.Info("Report exported", zap.String("filename", filename), zap.Int("bytes", len(report.Body)))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, contentType, report.Body)
}
