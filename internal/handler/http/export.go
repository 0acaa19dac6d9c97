package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kantorkita/hrms-backend-go/internal/domain/user"
	"github.com/kantorkita/hrms-backend-go/internal/handler/http/middleware"
	"github.com/kantorkita/hrms-backend-go/internal/handler/http/response"
	exportsvc "github.com/kantorkita/hrms-backend-go/internal/service/export"
)

type ExportHandler interface {
	Attendance(w http.ResponseWriter, r *http.Request)
}

type ExportHandlerImpl struct {
	exportService exportsvc.Service
}

func NewExportHandler(exportService exportsvc.Service) ExportHandler {
	return &ExportHandlerImpl{exportService: exportService}
}

// Attendance streams an attendance report. Defaults to the current month
// when no range is given; format is csv, xlsx or pdf.
func (h *ExportHandlerImpl) Attendance(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	if fromParam, err := queryDate(r, "from"); err != nil {
		response.BadRequest(w, "Dates must use the format 2006-01-02", nil)
		return
	} else if fromParam != nil {
		from = *fromParam
	}
	if toParam, err := queryDate(r, "to"); err != nil {
		response.BadRequest(w, "Dates must use the format 2006-01-02", nil)
		return
	} else if toParam != nil {
		to = *toParam
	}

	format := exportsvc.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = exportsvc.FormatCSV
	}

	divisionID := queryString(r, "division_id")
	if identity.Role != user.RoleAdmin {
		divisionID = identity.DivisionID
	}

	result, err := h.exportService.Attendance(r.Context(), from, to, divisionID, format)
	if err != nil {
		slog.Error("Export attendance service error", "error", err, "user_id", identity.UserID)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}
