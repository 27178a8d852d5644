package http

import (
	"bytes"
	"net/http"

	"github.com/aussiebroadwan/intake/internal/intake/export"
	"github.com/aussiebroadwan/intake/internal/intake/service"
	"github.com/aussiebroadwan/intake/pkg/httpx"
	"github.com/aussiebroadwan/intake/pkg/intakesdk"
	"github.com/aussiebroadwan/intake/pkg/slogx"
)

type AdminHandler struct {
	AdminService *service.AdminService
}

// HandleList godoc
//
//	@Summary		List submissions
//	@Description	Returns every stored submission, newest first.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		intakesdk.ClientResponse
//	@Failure		403	{object}	httpx.ErrorResponse	"missing or invalid token"
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/admin/clients [get].
func (h *AdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	clients, err := h.AdminService.ListClients(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("list clients failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toClientResponses(clients))
}

// HandleExport godoc
//
//	@Summary		Export submissions as CSV
//	@Tags			Admin
//	@Produce		text/csv
//	@Security		BearerAuth
//	@Success		200	{string}	string	"CSV document"
//	@Failure		403	{object}	httpx.ErrorResponse	"missing or invalid token"
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/admin/clients/export [get].
func (h *AdminHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	// Render fully before writing so a store failure can still answer 500.
	var buf bytes.Buffer
	if err := h.AdminService.ExportCSV(r.Context(), &buf); err != nil {
		slogx.FromContext(r.Context()).Error("export clients failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// HandleStats godoc
//
//	@Summary		Submission statistics
//	@Description	Total submissions and those received within the recent window (7 days by default).
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	intakesdk.StatsResponse
//	@Failure		403	{object}	httpx.ErrorResponse	"missing or invalid token"
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Router			/admin/stats [get].
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.AdminService.Stats(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("stats failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, intakesdk.StatsResponse{
		TotalClients:      stats.TotalClients,
		RecentSubmissions: stats.RecentSubmissions,
	})
}
