package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/intake/internal/intake/service"
	"github.com/aussiebroadwan/intake/pkg/httpx"
	"github.com/aussiebroadwan/intake/pkg/intakesdk"
	"github.com/aussiebroadwan/intake/pkg/slogx"
)

type ClientsHandler struct {
	SubmissionService *service.SubmissionService

	metrics *Metrics
}

// ServeHTTP godoc
//
//	@Summary		Submit a contact form
//	@Description	Validates and stores a client submission. The email is lowercased and must be unique;
//	@Description	the phone number is normalized to +1-XXX-XXX-XXXX.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Param			request	body		intakesdk.SubmitClientRequest	true	"Contact form"
//	@Success		201		{object}	intakesdk.SubmitClientResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"invalid body or field"
//	@Failure		409		{object}	httpx.ErrorResponse	"email already registered"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/clients [post].
func (h *ClientsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req intakesdk.SubmitClientRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.count(resultInvalid)
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	c, err := h.SubmissionService.Submit(ctx, service.SubmitInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidName):
			h.count(resultInvalid)
			httpx.WriteError(w, http.StatusBadRequest, msgInvalidName)
		case errors.Is(err, service.ErrInvalidEmail):
			h.count(resultInvalid)
			httpx.WriteError(w, http.StatusBadRequest, msgInvalidEmail)
		case errors.Is(err, service.ErrInvalidPhone):
			h.count(resultInvalid)
			httpx.WriteError(w, http.StatusBadRequest, msgInvalidPhone)
		case errors.Is(err, service.ErrDuplicateEmail):
			h.count(resultDuplicate)
			httpx.WriteError(w, http.StatusConflict, msgDuplicateEmail)
		default:
			h.count(resultError)
			log.Error("submit client failed", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	h.count(resultCreated)
	httpx.WriteJSON(w, http.StatusCreated, intakesdk.SubmitClientResponse{
		ClientResponse: toClientResponse(c),
		Message:        msgSubmitted,
		ClientID:       c.ID,
	})
}

func (h *ClientsHandler) count(result string) {
	if h.metrics != nil {
		h.metrics.submission(result)
	}
}
