package http

import (
	"net/http"

	"github.com/aussiebroadwan/intake/pkg/httpx"
	"github.com/aussiebroadwan/intake/pkg/intakesdk"
)

// RootHandler godoc
//
//	@Summary		API banner
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	intakesdk.MessageResponse
//	@Router			/ [get].
func RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, intakesdk.MessageResponse{Message: msgAPIBanner})
	}
}
