package http

import (
	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/pkg/intakesdk"
)

func toClientResponse(c domain.Client) intakesdk.ClientResponse {
	return intakesdk.ClientResponse{
		ID:          c.ID,
		FullName:    c.FullName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		SubmittedAt: c.SubmittedAt,
	}
}

func toClientResponses(cs []domain.Client) []intakesdk.ClientResponse {
	out := make([]intakesdk.ClientResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toClientResponse(c))
	}
	return out
}
