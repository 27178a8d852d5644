package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/internal/intake/store"
	"github.com/aussiebroadwan/intake/internal/intake/validate"
	"github.com/aussiebroadwan/intake/pkg/slogx"
)

// SubmitInput is an unvalidated contact form.
type SubmitInput struct {
	FullName    string
	Email       string
	PhoneNumber string
}

type SubmissionService struct {
	Store store.Store
	Clock Clock
	NewID IDGenerator
}

// Submit validates and normalizes in, rejects an already registered email
// and stores a new record. Nothing is written when an error is returned.
//
// The duplicate check and the insert are separate store calls. Two
// concurrent submissions for the same email can both pass the check; only a
// uniqueness guard in the store driver stops the second insert, and that
// surfaces here as ErrDuplicateEmail too.
func (s *SubmissionService) Submit(ctx context.Context, in SubmitInput) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	name := validate.NormalizeName(in.FullName)
	if !validate.IsValidFullName(name) {
		return domain.Client{}, ErrInvalidName
	}

	email := validate.NormalizeEmail(in.Email)
	if !validate.IsValidEmail(email) {
		return domain.Client{}, ErrInvalidEmail
	}

	phone := validate.NormalizePhone(strings.TrimSpace(in.PhoneNumber))
	if !validate.IsValidPhone(phone) {
		return domain.Client{}, ErrInvalidPhone
	}

	_, err := s.Store.Clients().GetClientByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.Client{}, ErrDuplicateEmail
	case !errors.Is(err, store.ErrNotFound):
		return domain.Client{}, fmt.Errorf("lookup client by email: %w", err)
	}

	newID := s.NewID
	if newID == nil {
		newID = NewUUID
	}

	c := domain.Client{
		ID:          newID(),
		FullName:    name,
		Email:       email,
		PhoneNumber: phone,
		SubmittedAt: s.Clock.now(),
	}

	if err := s.Store.Clients().CreateClient(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			l.Warn("duplicate email caught by store guard", "client_id", c.ID)
			return domain.Client{}, ErrDuplicateEmail
		}
		return domain.Client{}, fmt.Errorf("create client: %w", err)
	}

	l.Info("client submitted", "client_id", c.ID)
	return c, nil
}
