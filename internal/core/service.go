package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/innoverse/regsvc/internal/config"
)

// Service wires the admission, image, and export pipelines to a Store.
type Service struct {
	store Store
	cfg   *config.Config
}

// NewService creates a Service backed by the given store.
func NewService(store Store, cfg *config.Config) *Service {
	return &Service{store: store, cfg: cfg}
}

// SlotStatus reports how many of the reserved institution's team slots are
// taken. Slots count registrations whose leader's affiliation exactly equals
// the configured college name.
type SlotStatus struct {
	College string
	Count   int
	Limit   int
	Filled  bool
}

// Slots returns the current slot status for the reserved institution.
func (s *Service) Slots(ctx context.Context) (SlotStatus, error) {
	college := s.cfg.Event.ReservedCollege
	limit := s.cfg.Event.ReservedCollegeLimit

	count, err := s.store.CountByLeaderCollege(ctx, college)
	if err != nil {
		return SlotStatus{}, fmt.Errorf("counting reserved slots: %w", err)
	}

	return SlotStatus{
		College: college,
		Count:   count,
		Limit:   limit,
		Filled:  count >= limit,
	}, nil
}

// PaymentImage loads a registration by id and decodes its stored payment
// image into raw bytes plus MIME type.
func (s *Service) PaymentImage(ctx context.Context, id string) (string, []byte, error) {
	regID, err := uuid.Parse(id)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %q is not a registration id", ErrNotFound, id)
	}

	reg, err := s.store.GetByID(ctx, regID)
	if err != nil {
		return "", nil, err
	}
	if reg.PaymentImage == "" {
		return "", nil, fmt.Errorf("%w: registration has no payment image", ErrNotFound)
	}

	return DecodeDataURL(reg.PaymentImage)
}
