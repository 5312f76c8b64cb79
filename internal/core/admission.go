package core

// admission.go is the registration admission pipeline: an ordered sequence of
// hard gates where the first failure wins and a success performs exactly one
// insert. Rejections never leave partial writes behind.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// submittedAtLayouts are the timestamp forms signup clients have been seen
// sending. Anything unparseable falls back to the admission time.
var submittedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Register admits a new team registration.
//
// Gates, in order: presence check, duplicate team name, member normalization
// with default roles, reserved-institution spelling check, leader slot
// capacity, then a single insert. The returned record is the stored one,
// including its assigned id.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Registration, error) {
	if strings.TrimSpace(in.TeamName) == "" ||
		in.TeamSize == 0 ||
		len(in.Members) == 0 ||
		strings.TrimSpace(in.TransactionID) == "" ||
		in.PaymentImage == "" {
		return nil, ErrMissingFields
	}

	teamName := NormalizeSpaces(in.TeamName)

	exists, err := s.store.TeamNameExists(ctx, teamName)
	if err != nil {
		return nil, fmt.Errorf("checking team name: %w", err)
	}
	if exists {
		return nil, ErrTeamExists
	}

	members := CleanMembers(in.Members)

	reserved := s.cfg.Event.ReservedCollege
	if reserved != "" {
		// A near-miss spelling of the reserved college would slip past the
		// exact-match slot check while still claiming the affiliation.
		reservedFold := NormalizeCompare(reserved)
		for _, m := range members {
			if NormalizeCompare(m.Clg) == reservedFold && m.Clg != reserved {
				return nil, fmt.Errorf("%w: %q", ErrInvalidAffiliationSpelling, m.Clg)
			}
		}
	}

	event := NormalizeSpaces(in.Event)
	if event == "" {
		event = s.cfg.Event.Name
	}

	reg := &Registration{
		ID:            uuid.New(),
		Event:         event,
		TeamName:      teamName,
		TeamSize:      int(in.TeamSize),
		Members:       members,
		TransactionID: strings.TrimSpace(in.TransactionID),
		PaymentImage:  in.PaymentImage,
		SubmittedAt:   parseSubmittedAt(in.SubmittedAt),
	}

	if reserved != "" && members[0].Clg == reserved {
		err = s.store.InsertReserved(ctx, reg, reserved, s.cfg.Event.ReservedCollegeLimit)
	} else {
		err = s.store.Insert(ctx, reg)
	}
	if err != nil {
		return nil, err
	}

	return reg, nil
}

// parseSubmittedAt honors a caller-supplied timestamp when it parses,
// otherwise stamps the admission time.
func parseSubmittedAt(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		for _, layout := range submittedAtLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Now().UTC()
}
