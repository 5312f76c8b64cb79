// Package core implements the registration admission, payment-image codec,
// and spreadsheet export pipelines. It has no HTTP dependencies and is used
// by the web layer through a Service.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Member is one person on a team. Members have no identity of their own;
// they live inside their Registration. The member at index 0 is the leader.
type Member struct {
	Role   string `json:"role"`
	Name   string `json:"name"`
	Clg    string `json:"clg"`
	Dept   string `json:"dept"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
	Gender string `json:"gender"`
	Degree string `json:"degree"`
	Year   string `json:"year"`
}

// Registration is one stored team registration. Registrations are created
// once by the admission pipeline and never updated or deleted.
type Registration struct {
	ID            uuid.UUID `json:"id"`
	Event         string    `json:"event"`
	TeamName      string    `json:"teamName"`
	TeamSize      int       `json:"teamSize"`
	Members       []Member  `json:"members"`
	TransactionID string    `json:"transactionId"`
	PaymentImage  string    `json:"paymentImage"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// Leader returns the team leader, the member at index 0.
func (r *Registration) Leader() Member {
	if len(r.Members) == 0 {
		return Member{}
	}
	return r.Members[0]
}

// RegisterInput is the request body for a new registration. Field values
// arrive as the signup form sends them; the admission pipeline normalizes
// them before anything is stored.
type RegisterInput struct {
	Event         string   `json:"event"`
	TeamName      string   `json:"teamName"`
	TeamSize      FlexInt  `json:"teamSize"`
	Members       []Member `json:"members"`
	TransactionID string   `json:"transactionId"`
	PaymentImage  string   `json:"paymentImage"`
	SubmittedAt   string   `json:"submittedAt"`
}

// FlexInt is an int that unmarshals from either a JSON number or a numeric
// string. Signup forms are inconsistent about which one they send.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*n = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		s = strings.TrimSpace(unquoted)
	}
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid team size %q", s)
	}
	*n = FlexInt(int(f))
	return nil
}

// Store is the persistence boundary for registrations. The production
// implementation is PostgresStore; tests substitute an in-memory fake.
type Store interface {
	// Insert stores a new registration. Returns ErrTeamExists if the team
	// name is already taken (case-insensitive).
	Insert(ctx context.Context, reg *Registration) error

	// InsertReserved stores a registration whose leader claims the reserved
	// institution. The slot count and insert are a single atomic step;
	// returns ErrSlotsFilled when the limit is already reached.
	InsertReserved(ctx context.Context, reg *Registration, college string, limit int) error

	// GetByID returns one registration or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Registration, error)

	// TeamNameExists reports whether a registration with the given team name
	// exists, compared case-insensitively.
	TeamNameExists(ctx context.Context, teamName string) (bool, error)

	// CountByLeaderCollege counts registrations whose leader's affiliation
	// exactly equals college.
	CountByLeaderCollege(ctx context.Context, college string) (int, error)

	// ListAll returns every registration, newest first.
	ListAll(ctx context.Context) ([]Registration, error)
}
