package core

// errors.go defines the admission and retrieval error taxonomy and maps any
// error to a user-facing message with a stable code. Clients and support
// staff reference the codes; the raw error text stays server-side.

import (
	"errors"
	"strings"
)

// Sentinel errors returned by the admission pipeline, image codec, and store.
// The web layer translates these into HTTP statuses.
var (
	ErrInvalidBody                = errors.New("invalid request body")
	ErrMissingFields              = errors.New("missing fields")
	ErrTeamExists                 = errors.New("team exists")
	ErrInvalidAffiliationSpelling = errors.New("invalid affiliation spelling")
	ErrSlotsFilled                = errors.New("slots filled")
	ErrNotFound                   = errors.New("not found")
	ErrInvalidImageData           = errors.New("invalid image data")
	ErrInvalidImageMime           = errors.New("invalid image mime")
)

// UserMessage is a client-safe description of an error.
type UserMessage struct {
	Message string
	Action  string
	Code    string
}

// sentinelMessages maps each sentinel to its user message.
var sentinelMessages = []struct {
	err error
	msg UserMessage
}{
	{ErrInvalidBody, UserMessage{
		Message: "Request body could not be read",
		Action:  "Send a JSON body in the documented shape",
		Code:    "REG000",
	}},
	{ErrMissingFields, UserMessage{
		Message: "Required registration fields are missing",
		Action:  "Provide teamName, teamSize, members, transactionId, and paymentImage",
		Code:    "REG001",
	}},
	{ErrTeamExists, UserMessage{
		Message: "A team with this name is already registered",
		Action:  "Pick a different team name",
		Code:    "REG002",
	}},
	{ErrInvalidAffiliationSpelling, UserMessage{
		Message: "College name is misspelled",
		Action:  "Enter the college name exactly as it is officially written",
		Code:    "REG003",
	}},
	{ErrSlotsFilled, UserMessage{
		Message: "All slots for this college are filled",
		Action:  "Registration for this college is closed",
		Code:    "REG004",
	}},
	{ErrNotFound, UserMessage{
		Message: "Registration not found",
		Action:  "Check the registration id",
		Code:    "REG005",
	}},
	{ErrInvalidImageData, UserMessage{
		Message: "Stored payment image is not valid",
		Action:  "Contact the organizers to resubmit the payment screenshot",
		Code:    "IMG001",
	}},
	{ErrInvalidImageMime, UserMessage{
		Message: "Stored payment image has no readable type",
		Action:  "Contact the organizers to resubmit the payment screenshot",
		Code:    "IMG002",
	}},
}

// storagePatterns catches backend failures by message fragment, in order.
var storagePatterns = []struct {
	pattern string
	msg     UserMessage
}{
	{"duplicate key", UserMessage{
		Message: "A team with this name is already registered",
		Action:  "Pick a different team name",
		Code:    "REG002",
	}},
	{"connection refused", UserMessage{
		Message: "Unable to reach the database",
		Action:  "Please try again in a few moments",
		Code:    "DB001",
	}},
	{"connection reset", UserMessage{
		Message: "Database connection was interrupted",
		Action:  "Please try again",
		Code:    "DB002",
	}},
	{"timeout", UserMessage{
		Message: "Operation timed out",
		Action:  "Please try again",
		Code:    "DB003",
	}},
	{"context canceled", UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "DB004",
	}},
}

// MapError converts any error into a UserMessage. Unrecognized errors get a
// generic message so internal detail never reaches a client.
func MapError(err error) UserMessage {
	for _, s := range sentinelMessages {
		if errors.Is(err, s.err) {
			return s.msg
		}
	}

	lower := strings.ToLower(err.Error())
	for _, p := range storagePatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}

	return UserMessage{
		Message: "Something went wrong",
		Action:  "Please try again; contact the organizers if it persists",
		Code:    "SRV000",
	}
}
