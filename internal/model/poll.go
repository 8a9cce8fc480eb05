package model

import (
	"time"

	"github.com/google/uuid"
)

type Poll struct {
	ID        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PollFull is what the owner and admins see: owner id and per-option tallies.
type PollFull struct {
	ID        uuid.UUID    `json:"id"`
	Question  string       `json:"question"`
	OwnerID   uuid.UUID    `json:"owner_id"`
	Options   []OptionFull `json:"options"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type OptionFull struct {
	ID       uuid.UUID `json:"id"`
	Text     string    `json:"text"`
	Position int       `json:"position"`
	Votes    int       `json:"votes"`
}

// PollPublic withholds the owner id and vote counts from everyone else,
// anonymous callers included.
type PollPublic struct {
	ID        uuid.UUID      `json:"id"`
	Question  string         `json:"question"`
	Options   []OptionPublic `json:"options"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type OptionPublic struct {
	ID       uuid.UUID `json:"id"`
	Text     string    `json:"text"`
	Position int       `json:"position"`
}

type CreatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type UpdatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type SubmitVoteRequest struct {
	OptionID string `json:"option_id"`
}
