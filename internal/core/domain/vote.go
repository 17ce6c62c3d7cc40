package domain

import "github.com/google/uuid"

type Vote struct {
	PollID       int64 `json:"id"`
	CompetitorID int64 `json:"competitorId"`
}

// Selection is the competitor a ballot session has picked but not yet cast.
// It is kept apart from any aggregate so a refresh can never overwrite it.
type Selection struct {
	Session      uuid.UUID `json:"session"`
	PollID       int64     `json:"poll_id"`
	CompetitorID int64     `json:"competitor_id"`
}
