package domain

import "time"

// CustomPoll is a free-form poll: a title and named competitors, with no
// region chain or parties.
type CustomPoll struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Competitors []CustomCompetitor `json:"competitors"`
}

type CustomCompetitor struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	VoteCount int64  `json:"voteCount"`
}

type CreateCustomPollInput struct {
	Title       string   `json:"title"`
	Competitors []string `json:"competitors"`
}

type CustomVote struct {
	CompetitorID int64 `json:"competitorId"`
}

// CustomPollResult is derived from the backend's counts on every read.
type CustomPollResult struct {
	PollID     int64      `json:"pollId"`
	Title      string     `json:"title"`
	Result     PollResult `json:"result"`
	ComputedAt time.Time  `json:"computedAt"`
}

// PollSummary is one entry of the backend's poll listing.
type PollSummary struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Region   string `json:"region,omitempty"`
}
