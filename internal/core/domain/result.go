package domain

import "time"

type CandidateTally struct {
	CandidateID int64  `json:"id"`
	Name        string `json:"name"`
	Party       string `json:"party"`
	Profile     string `json:"profile,omitempty"`
	VoteCount   int64  `json:"voteCount"`
	Percentage  string `json:"percentage"`
}

// PollResult is derived on every refresh and never persisted.
type PollResult struct {
	TotalVotes   int64            `json:"totalVotes"`
	SpoiledVotes int64            `json:"spoiled_votes"`
	Results      []CandidateTally `json:"results"`
}

type AgeBucket struct {
	Label string `json:"ageGroup"`
	Min   int    `json:"-"`
	Max   int    `json:"-"` // 0 means unbounded
	Count int    `json:"count"`
}

type AgeHistogram []AgeBucket

// Count returns the count of the bucket with the given label.
func (h AgeHistogram) Count(label string) int {
	for _, b := range h {
		if b.Label == label {
			return b.Count
		}
	}
	return 0
}

func (h AgeHistogram) Total() int {
	total := 0
	for _, b := range h {
		total += b.Count
	}
	return total
}

type OptionCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type PollDashboard struct {
	PollID       int64      `json:"id"`
	Title        string     `json:"pollTitle"`
	Category     string     `json:"category"`
	Region       string     `json:"region"`
	County       string     `json:"county"`
	Constituency string     `json:"constituency"`
	Ward         string     `json:"ward"`
	Result       PollResult `json:"result"`
	Turnout      string     `json:"turnout"`
	LastUpdated  time.Time  `json:"lastUpdated"`
	ComputedAt   time.Time  `json:"computedAt"`
}

type OpinionAnalytics struct {
	PollID             int64         `json:"poll_id"`
	Title              string        `json:"title"`
	Category           string        `json:"category"`
	Region             string        `json:"region"`
	TotalResponses     int           `json:"totalResponses"`
	AgeDistribution    AgeHistogram  `json:"ageDistribution"`
	CompetitorQuestion string        `json:"competitorQuestion"`
	CompetitorVotes    []OptionCount `json:"competitorVotes"`
	SentimentQuestion  string        `json:"sentimentQuestion"`
	SentimentCounts    []OptionCount `json:"sentimentCounts"`
	ComputedAt         time.Time     `json:"computedAt"`
}
