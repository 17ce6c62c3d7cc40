package domain

import (
	"strings"
	"time"
)

const DefaultParty = "Independent"

// Poll is the reference data the backend returns for GET /polls/{id}.
type Poll struct {
	ID               int64          `json:"id"`
	Title            string         `json:"title"`
	Category         string         `json:"category"`
	Presidential     string         `json:"presidential,omitempty"`
	Region           string         `json:"region"`
	County           string         `json:"county"`
	Constituency     string         `json:"constituency"`
	Ward             string         `json:"ward"`
	Competitors      []Competitor   `json:"competitors"`
	Results          []BackendCount `json:"results"`
	TotalVotes       int64          `json:"totalVotes"`
	SpoiledVotes     int64          `json:"spoiled_votes,omitempty"`
	RegisteredVoters int64          `json:"registered_voters,omitempty"`
	LastUpdated      time.Time      `json:"lastUpdated"`
}

// PresidentialOrTitle is what the third core question refers to.
func (p Poll) PresidentialOrTitle() string {
	if strings.TrimSpace(p.Presidential) != "" {
		return p.Presidential
	}
	return p.Title
}

// Candidates returns the poll's competitors. Some backend views only carry
// the results rows, in which case the candidates are derived from them.
func (p Poll) Candidates() []Competitor {
	if len(p.Competitors) > 0 {
		return p.Competitors
	}
	candidates := make([]Competitor, 0, len(p.Results))
	for _, r := range p.Results {
		candidates = append(candidates, Competitor{ID: r.ID, Name: r.Name, Party: r.Party})
	}
	return candidates
}

func (p Poll) CompetitorNames() []string {
	candidates := p.Candidates()
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	return names
}

type Competitor struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Party   string `json:"party"`
	Profile string `json:"profile,omitempty"`
}

func (c Competitor) PartyOrDefault() string {
	if strings.TrimSpace(c.Party) == "" {
		return DefaultParty
	}
	return c.Party
}

// BackendCount is one row of the backend's own tally. Only the id and the
// count are read; percentages are recomputed locally.
type BackendCount struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Party     string `json:"party,omitempty"`
	VoteCount int64  `json:"voteCount"`
}

type CreatePollInput struct {
	Title        string
	Category     string
	Presidential string
	Region       string
	County       string
	Constituency string
	Ward         string
	Competitors  []Competitor
}
