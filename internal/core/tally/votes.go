// Package tally turns raw votes and survey responses into chart-ready
// statistics. Functions are pure: the same input always yields the same
// output, and records that cannot be recognised are skipped, not reported.
package tally

import (
	"strconv"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

const zeroPercent = "0.00"

// TallyVotes counts votes per candidate, in candidate order. Votes for an
// unknown candidate id are ignored.
func TallyVotes(candidates []domain.Competitor, votes []domain.Vote) domain.PollResult {
	counts := make(map[int64]int64, len(candidates))
	for _, v := range votes {
		counts[v.CompetitorID]++
	}
	return TallyCounts(candidates, counts)
}

// TallyCounts builds a PollResult from counts already aggregated elsewhere.
// Counts keyed by an unknown candidate id do not reach the denominator.
func TallyCounts(candidates []domain.Competitor, counts map[int64]int64) domain.PollResult {
	result := domain.PollResult{Results: make([]domain.CandidateTally, 0, len(candidates))}

	seen := make(map[int64]bool, len(candidates))
	for _, c := range candidates {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true

		n := max(counts[c.ID], 0)
		result.TotalVotes += n
		result.Results = append(result.Results, domain.CandidateTally{
			CandidateID: c.ID,
			Name:        c.Name,
			Party:       c.PartyOrDefault(),
			Profile:     c.Profile,
			VoteCount:   n,
		})
	}

	for i := range result.Results {
		result.Results[i].Percentage = percentOf(result.Results[i].VoteCount, result.TotalVotes)
	}
	return result
}

// ComputeTurnout is (valid + spoiled) / registered as a percentage with two
// decimals, or "0.00" when there are no registered voters.
func ComputeTurnout(totalValidVotes, spoiledVotes, registeredVoters int64) string {
	if registeredVoters <= 0 {
		return zeroPercent
	}
	return FormatPercent(float64(totalValidVotes+spoiledVotes) / float64(registeredVoters) * 100)
}

func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

func percentOf(part, total int64) string {
	if total == 0 {
		return zeroPercent
	}
	return FormatPercent(float64(part) / float64(total) * 100)
}
