package tally

import "github.com/vncsmyrnk/pollboard/internal/core/domain"

var ageBuckets = []domain.AgeBucket{
	{Label: "18-25", Min: 18, Max: 25},
	{Label: "26-35", Min: 26, Max: 35},
	{Label: "36-45", Min: 36, Max: 45},
	{Label: "46-55", Min: 46, Max: 55},
	{Label: "56-65", Min: 56, Max: 65},
	{Label: "66+", Min: 66},
}

// HistogramByAge buckets ages into the six fixed ranges. Ages below 18 are
// not counted anywhere.
func HistogramByAge(ages []int) domain.AgeHistogram {
	hist := make(domain.AgeHistogram, len(ageBuckets))
	copy(hist, ageBuckets)

	for _, age := range ages {
		for i := range hist {
			if age >= hist[i].Min && (hist[i].Max == 0 || age <= hist[i].Max) {
				hist[i].Count++
				break
			}
		}
	}
	return hist
}

// RespondentAges extracts the age of every response, valid or not.
func RespondentAges(responses []domain.SurveyResponse) []int {
	ages := make([]int, 0, len(responses))
	for _, r := range responses {
		ages = append(ages, r.Age)
	}
	return ages
}
