package rating

import "github.com/Clark-Hu/hostel-service/internal/domain"

// Summarize computes per-criterion means over ratings. Overall is the mean of
// the five criterion means. With no ratings every mean is zero.
func Summarize(ratings []domain.Rating) domain.RatingSummary {
	var summary domain.RatingSummary
	if len(ratings) == 0 {
		return summary
	}

	var sums [domain.CriteriaCount]int
	for _, r := range ratings {
		for i, v := range r.Criteria.Values() {
			sums[i] += v
		}
	}

	n := float64(len(ratings))
	var means [domain.CriteriaCount]float64
	total := 0.0
	for i, s := range sums {
		means[i] = float64(s) / n
		total += means[i]
	}

	summary.HostelID = ratings[0].HostelID
	summary.Cleanliness = means[0]
	summary.FoodQuality = means[1]
	summary.Safety = means[2]
	summary.Location = means[3]
	summary.Affordability = means[4]
	summary.Overall = total / domain.CriteriaCount
	summary.Count = int64(len(ratings))
	return summary
}
