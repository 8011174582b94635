package domain

import "time"

// CriteriaCount is the number of independent scoring criteria per rating.
const CriteriaCount = 5

// Criteria holds the five criterion scores, each in [1,5].
type Criteria struct {
	Cleanliness   int `json:"cleanlinessRating" validate:"min=1,max=5"`
	FoodQuality   int `json:"foodQualityRating" validate:"min=1,max=5"`
	Safety        int `json:"safetyRating" validate:"min=1,max=5"`
	Location      int `json:"locationRating" validate:"min=1,max=5"`
	Affordability int `json:"affordabilityRating" validate:"min=1,max=5"`
}

// Values returns the scores in a fixed criterion order.
func (c Criteria) Values() [CriteriaCount]int {
	return [CriteriaCount]int{c.Cleanliness, c.FoodQuality, c.Safety, c.Location, c.Affordability}
}

// Rating is one user's multi-criteria rating of a hostel.
type Rating struct {
	ID         int64
	HostelID   int64
	UserID     int64
	Criteria   Criteria
	ReviewText *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Overall is the mean of the five criteria. It is derived on read and never stored.
func (r Rating) Overall() float64 {
	sum := 0
	for _, v := range r.Criteria.Values() {
		sum += v
	}
	return float64(sum) / CriteriaCount
}

// RatingSummary carries per-criterion means and their overall mean.
type RatingSummary struct {
	HostelID      int64
	Cleanliness   float64
	FoodQuality   float64
	Safety        float64
	Location      float64
	Affordability float64
	Overall       float64
	Count         int64
}

// RatingAggregate is the overall mean and count over a set of ratings.
type RatingAggregate struct {
	Average float64
	Count   int64
}

// Reply is a single annotation attached to a rating. It never affects scoring.
type Reply struct {
	ID        int64
	RatingID  int64
	UserID    int64
	Text      string
	CreatedAt time.Time
}

// RankedHostel is a per-request ranking view with no persisted identity.
type RankedHostel struct {
	HostelID        int64
	Name            string
	SimpleAverage   float64
	BayesianAverage float64
	RatingCount     int64
}
