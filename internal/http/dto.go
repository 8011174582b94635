package httpserver

import (
	"time"

	"github.com/Clark-Hu/hostel-service/internal/domain"
)

type hostelResponse struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	Description        *string    `json:"description,omitempty"`
	Address            *string    `json:"address,omitempty"`
	City               *string    `json:"city,omitempty"`
	Locality           *string    `json:"locality,omitempty"`
	MonthlyRentMin     *float64   `json:"monthlyRentMin,omitempty"`
	MonthlyRentMax     *float64   `json:"monthlyRentMax,omitempty"`
	HasWifi            bool       `json:"hasWifi"`
	HasAC              bool       `json:"hasAc"`
	HasMess            bool       `json:"hasMess"`
	HasLaundry         bool       `json:"hasLaundry"`
	ContactPersonName  *string    `json:"contactPersonName,omitempty"`
	ContactPersonPhone *string    `json:"contactPersonPhone,omitempty"`
	Status             string     `json:"status"`
	SubmittedByUserID  int64      `json:"submittedByUserId"`
	RejectionReason    *string    `json:"rejectionReason,omitempty"`
	ApprovedAt         *time.Time `json:"approvedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type categoryResponse struct {
	ID              int64      `json:"categoryId"`
	Name            string     `json:"categoryName"`
	Status          string     `json:"status"`
	CreatedByUserID int64      `json:"createdByUserId"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type ratingRequest struct {
	CleanlinessRating   int     `json:"cleanlinessRating"`
	FoodQualityRating   int     `json:"foodQualityRating"`
	SafetyRating        int     `json:"safetyRating"`
	LocationRating      int     `json:"locationRating"`
	AffordabilityRating int     `json:"affordabilityRating"`
	ReviewText          *string `json:"reviewText"`
}

type ratingResponse struct {
	ID                  int64     `json:"ratingId"`
	HostelID            int64     `json:"hostelId"`
	UserID              int64     `json:"userId"`
	CleanlinessRating   int       `json:"cleanlinessRating"`
	FoodQualityRating   int       `json:"foodQualityRating"`
	SafetyRating        int       `json:"safetyRating"`
	LocationRating      int       `json:"locationRating"`
	AffordabilityRating int       `json:"affordabilityRating"`
	OverallRating       float64   `json:"overallRating"`
	ReviewText          *string   `json:"reviewText,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type summaryResponse struct {
	HostelID            int64   `json:"hostelId"`
	CleanlinessRating   float64 `json:"cleanlinessRating"`
	FoodQualityRating   float64 `json:"foodQualityRating"`
	SafetyRating        float64 `json:"safetyRating"`
	LocationRating      float64 `json:"locationRating"`
	AffordabilityRating float64 `json:"affordabilityRating"`
	OverallRating       float64 `json:"overallRating"`
	RatingCount         int64   `json:"ratingCount"`
}

type scoreResponse struct {
	HostelID        int64   `json:"hostelId"`
	BayesianAverage float64 `json:"bayesianAverage"`
}

type rankedHostelResponse struct {
	HostelID        int64   `json:"hostelId"`
	HostelName      string  `json:"hostelName"`
	BayesianAverage float64 `json:"bayesianAverage"`
	SimpleAverage   float64 `json:"simpleAverage"`
	RatingCount     int64   `json:"ratingCount"`
}

type replyRequest struct {
	ReplyText string `json:"replyText"`
}

type replyResponse struct {
	ID        int64     `json:"replyId"`
	RatingID  int64     `json:"ratingId"`
	UserID    int64     `json:"userId"`
	ReplyText string    `json:"replyText"`
	CreatedAt time.Time `json:"createdAt"`
}

type categoryCreateRequest struct {
	CategoryName string `json:"categoryName"`
}

type assignCategoryRequest struct {
	CategoryID int64 `json:"categoryId"`
}

type imageResponse struct {
	ID           int64     `json:"imageId"`
	HostelID     int64     `json:"hostelId"`
	ImageURL     string    `json:"imageUrl"`
	PublicID     string    `json:"publicId"`
	DisplayOrder int       `json:"displayOrder"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

func toHostelResponse(h domain.Hostel) hostelResponse {
	return hostelResponse{
		ID:                 h.ID,
		Name:               h.Name,
		Description:        h.Description,
		Address:            h.Address,
		City:               h.City,
		Locality:           h.Locality,
		MonthlyRentMin:     h.MonthlyRentMin,
		MonthlyRentMax:     h.MonthlyRentMax,
		HasWifi:            h.HasWifi,
		HasAC:              h.HasAC,
		HasMess:            h.HasMess,
		HasLaundry:         h.HasLaundry,
		ContactPersonName:  h.ContactPersonName,
		ContactPersonPhone: h.ContactPersonPhone,
		Status:             string(h.Status),
		SubmittedByUserID:  h.SubmittedByUserID,
		RejectionReason:    h.RejectionReason,
		ApprovedAt:         h.ApprovedAt,
		CreatedAt:          h.CreatedAt,
		UpdatedAt:          h.UpdatedAt,
	}
}

func toHostelResponses(hostels []domain.Hostel) []hostelResponse {
	out := make([]hostelResponse, 0, len(hostels))
	for _, h := range hostels {
		out = append(out, toHostelResponse(h))
	}
	return out
}

func toCategoryResponse(c domain.Category) categoryResponse {
	return categoryResponse{
		ID:              c.ID,
		Name:            c.Name,
		Status:          string(c.Status),
		CreatedByUserID: c.CreatedByUserID,
		RejectionReason: c.RejectionReason,
		ApprovedAt:      c.ApprovedAt,
		CreatedAt:       c.CreatedAt,
	}
}

func toCategoryResponses(categories []domain.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	return out
}

func toRatingResponse(r domain.Rating) ratingResponse {
	return ratingResponse{
		ID:                  r.ID,
		HostelID:            r.HostelID,
		UserID:              r.UserID,
		CleanlinessRating:   r.Criteria.Cleanliness,
		FoodQualityRating:   r.Criteria.FoodQuality,
		SafetyRating:        r.Criteria.Safety,
		LocationRating:      r.Criteria.Location,
		AffordabilityRating: r.Criteria.Affordability,
		OverallRating:       r.Overall(),
		ReviewText:          r.ReviewText,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func toSummaryResponse(s domain.RatingSummary) summaryResponse {
	return summaryResponse{
		HostelID:            s.HostelID,
		CleanlinessRating:   s.Cleanliness,
		FoodQualityRating:   s.FoodQuality,
		SafetyRating:        s.Safety,
		LocationRating:      s.Location,
		AffordabilityRating: s.Affordability,
		OverallRating:       s.Overall,
		RatingCount:         s.Count,
	}
}

func toRankedResponses(ranked []domain.RankedHostel) []rankedHostelResponse {
	out := make([]rankedHostelResponse, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, rankedHostelResponse{
			HostelID:        r.HostelID,
			HostelName:      r.Name,
			BayesianAverage: r.BayesianAverage,
			SimpleAverage:   r.SimpleAverage,
			RatingCount:     r.RatingCount,
		})
	}
	return out
}

func toReplyResponse(r domain.Reply) replyResponse {
	return replyResponse{ID: r.ID, RatingID: r.RatingID, UserID: r.UserID, ReplyText: r.Text, CreatedAt: r.CreatedAt}
}

func toImageResponse(img domain.HostelImage) imageResponse {
	return imageResponse{
		ID:           img.ID,
		HostelID:     img.HostelID,
		ImageURL:     img.URL,
		PublicID:     img.PublicID,
		DisplayOrder: img.DisplayOrder,
		UploadedAt:   img.UploadedAt,
	}
}
