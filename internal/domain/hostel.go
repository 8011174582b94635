package domain

import "time"

// Hostel is a user-submitted venue. Only approved hostels are publicly visible.
type Hostel struct {
	ID                 int64
	Name               string
	Description        *string
	Address            *string
	City               *string
	Locality           *string
	MonthlyRentMin     *float64
	MonthlyRentMax     *float64
	HasWifi            bool
	HasAC              bool
	HasMess            bool
	HasLaundry         bool
	ContactPersonName  *string
	ContactPersonPhone *string
	Status             ApprovalStatus
	SubmittedByUserID  int64
	RejectionReason    *string
	ApprovedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HostelImage references an image held by the external image store.
type HostelImage struct {
	ID           int64
	HostelID     int64
	URL          string
	PublicID     string
	DisplayOrder int
	UploadedAt   time.Time
}
