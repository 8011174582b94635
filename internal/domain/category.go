package domain

import "time"

// Category is a user-submitted tag (e.g. "PG", "Co-living") attached to hostels.
type Category struct {
	ID              int64
	Name            string
	Status          ApprovalStatus
	CreatedByUserID int64
	RejectionReason *string
	ApprovedAt      *time.Time
	CreatedAt       time.Time
}
