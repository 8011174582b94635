package domain

import (
	"fmt"
	"time"
)

// ApprovalStatus is the review lifecycle shared by hostels and categories.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "PENDING"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
)

// Valid reports whether s is one of the known lifecycle states.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ParseApprovalStatus converts a stored status string.
func ParseApprovalStatus(raw string) (ApprovalStatus, error) {
	s := ApprovalStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown approval status %q", raw)
	}
	return s, nil
}

// ApprovalDecision is the state written by one workflow transition.
// ApprovedAt is set only for approvals; Reason only for rejections.
type ApprovalDecision struct {
	Status     ApprovalStatus
	ApprovedAt *time.Time
	Reason     *string
}
