package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AidType is the category of aid being requested.
type AidType string

const (
	AidTypeBlood    AidType = "Blood"
	AidTypeMedicine AidType = "Medicine"
	AidTypeOxygen   AidType = "Oxygen"
	AidTypeOther    AidType = "Other"
)

// ParseAidType converts a raw string into an AidType.
func ParseAidType(s string) (AidType, bool) {
	switch AidType(s) {
	case AidTypeBlood, AidTypeMedicine, AidTypeOxygen, AidTypeOther:
		return AidType(s), true
	default:
		return "", false
	}
}

// RequestStatus represents where an aid request is in its lifecycle.
// Pending -> In Progress -> Fulfilled, with Cancelled reachable from
// Pending and In Progress. Fulfilled and Cancelled are terminal.
type RequestStatus string

const (
	StatusPending    RequestStatus = "Pending"
	StatusInProgress RequestStatus = "In Progress"
	StatusFulfilled  RequestStatus = "Fulfilled"
	StatusCancelled  RequestStatus = "Cancelled"
)

// ParseRequestStatus converts a raw string into a RequestStatus.
func ParseRequestStatus(s string) (RequestStatus, bool) {
	switch RequestStatus(s) {
	case StatusPending, StatusInProgress, StatusFulfilled, StatusCancelled:
		return RequestStatus(s), true
	default:
		return "", false
	}
}

// Terminal reports whether no further transition may leave this status.
func (s RequestStatus) Terminal() bool {
	return s == StatusFulfilled || s == StatusCancelled
}

// AidRequest tracks one aid need from creation to resolution.
// RequestedByID is set at creation and never changes; DonatedByID is nil
// until a donor engages and never changes afterwards.
type AidRequest struct {
	ID            uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	RequestedByID uuid.UUID     `json:"requested_by_id" gorm:"type:char(36);not null;index"`
	DonatedByID   *uuid.UUID    `json:"donated_by_id,omitempty" gorm:"type:char(36);index"`
	AidType       AidType       `json:"aid_type" gorm:"size:20;not null"`
	Details       string        `json:"details" gorm:"type:text;not null"`
	Location      string        `json:"location" gorm:"size:255;not null"`
	Status        RequestStatus `json:"status" gorm:"size:20;not null;default:'Pending';index"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Relations
	RequestedBy *User `json:"-" gorm:"foreignKey:RequestedByID"`
	DonatedBy   *User `json:"-" gorm:"foreignKey:DonatedByID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *AidRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
