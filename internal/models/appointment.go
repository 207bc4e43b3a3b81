package models

import "time"

// AppointmentRequest is one applicant's standing request for a slot.
type AppointmentRequest struct {
	ID             int        `json:"id" db:"id"`
	FullName       string     `json:"fullName" db:"full_name"`
	PassportNumber string     `json:"passportNumber" db:"passport_number"`
	Phone          string     `json:"phone" db:"phone"`
	Email          string     `json:"email" db:"email"`
	Center         string     `json:"center" db:"center"`
	VisaCategory   string     `json:"visaCategory" db:"visa_category"`
	EarliestDate   *time.Time `json:"earliestDate,omitempty" db:"earliest_date"`
	LatestDate     *time.Time `json:"latestDate,omitempty" db:"latest_date"`
	Status         string     `json:"status" db:"status"`
	BookedAt       *time.Time `json:"bookedAt,omitempty" db:"booked_at"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusBooked    = "booked"
	AppointmentStatusCancelled = "cancelled"
)

type CreateAppointmentRequest struct {
	FullName       string `json:"fullName" binding:"required"`
	PassportNumber string `json:"passportNumber" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Center         string `json:"center" binding:"required"`
	VisaCategory   string `json:"visaCategory" binding:"required"`
	EarliestDate   string `json:"earliestDate"`
	LatestDate     string `json:"latestDate"`
	Card           *Card  `json:"card,omitempty"`
}

// Card carries payment details attached to an appointment request.
// Validated client-side equivalently by internal/validate; never persisted
// beyond handing off to the agent.
type Card struct {
	Number      string `json:"number"`
	ExpiryMonth int    `json:"expiryMonth"`
	ExpiryYear  int    `json:"expiryYear"`
	CVV         string `json:"cvv"`
	HolderName  string `json:"holderName"`
}
