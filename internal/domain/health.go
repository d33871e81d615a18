package domain

import (
	"time"
)

// HealthEntry is one weight / body-fat reading for a calendar date. Date is unique per user.
type HealthEntry struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	Date              string    `json:"date"`              // YYYY-MM-DD
	Weight            *float64  `json:"weight"`            // kg
	BodyFatPercentage *float64  `json:"bodyFatPercentage"` // %
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
