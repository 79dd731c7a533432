package models

import "time"

// PublicHoliday is a calendar exception excluded from working days.
type PublicHoliday struct {
	ID          string    `db:"id" json:"id"`
	Date        time.Time `db:"date" json:"date"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	National    bool      `db:"national" json:"national"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
