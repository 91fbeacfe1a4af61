package model

import "time"

// ExpenseType is a persisted, named subcategory within a Category.
// Name uniqueness is case-insensitive and enforced by the store.
type ExpenseType struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    Category  `json:"category"`
	ID          int64     `json:"id"`
	Active      bool      `json:"active"`
}
