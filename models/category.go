package models

import "time"

// Category is a tag attached to expenses and incomes. Categories are a
// shared taxonomy: global across users and with no uniqueness on Name.
// Deleting a category clears the references to it, never the records.
type Category struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"size:512"`
	Icon        string `gorm:"size:50"`  // icon token for the frontend
	Color       string `gorm:"size:20"`
}
