package models

import "time"

// User is an account holder. Expenses and incomes reference it with an
// ON DELETE CASCADE constraint, so removing a user removes their records.
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Username       string `gorm:"size:255;not null;unique"`
	HashedPassword []byte `gorm:"not null"`
	RoleID         *uint  `gorm:"index"`
	Role           Role   `gorm:"foreignKey:RoleID;references:ID"`
	Expenses       []Expense
	Incomes        []Income
}
