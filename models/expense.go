package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a money-out record owned by exactly one user. Unlike Income it
// carries a settlement flag; paid and paid_date mutate independently with no
// transition guard.
type Expense struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID     uint      `gorm:"index;not null"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CategoryID *uint     `gorm:"index"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`

	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description string          `gorm:"not null"`
	Date        Date            `gorm:"not null;index"`

	ExpenseType        RecordKind        `gorm:"size:20;not null;default:ONETIME"`
	RecurrencePeriod   *RecurrencePeriod `gorm:"size:20"`
	NextDueDate        *Date
	TotalInstallments  *uint
	CurrentInstallment *uint
	InstallmentValue   *decimal.Decimal `gorm:"type:decimal(10,2)"`

	Paid     bool `gorm:"not null;default:false"`
	PaidDate *Date
}

// Validate applies the shared kind-conditional rules.
func (e *Expense) Validate() FieldErrors { return ValidateRecord(e) }

func (e *Expense) kindField() string { return "expense_type" }
func (e *Expense) kind() RecordKind  { return e.ExpenseType }

func (e *Expense) recurrence() (*RecurrencePeriod, *Date) {
	return e.RecurrencePeriod, e.NextDueDate
}

func (e *Expense) installment() (*uint, *decimal.Decimal) {
	return e.TotalInstallments, e.InstallmentValue
}

func (e *Expense) currentInstallment() *uint    { return e.CurrentInstallment }
func (e *Expense) setCurrentInstallment(n uint) { e.CurrentInstallment = &n }
