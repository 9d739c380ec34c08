package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is a money-in record owned by exactly one user. Incomes have no
// payment-settlement concept.
type Income struct {
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

	IncomeType         RecordKind        `gorm:"size:20;not null;default:ONETIME"`
	RecurrencePeriod   *RecurrencePeriod `gorm:"size:20"`
	NextDueDate        *Date
	TotalInstallments  *uint
	CurrentInstallment *uint
	InstallmentValue   *decimal.Decimal `gorm:"type:decimal(10,2)"`
}

// Validate applies the shared kind-conditional rules.
func (i *Income) Validate() FieldErrors { return ValidateRecord(i) }

func (i *Income) kindField() string { return "income_type" }
func (i *Income) kind() RecordKind  { return i.IncomeType }

func (i *Income) recurrence() (*RecurrencePeriod, *Date) {
	return i.RecurrencePeriod, i.NextDueDate
}

func (i *Income) installment() (*uint, *decimal.Decimal) {
	return i.TotalInstallments, i.InstallmentValue
}

func (i *Income) currentInstallment() *uint    { return i.CurrentInstallment }
func (i *Income) setCurrentInstallment(n uint) { i.CurrentInstallment = &n }
