package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func periodPtr(p RecurrencePeriod) *RecurrencePeriod { return &p }
func uintPtr(n uint) *uint                           { return &n }
func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestValidateExpenseKinds(t *testing.T) {
	next := NewDate(2025, time.February, 1)

	tests := []struct {
		name    string
		expense Expense
		want    FieldErrors
	}{
		{
			name:    "one-time needs nothing extra",
			expense: Expense{ExpenseType: KindOneTime},
			want:    nil,
		},
		{
			name: "one-time ignores stray installment fields",
			expense: Expense{
				ExpenseType:       KindOneTime,
				TotalInstallments: uintPtr(12),
				InstallmentValue:  decPtr("50.00"),
			},
			want: nil,
		},
		{
			name:    "recurring missing both aux fields",
			expense: Expense{ExpenseType: KindRecurring},
			want: FieldErrors{
				"recurrence_period": "required for recurring records",
				"next_due_date":     "required for recurring records",
			},
		},
		{
			name: "recurring missing next due date",
			expense: Expense{
				ExpenseType:      KindRecurring,
				RecurrencePeriod: periodPtr(PeriodMonthly),
			},
			want: FieldErrors{"next_due_date": "required for recurring records"},
		},
		{
			name: "recurring with unknown period",
			expense: Expense{
				ExpenseType:      KindRecurring,
				RecurrencePeriod: periodPtr("WEEKLY"),
				NextDueDate:      &next,
			},
			want: FieldErrors{"recurrence_period": "invalid recurrence period"},
		},
		{
			name: "recurring complete",
			expense: Expense{
				ExpenseType:      KindRecurring,
				RecurrencePeriod: periodPtr(PeriodDaily),
				NextDueDate:      &next,
			},
			want: nil,
		},
		{
			name:    "installment missing both aux fields",
			expense: Expense{ExpenseType: KindInstallment},
			want: FieldErrors{
				"total_installments": "required for installment records",
				"installment_value":  "required for installment records",
			},
		},
		{
			name: "installment missing value only",
			expense: Expense{
				ExpenseType:       KindInstallment,
				TotalInstallments: uintPtr(12),
			},
			want: FieldErrors{"installment_value": "required for installment records"},
		},
		{
			name:    "unknown kind",
			expense: Expense{ExpenseType: "WEEKLY"},
			want:    FieldErrors{"expense_type": "invalid record kind"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expense.Validate())
		})
	}
}

func TestInstallmentDefaultsCurrentInstallment(t *testing.T) {
	e := Expense{
		ExpenseType:       KindInstallment,
		TotalInstallments: uintPtr(12),
		InstallmentValue:  decPtr("50.00"),
	}
	require.Nil(t, e.Validate())
	require.NotNil(t, e.CurrentInstallment)
	assert.Equal(t, uint(1), *e.CurrentInstallment)

	// an explicit current installment is kept
	e.CurrentInstallment = uintPtr(4)
	require.Nil(t, e.Validate())
	assert.Equal(t, uint(4), *e.CurrentInstallment)
}

func TestInvalidInstallmentDoesNotDefault(t *testing.T) {
	e := Expense{ExpenseType: KindInstallment, TotalInstallments: uintPtr(12)}
	require.NotNil(t, e.Validate())
	assert.Nil(t, e.CurrentInstallment)
}

func TestIncomeSharesKindRules(t *testing.T) {
	in := Income{IncomeType: KindRecurring}
	assert.Equal(t, FieldErrors{
		"recurrence_period": "required for recurring records",
		"next_due_date":     "required for recurring records",
	}, in.Validate())

	in = Income{IncomeType: "BOGUS"}
	assert.Equal(t, FieldErrors{"income_type": "invalid record kind"}, in.Validate())

	in = Income{
		IncomeType:        KindInstallment,
		TotalInstallments: uintPtr(3),
		InstallmentValue:  decPtr("100.00"),
	}
	require.Nil(t, in.Validate())
	require.NotNil(t, in.CurrentInstallment)
	assert.Equal(t, uint(1), *in.CurrentInstallment)
}

func TestKindDisplayLabels(t *testing.T) {
	assert.Equal(t, "Única", KindOneTime.Display())
	assert.Equal(t, "Parcelada", KindInstallment.Display())
	assert.Equal(t, "Recorrente", KindRecurring.Display())
	assert.Equal(t, "Mensal", PeriodMonthly.Display())
}
