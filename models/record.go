package models

import "github.com/shopspring/decimal"

// RecordKind discriminates how a financial record repeats. The set of
// mandatory fields on a record is fully determined by its kind; fields
// belonging to other kinds stay optional and are never cleared.
type RecordKind string

const (
	KindOneTime     RecordKind = "ONETIME"
	KindInstallment RecordKind = "INSTALLMENT"
	KindRecurring   RecordKind = "RECURRING"
)

func (k RecordKind) Valid() bool {
	switch k {
	case KindOneTime, KindInstallment, KindRecurring:
		return true
	}
	return false
}

// Display returns the label shown in listings.
func (k RecordKind) Display() string {
	switch k {
	case KindOneTime:
		return "Única"
	case KindInstallment:
		return "Parcelada"
	case KindRecurring:
		return "Recorrente"
	}
	return string(k)
}

// RecurrencePeriod is the cadence of a recurring record.
type RecurrencePeriod string

const (
	PeriodDaily   RecurrencePeriod = "DAILY"
	PeriodMonthly RecurrencePeriod = "MONTHLY"
	PeriodYearly  RecurrencePeriod = "YEARLY"
)

func (p RecurrencePeriod) Valid() bool {
	switch p {
	case PeriodDaily, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

func (p RecurrencePeriod) Display() string {
	switch p {
	case PeriodDaily:
		return "Diária"
	case PeriodMonthly:
		return "Mensal"
	case PeriodYearly:
		return "Anual"
	}
	return string(p)
}

// FieldErrors maps a wire field name to a validation message.
type FieldErrors map[string]string

// record is the kind-conditional view shared by Expense and Income so the
// required-field rules live in exactly one place.
type record interface {
	kindField() string
	kind() RecordKind
	recurrence() (*RecurrencePeriod, *Date)
	installment() (total *uint, value *decimal.Decimal)
	currentInstallment() *uint
	setCurrentInstallment(n uint)
}

// ValidateRecord applies the kind-conditional required-field rules and
// returns one entry per violated field. A valid installment record with no
// current installment gets it defaulted to 1. Amount positivity is left to
// the column constraint.
func ValidateRecord(r record) FieldErrors {
	errs := FieldErrors{}
	switch r.kind() {
	case KindRecurring:
		period, nextDue := r.recurrence()
		if period == nil || *period == "" {
			errs["recurrence_period"] = "required for recurring records"
		} else if !period.Valid() {
			errs["recurrence_period"] = "invalid recurrence period"
		}
		if nextDue == nil || nextDue.IsZero() {
			errs["next_due_date"] = "required for recurring records"
		}
	case KindInstallment:
		total, value := r.installment()
		if total == nil || *total == 0 {
			errs["total_installments"] = "required for installment records"
		}
		if value == nil {
			errs["installment_value"] = "required for installment records"
		}
		if len(errs) == 0 && r.currentInstallment() == nil {
			r.setCurrentInstallment(1)
		}
	case KindOneTime:
		// no auxiliary fields required
	default:
		errs[r.kindField()] = "invalid record kind"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
