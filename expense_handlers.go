package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"contas/models"
	"contas/pkg/logx"
	"contas/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type expenseRequest struct {
	Category           *uint                    `json:"category"`
	Amount             *decimal.Decimal         `json:"amount"`
	Description        *string                  `json:"description"`
	Date               *models.Date             `json:"date"`
	ExpenseType        *models.RecordKind       `json:"expense_type"`
	RecurrencePeriod   *models.RecurrencePeriod `json:"recurrence_period"`
	NextDueDate        *models.Date             `json:"next_due_date"`
	TotalInstallments  *uint                    `json:"total_installments"`
	CurrentInstallment *uint                    `json:"current_installment"`
	InstallmentValue   *decimal.Decimal         `json:"installment_value"`
	Paid               *bool                    `json:"paid"`
	PaidDate           *models.Date             `json:"paid_date"`
}

// apply copies the provided fields onto e. Absent fields keep their current
// values, which makes PUT and PATCH share one merge path. There is no user
// field here: the owner always comes from the session.
func (r *expenseRequest) apply(e *models.Expense) {
	if r.Category != nil {
		e.CategoryID = r.Category
	}
	if r.Amount != nil {
		e.Amount = *r.Amount
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	if r.Date != nil {
		e.Date = *r.Date
	}
	if r.ExpenseType != nil {
		e.ExpenseType = *r.ExpenseType
	}
	if r.RecurrencePeriod != nil {
		e.RecurrencePeriod = r.RecurrencePeriod
	}
	if r.NextDueDate != nil {
		e.NextDueDate = r.NextDueDate
	}
	if r.TotalInstallments != nil {
		e.TotalInstallments = r.TotalInstallments
	}
	if r.CurrentInstallment != nil {
		e.CurrentInstallment = r.CurrentInstallment
	}
	if r.InstallmentValue != nil {
		e.InstallmentValue = r.InstallmentValue
	}
	if r.Paid != nil {
		e.Paid = *r.Paid
	}
	if r.PaidDate != nil {
		e.PaidDate = r.PaidDate
	}
}

type expenseResponse struct {
	ID                      uint                     `json:"id"`
	User                    uint                     `json:"user"`
	Category                *uint                    `json:"category"`
	CategoryName            string                   `json:"category_name"`
	Amount                  decimal.Decimal          `json:"amount"`
	Description             string                   `json:"description"`
	Date                    models.Date              `json:"date"`
	ExpenseType             models.RecordKind        `json:"expense_type"`
	ExpenseTypeDisplay      string                   `json:"expense_type_display"`
	RecurrencePeriod        *models.RecurrencePeriod `json:"recurrence_period"`
	RecurrencePeriodDisplay string                   `json:"recurrence_period_display"`
	NextDueDate             *models.Date             `json:"next_due_date"`
	TotalInstallments       *uint                    `json:"total_installments"`
	CurrentInstallment      *uint                    `json:"current_installment"`
	InstallmentValue        *decimal.Decimal         `json:"installment_value"`
	Paid                    bool                     `json:"paid"`
	PaidDate                *models.Date             `json:"paid_date"`
	CreatedAt               time.Time                `json:"created_at"`
	UpdatedAt               time.Time                `json:"updated_at"`
}

func toExpenseResponse(e models.Expense) expenseResponse {
	resp := expenseResponse{
		ID:                 e.ID,
		User:               e.UserID,
		Category:           e.CategoryID,
		Amount:             e.Amount,
		Description:        e.Description,
		Date:               e.Date,
		ExpenseType:        e.ExpenseType,
		ExpenseTypeDisplay: e.ExpenseType.Display(),
		RecurrencePeriod:   e.RecurrencePeriod,
		NextDueDate:        e.NextDueDate,
		TotalInstallments:  e.TotalInstallments,
		CurrentInstallment: e.CurrentInstallment,
		InstallmentValue:   e.InstallmentValue,
		Paid:               e.Paid,
		PaidDate:           e.PaidDate,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
	if e.Category != nil {
		resp.CategoryName = e.Category.Name
	}
	if e.RecurrencePeriod != nil {
		resp.RecurrencePeriodDisplay = e.RecurrencePeriod.Display()
	}
	return resp
}

// checkCategoryRef verifies that a supplied category id exists. A dangling
// reference is a client error, not an FK violation surfaced as a 500.
func checkCategoryRef(ctx context.Context, id *uint, errs models.FieldErrors) {
	if id == nil {
		return
	}
	if _, err := categories.Get(ctx, *id); errors.Is(err, store.ErrNotFound) {
		errs["category"] = "invalid category"
	}
}

func listExpensesHandler(c *gin.Context) {
	logger := logx.FromContext(c.Request.Context())
	user, ok := getUserFromContext(c)
	if !ok {
		logger.Warn("unauthenticated expenses request", "operation", "list_expenses")
		unauthorized(c)
		return
	}
	items, err := expenses.List(c.Request.Context(), user.ID)
	if err != nil {
		logger.Error("expenses query failed",
			"username", user.Username, "operation", "list_expenses", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching expenses"})
		return
	}
	out := make([]expenseResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toExpenseResponse(e))
	}
	logger.Info("expenses listed",
		"username", user.Username, "operation", "list_expenses", "count", len(out))
	c.JSON(http.StatusOK, out)
}

func createExpenseHandler(c *gin.Context) {
	logger := logx.FromContext(c.Request.Context())
	user, ok := getUserFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exp := models.Expense{ExpenseType: models.KindOneTime}
	req.apply(&exp)

	errs := models.FieldErrors{}
	if req.Amount == nil {
		errs["amount"] = "required"
	}
	if req.Description == nil || *req.Description == "" {
		errs["description"] = "required"
	}
	if req.Date == nil {
		errs["date"] = "required"
	}
	checkCategoryRef(c.Request.Context(), exp.CategoryID, errs)
	for field, msg := range exp.Validate() {
		errs[field] = msg
	}
	if len(errs) > 0 {
		logger.Warn("expense validation failed",
			"username", user.Username, "operation", "create_expense", "fields", errs)
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	exp.UserID = user.ID // owner comes from the session, never the payload
	if err := expenses.Create(c.Request.Context(), &exp); err != nil {
		logger.Error("expense create failed",
			"username", user.Username, "operation", "create_expense", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if full, err := expenses.Get(c.Request.Context(), user.ID, exp.ID); err == nil {
		exp = *full
	}
	logger.Info("expense created",
		"username", user.Username, "operation", "create_expense", "id", exp.ID)
	c.JSON(http.StatusCreated, toExpenseResponse(exp))
}

func getExpenseHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	exp, err := expenses.Get(c.Request.Context(), user.ID, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, toExpenseResponse(*exp))
}

func updateExpenseHandler(c *gin.Context) {
	logger := logx.FromContext(c.Request.Context())
	user, ok := getUserFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	exp, err := expenses.Get(c.Request.Context(), user.ID, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.apply(exp)

	// the merged record goes through the same rules as a fresh one
	errs := models.FieldErrors{}
	if exp.Description == "" {
		errs["description"] = "required"
	}
	if exp.Date.IsZero() {
		errs["date"] = "required"
	}
	checkCategoryRef(c.Request.Context(), exp.CategoryID, errs)
	for field, msg := range exp.Validate() {
		errs[field] = msg
	}
	if len(errs) > 0 {
		logger.Warn("expense validation failed",
			"username", user.Username, "operation", "update_expense", "fields", errs)
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := expenses.Save(c.Request.Context(), exp); err != nil {
		logger.Error("expense update failed",
			"username", user.Username, "operation", "update_expense", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if full, err := expenses.Get(c.Request.Context(), user.ID, exp.ID); err == nil {
		exp = full
	}
	c.JSON(http.StatusOK, toExpenseResponse(*exp))
}

func deleteExpenseHandler(c *gin.Context) {
	logger := logx.FromContext(c.Request.Context())
	user, ok := getUserFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	err := expenses.Delete(c.Request.Context(), user.ID, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		logger.Error("expense delete failed",
			"username", user.Username, "operation", "delete_expense", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	logger.Info("expense deleted",
		"username", user.Username, "operation", "delete_expense", "id", id)
	c.Status(http.StatusNoContent)
}
