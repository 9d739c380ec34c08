package main

import (
	"errors"
	"net/http"
	"time"

	"contas/models"
	"contas/pkg/logx"
	"contas/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type incomeRequest struct {
	Category           *uint                    `json:"category"`
	Amount             *decimal.Decimal         `json:"amount"`
	Description        *string                  `json:"description"`
	Date               *models.Date             `json:"date"`
	IncomeType         *models.RecordKind       `json:"income_type"`
	RecurrencePeriod   *models.RecurrencePeriod `json:"recurrence_period"`
	NextDueDate        *models.Date             `json:"next_due_date"`
	TotalInstallments  *uint                    `json:"total_installments"`
	CurrentInstallment *uint                    `json:"current_installment"`
	InstallmentValue   *decimal.Decimal         `json:"installment_value"`
}

func (r *incomeRequest) apply(in *models.Income) {
	if r.Category != nil {
		in.CategoryID = r.Category
	}
	if r.Amount != nil {
		in.Amount = *r.Amount
	}
	if r.Description != nil {
		in.Description = *r.Description
	}
	if r.Date != nil {
		in.Date = *r.Date
	}
	if r.IncomeType != nil {
		in.IncomeType = *r.IncomeType
	}
	if r.RecurrencePeriod != nil {
		in.RecurrencePeriod = r.RecurrencePeriod
	}
	if r.NextDueDate != nil {
		in.NextDueDate = r.NextDueDate
	}
	if r.TotalInstallments != nil {
		in.TotalInstallments = r.TotalInstallments
	}
	if r.CurrentInstallment != nil {
		in.CurrentInstallment = r.CurrentInstallment
	}
	if r.InstallmentValue != nil {
		in.InstallmentValue = r.InstallmentValue
	}
}

type incomeResponse struct {
	ID                      uint                     `json:"id"`
	User                    uint                     `json:"user"`
	Category                *uint                    `json:"category"`
	CategoryName            string                   `json:"category_name"`
	Amount                  decimal.Decimal          `json:"amount"`
	Description             string                   `json:"description"`
	Date                    models.Date              `json:"date"`
	IncomeType              models.RecordKind        `json:"income_type"`
	IncomeTypeDisplay       string                   `json:"income_type_display"`
	RecurrencePeriod        *models.RecurrencePeriod `json:"recurrence_period"`
	RecurrencePeriodDisplay string                   `json:"recurrence_period_display"`
	NextDueDate             *models.Date             `json:"next_due_date"`
	TotalInstallments       *uint                    `json:"total_installments"`
	CurrentInstallment      *uint                    `json:"current_installment"`
	InstallmentValue        *decimal.Decimal         `json:"installment_value"`
	CreatedAt               time.Time                `json:"created_at"`
	UpdatedAt               time.Time                `json:"updated_at"`
}

func toIncomeResponse(in models.Income) incomeResponse {
	resp := incomeResponse{
		ID:                 in.ID,
		User:               in.UserID,
		Category:           in.CategoryID,
		Amount:             in.Amount,
		Description:        in.Description,
		Date:               in.Date,
		IncomeType:         in.IncomeType,
		IncomeTypeDisplay:  in.IncomeType.Display(),
		RecurrencePeriod:   in.RecurrencePeriod,
		NextDueDate:        in.NextDueDate,
		TotalInstallments:  in.TotalInstallments,
		CurrentInstallment: in.CurrentInstallment,
		InstallmentValue:   in.InstallmentValue,
		CreatedAt:          in.CreatedAt,
		UpdatedAt:          in.UpdatedAt,
	}
	if in.Category != nil {
		resp.CategoryName = in.Category.Name
	}
	if in.RecurrencePeriod != nil {
		resp.RecurrencePeriodDisplay = in.RecurrencePeriod.Display()
	}
	return resp
}

func listIncomesHandler(c *gin.Context) {
	logger := logx.FromContext(c.Request.Context())
	user, ok := getUserFromContext(c)
	if !ok {
		logger.Warn("unauthenticated incomes request", "operation", "list_incomes")
		unauthorized(c)
		return
	}
	items, err := incomes.List(c.Request.Context(), user.ID)
	if err != nil {
		logger.Error("incomes query failed",
			"username", user.Username, "operation", "list_incomes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching incomes"})
		return
	}
	out := make([]incomeResponse, 0, len(items))
	for _, in := range items {
		out = append(out, toIncomeResponse(in))
	}
	logger.Info("incomes listed",
		"username", user.Username, "operation", "list_incomes", "count", len(out))
	c.JSON(http.StatusOK, out)
}

func createIncomeHandler(c *gin.Context) {
	logger := logx.FromContext(c.Request.Context())
	user, ok := getUserFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	var req incomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := models.Income{IncomeType: models.KindOneTime}
	req.apply(&in)

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
	checkCategoryRef(c.Request.Context(), in.CategoryID, errs)
	for field, msg := range in.Validate() {
		errs[field] = msg
	}
	if len(errs) > 0 {
		logger.Warn("income validation failed",
			"username", user.Username, "operation", "create_income", "fields", errs)
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	in.UserID = user.ID // owner comes from the session, never the payload
	if err := incomes.Create(c.Request.Context(), &in); err != nil {
		logger.Error("income create failed",
			"username", user.Username, "operation", "create_income", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if full, err := incomes.Get(c.Request.Context(), user.ID, in.ID); err == nil {
		in = *full
	}
	logger.Info("income created",
		"username", user.Username, "operation", "create_income", "id", in.ID)
	c.JSON(http.StatusCreated, toIncomeResponse(in))
}

func getIncomeHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, err := incomes.Get(c.Request.Context(), user.ID, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, toIncomeResponse(*in))
}

func updateIncomeHandler(c *gin.Context) {
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
	in, err := incomes.Get(c.Request.Context(), user.ID, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	var req incomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.apply(in)

	errs := models.FieldErrors{}
	if in.Description == "" {
		errs["description"] = "required"
	}
	if in.Date.IsZero() {
		errs["date"] = "required"
	}
	checkCategoryRef(c.Request.Context(), in.CategoryID, errs)
	for field, msg := range in.Validate() {
		errs[field] = msg
	}
	if len(errs) > 0 {
		logger.Warn("income validation failed",
			"username", user.Username, "operation", "update_income", "fields", errs)
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := incomes.Save(c.Request.Context(), in); err != nil {
		logger.Error("income update failed",
			"username", user.Username, "operation", "update_income", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if full, err := incomes.Get(c.Request.Context(), user.ID, in.ID); err == nil {
		in = full
	}
	c.JSON(http.StatusOK, toIncomeResponse(*in))
}

func deleteIncomeHandler(c *gin.Context) {
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
	err := incomes.Delete(c.Request.Context(), user.ID, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		logger.Error("income delete failed",
			"username", user.Username, "operation", "delete_income", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	logger.Info("income deleted",
		"username", user.Username, "operation", "delete_income", "id", id)
	c.Status(http.StatusNoContent)
}
