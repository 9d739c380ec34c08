package main

import (
	"errors"
	"net/http"
	"sort"

	"contas/models"
	"contas/pkg/logx"
	"contas/store"

	"github.com/gin-gonic/gin"
)

type categoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
}

func (r *categoryRequest) apply(cat *models.Category) {
	if r.Name != nil {
		cat.Name = *r.Name
	}
	if r.Description != nil {
		cat.Description = *r.Description
	}
	if r.Icon != nil {
		cat.Icon = *r.Icon
	}
	if r.Color != nil {
		cat.Color = *r.Color
	}
}

type categoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

func toCategoryResponse(cat models.Category) categoryResponse {
	return categoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		Icon:        cat.Icon,
		Color:       cat.Color,
	}
}

func listCategoriesHandler(c *gin.Context) {
	logger := logx.FromContext(c.Request.Context())
	user, ok := getUserFromContext(c)
	if !ok {
		logger.Warn("unauthenticated categories request", "operation", "list_categories")
		unauthorized(c)
		return
	}
	items, err := categories.List(c.Request.Context())
	if err != nil {
		logger.Error("categories query failed",
			"username", user.Username, "operation", "list_categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching categories"})
		return
	}
	// lexical ordering is a presentation choice, so it lives here
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	out := make([]categoryResponse, 0, len(items))
	for _, cat := range items {
		out = append(out, toCategoryResponse(cat))
	}
	logger.Info("categories listed",
		"username", user.Username, "operation", "list_categories", "count", len(out))
	c.JSON(http.StatusOK, out)
}

func createCategoryHandler(c *gin.Context) {
	logger := logx.FromContext(c.Request.Context())
	user, ok := getUserFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == nil || *req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"name": "required"}})
		return
	}
	var cat models.Category
	req.apply(&cat)
	if err := categories.Create(c.Request.Context(), &cat); err != nil {
		logger.Error("category create failed",
			"username", user.Username, "operation", "create_category", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	logger.Info("category created",
		"username", user.Username, "operation", "create_category", "category", cat.Name)
	c.JSON(http.StatusCreated, toCategoryResponse(cat))
}

func getCategoryHandler(c *gin.Context) {
	if _, ok := getUserFromContext(c); !ok {
		unauthorized(c)
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	cat, err := categories.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(*cat))
}

func updateCategoryHandler(c *gin.Context) {
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
	cat, err := categories.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.apply(cat)
	if cat.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"name": "required"}})
		return
	}
	if err := categories.Save(c.Request.Context(), cat); err != nil {
		logger.Error("category update failed",
			"username", user.Username, "operation", "update_category", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(*cat))
}

func deleteCategoryHandler(c *gin.Context) {
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
	err := categories.Delete(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		logger.Error("category delete failed",
			"username", user.Username, "operation", "delete_category", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}
