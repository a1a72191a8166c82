package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casafin/casafin-backend/internal/service"
	"github.com/casafin/casafin-backend/internal/websocket"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
	publisher       websocket.EventPublisher
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService, publisher websocket.EventPublisher) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, publisher: publisher}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// SeedCategoriesRequest represents the bulk seed request body
type SeedCategoriesRequest struct {
	Names []string `json:"names"`
}

// RenameCategoryRequest represents the rename category request body
type RenameCategoryRequest struct {
	Name string `json:"name"`
}

// SetCategoryActiveRequest represents the activate/deactivate request body
type SetCategoryActiveRequest struct {
	Active bool `json:"active"`
}

// GetCategories handles GET /categories?active=true
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"
	categories, err := h.categoryService.Categories(activeOnly)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.Add(req.Name)
	if err != nil {
		return respondError(c, err)
	}

	h.publisher.Publish(websocket.CategoryUpdated(category))
	return c.JSON(http.StatusCreated, category)
}

// GetOrCreateCategory handles POST /categories/get-or-create
func (h *CategoryHandler) GetOrCreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.GetOrCreate(req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// SeedCategories handles POST /categories/seed
func (h *CategoryHandler) SeedCategories(c echo.Context) error {
	var req SeedCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	added, err := h.categoryService.AddBatch(req.Names)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"seeded": added})
}

// RenameCategory handles PUT /categories/:id
func (h *CategoryHandler) RenameCategory(c echo.Context) error {
	var req RenameCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.categoryService.Rename(c.Param("id"), req.Name); err != nil {
		return respondError(c, err)
	}

	h.publisher.Publish(websocket.CategoryUpdated(map[string]string{"id": c.Param("id"), "name": req.Name}))
	return c.NoContent(http.StatusNoContent)
}

// SetCategoryActive handles PATCH /categories/:id/active
func (h *CategoryHandler) SetCategoryActive(c echo.Context) error {
	var req SetCategoryActiveRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.categoryService.SetActive(c.Param("id"), req.Active); err != nil {
		return respondError(c, err)
	}

	h.publisher.Publish(websocket.CategoryUpdated(map[string]interface{}{"id": c.Param("id"), "active": req.Active}))
	return c.NoContent(http.StatusNoContent)
}
