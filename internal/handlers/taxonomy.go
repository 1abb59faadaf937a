package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"classifieds-portal/internal/database"
	"classifieds-portal/internal/models"
)

// TaxonomyHandler serves the category and type routes. These are
// administrator-managed reference tables; deleting an entry removes every
// listing that references it.
type TaxonomyHandler struct {
	db  *database.GormDB
	log *zap.SugaredLogger
}

// NewTaxonomyHandler creates a new taxonomy handler
func NewTaxonomyHandler(db *database.GormDB, log *zap.SugaredLogger) *TaxonomyHandler {
	return &TaxonomyHandler{db: db, log: log}
}

// GetCategories returns all listing categories.
// GET /api/categories
func (h *TaxonomyHandler) GetCategories(c *gin.Context) {
	categories, err := h.db.GetAllCategories(c.Request.Context())
	if err != nil {
		h.log.Errorw("failed to load categories", "error", err)
		respondInternal(c, CodeInternal, "failed to load categories")
		return
	}
	dtos := make([]models.CategoryDTO, 0, len(categories))
	for _, cat := range categories {
		dtos = append(dtos, models.CategoryDTO{ID: cat.ID, Name: cat.Name})
	}
	c.JSON(http.StatusOK, dtos)
}

// CreateCategory adds a new listing category.
// POST /api/categories
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		respondValidation(c, err.Error())
		return
	}
	category.ID = 0

	if err := h.db.CreateCategory(c.Request.Context(), &category); err != nil {
		h.log.Errorw("failed to create category", "error", err)
		respondInternal(c, CodeInternal, "failed to create category")
		return
	}
	c.JSON(http.StatusCreated, models.CategoryDTO{ID: category.ID, Name: category.Name})
}

// UpdateCategory renames a listing category.
// PUT /api/categories/:id
func (h *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload models.Category
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondValidation(c, err.Error())
		return
	}

	err := h.db.UpdateCategory(c.Request.Context(), id, payload.Name)
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondNotFound(c, "category not found")
	case err != nil:
		h.log.Errorw("failed to update category", "category_id", id, "error", err)
		respondInternal(c, CodeInternal, "failed to update category")
	default:
		c.Status(http.StatusNoContent)
	}
}

// DeleteCategory removes a category and every listing referencing it.
// DELETE /api/categories/:id
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	err := h.db.DeleteCategory(c.Request.Context(), id)
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondNotFound(c, "category not found")
	case err != nil:
		h.log.Errorw("failed to delete category", "category_id", id, "error", err)
		respondInternal(c, CodeInternal, "failed to delete category")
	default:
		h.log.Infow("category deleted", "category_id", id)
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

// GetTypes returns all listing types.
// GET /api/types
func (h *TaxonomyHandler) GetTypes(c *gin.Context) {
	types, err := h.db.GetAllTypes(c.Request.Context())
	if err != nil {
		h.log.Errorw("failed to load types", "error", err)
		respondInternal(c, CodeInternal, "failed to load types")
		return
	}
	dtos := make([]models.TypeDTO, 0, len(types))
	for _, t := range types {
		dtos = append(dtos, models.TypeDTO{ID: t.ID, Name: t.Name})
	}
	c.JSON(http.StatusOK, dtos)
}

// CreateType adds a new listing type.
// POST /api/types
func (h *TaxonomyHandler) CreateType(c *gin.Context) {
	var adType models.AdType
	if err := c.ShouldBindJSON(&adType); err != nil {
		respondValidation(c, err.Error())
		return
	}
	adType.ID = 0

	if err := h.db.CreateType(c.Request.Context(), &adType); err != nil {
		h.log.Errorw("failed to create type", "error", err)
		respondInternal(c, CodeInternal, "failed to create type")
		return
	}
	c.JSON(http.StatusCreated, models.TypeDTO{ID: adType.ID, Name: adType.Name})
}

// UpdateType renames a listing type.
// PUT /api/types/:id
func (h *TaxonomyHandler) UpdateType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload models.AdType
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondValidation(c, err.Error())
		return
	}

	err := h.db.UpdateType(c.Request.Context(), id, payload.Name)
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondNotFound(c, "type not found")
	case err != nil:
		h.log.Errorw("failed to update type", "type_id", id, "error", err)
		respondInternal(c, CodeInternal, "failed to update type")
	default:
		c.Status(http.StatusNoContent)
	}
}

// DeleteType removes a listing type and every listing referencing it.
// DELETE /api/types/:id
func (h *TaxonomyHandler) DeleteType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	err := h.db.DeleteType(c.Request.Context(), id)
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondNotFound(c, "type not found")
	case err != nil:
		h.log.Errorw("failed to delete type", "type_id", id, "error", err)
		respondInternal(c, CodeInternal, "failed to delete type")
	default:
		h.log.Infow("type deleted", "type_id", id)
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}
