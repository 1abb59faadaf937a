package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classifieds-portal/internal/models"
)

func TestCategoryEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/categories", map[string]string{"name": "Electronics"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.CategoryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	w = env.do(t, http.MethodPost, "/api/categories", map[string]string{"name": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/categories/%d", created.ID), map[string]string{"name": "Gadgets"})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []models.CategoryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "Gadgets", categories[0].Name)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/categories/%d", created.ID+9), map[string]string{"name": "X"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/categories/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/categories/%d", created.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTypeEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/types", map[string]string{"name": "Wanted"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.TypeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/types/%d", created.ID), map[string]string{"name": "Offered"})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var types []models.TypeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &types))
	require.Len(t, types, 1)
	assert.Equal(t, "Offered", types[0].Name)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/types/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteCategoryCascadesOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	categoryID, typeID := env.seedTaxonomy(t)
	env.seedListing(t, "alice", categoryID, typeID)
	env.seedListing(t, "bob", categoryID, typeID)

	w := env.do(t, http.MethodDelete, fmt.Sprintf("/api/categories/%d", categoryID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	remaining, err := env.db.GetAllListings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
