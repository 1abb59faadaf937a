package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"classifieds-portal/internal/auth"
	"classifieds-portal/internal/database"
	"classifieds-portal/internal/models"
	"classifieds-portal/internal/storage"
)

// ListingHandler serves the ad-listing routes.
type ListingHandler struct {
	db     *database.GormDB
	images *storage.ImageStore
	log    *zap.SugaredLogger
}

// NewListingHandler creates a new listing handler
func NewListingHandler(db *database.GormDB, images *storage.ImageStore, log *zap.SugaredLogger) *ListingHandler {
	return &ListingHandler{db: db, images: images, log: log}
}

// GetAllAds returns every listing, projected with category and type names.
// GET /api/ads
func (h *ListingHandler) GetAllAds(c *gin.Context) {
	listings, err := h.db.GetAllListings(c.Request.Context())
	if err != nil {
		h.log.Errorw("failed to load listings", "error", err)
		respondInternal(c, CodeInternal, "failed to load listings")
		return
	}
	h.respondProjected(c, listings)
}

// SearchAds returns listings whose title or description contains the query.
// GET /api/ads/search/:query
func (h *ListingHandler) SearchAds(c *gin.Context) {
	query := c.Param("query")
	listings, err := h.db.SearchListings(c.Request.Context(), query)
	if err != nil {
		h.log.Errorw("listing search failed", "query", query, "error", err)
		respondInternal(c, CodeInternal, "search failed")
		return
	}
	h.respondProjected(c, listings)
}

// GetAd returns a single listing by id.
// GET /api/ads/:id
func (h *ListingHandler) GetAd(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	listing, err := h.db.GetListingByID(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "listing not found")
		return
	}
	if err != nil {
		h.log.Errorw("failed to load listing", "listing_id", id, "error", err)
		respondInternal(c, CodeInternal, "failed to load listing")
		return
	}

	categories, types, err := h.taxonomyNames(c)
	if err != nil {
		return
	}
	dto, err := toListingDTO(*listing, categories, types)
	if err != nil {
		h.log.Errorw("listing projection failed", "listing_id", id, "error", err)
		respondInternal(c, CodeInternal, "listing references a missing category or type")
		return
	}
	c.JSON(http.StatusOK, dto)
}

// GetUserAds returns the listings visible to the caller: admins see all
// listings system-wide, users see only their own, and any other role claim
// is treated as not found.
// GET /api/ads/user/:userId/:role
func (h *ListingHandler) GetUserAds(c *gin.Context) {
	userID := c.Param("userId")
	role, err := auth.ParseRole(c.Param("role"))
	if err != nil {
		respondNotFound(c, "unknown role")
		return
	}

	var listings []models.Listing
	switch role {
	case auth.RoleAdmin:
		listings, err = h.db.GetAllListings(c.Request.Context())
	case auth.RoleUser:
		listings, err = h.db.GetListingsByUser(c.Request.Context(), userID)
	}
	if err != nil {
		h.log.Errorw("failed to load user listings", "user_id", userID, "error", err)
		respondInternal(c, CodeInternal, "failed to load listings")
		return
	}
	h.respondProjected(c, listings)
}

// CreateAd inserts a new listing owned by the posting user. The id and the
// timestamp are server-assigned.
// POST /api/ads
func (h *ListingHandler) CreateAd(c *gin.Context) {
	var listing models.Listing
	if err := c.ShouldBindJSON(&listing); err != nil {
		respondValidation(c, err.Error())
		return
	}
	listing.ID = 0
	listing.Version = 0
	listing.ImagePath = ""

	if ok := h.checkReferences(c, listing.CategoryID, listing.TypeID); !ok {
		return
	}

	if err := h.db.CreateListing(c.Request.Context(), &listing); err != nil {
		h.log.Errorw("failed to create listing", "user_id", listing.UserID, "error", err)
		respondInternal(c, CodeInternal, "failed to create listing")
		return
	}

	categories, types, err := h.taxonomyNames(c)
	if err != nil {
		return
	}
	dto, err := toListingDTO(listing, categories, types)
	if err != nil {
		h.log.Errorw("listing projection failed", "listing_id", listing.ID, "error", err)
		respondInternal(c, CodeInternal, "listing references a missing category or type")
		return
	}
	h.log.Infow("listing created", "listing_id", listing.ID, "user_id", listing.UserID)
	c.JSON(http.StatusCreated, dto)
}

// UpdateAd copies the mutable fields of the payload onto the stored listing.
// The ids in the path, the stored record, and the payload must agree, and
// the caller must own the listing or hold the Admin role.
// POST /api/ads/:id/update/:userId/:role
func (h *ListingHandler) UpdateAd(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var payload models.Listing
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondValidation(c, err.Error())
		return
	}

	existing, err := h.db.GetListingByID(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "listing not found")
		return
	}
	if err != nil {
		h.log.Errorw("failed to load listing", "listing_id", id, "error", err)
		respondInternal(c, CodeInternal, "failed to load listing")
		return
	}

	if existing.ID != id || payload.ID != id {
		respondValidation(c, "listing id mismatch")
		return
	}

	caller := callerFromPath(c)
	if !caller.CanModify(existing.UserID) {
		respondForbidden(c, "not the listing owner")
		return
	}

	if ok := h.checkReferences(c, payload.CategoryID, payload.TypeID); !ok {
		return
	}

	// Only the mutable fields move over; id, owner, and image path stay.
	existing.CategoryID = payload.CategoryID
	existing.TypeID = payload.TypeID
	existing.Title = payload.Title
	existing.Description = payload.Description
	existing.Price = payload.Price
	existing.Timestamp = payload.Timestamp
	existing.Location = payload.Location

	err = h.db.UpdateListing(c.Request.Context(), existing)
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondNotFound(c, "listing not found")
	case errors.Is(err, database.ErrConflict):
		h.log.Warnw("concurrent listing update lost", "listing_id", id)
		respondInternal(c, CodeConflict, "listing was modified concurrently")
	case err != nil:
		h.log.Errorw("failed to update listing", "listing_id", id, "error", err)
		respondInternal(c, CodeInternal, "failed to update listing")
	default:
		h.log.Infow("listing updated", "listing_id", id, "caller", caller.UserID)
		c.Status(http.StatusNoContent)
	}
}

// DeleteAd removes a listing and, best-effort, its stored image file.
// DELETE /api/ads/:id/:userId/:role
func (h *ListingHandler) DeleteAd(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	listing, err := h.db.GetListingByID(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "listing not found")
		return
	}
	if err != nil {
		h.log.Errorw("failed to load listing", "listing_id", id, "error", err)
		respondInternal(c, CodeInternal, "failed to load listing")
		return
	}

	caller := callerFromPath(c)
	if !caller.CanModify(listing.UserID) {
		respondForbidden(c, "not the listing owner")
		return
	}

	if err := h.db.DeleteListing(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "listing not found")
			return
		}
		h.log.Errorw("failed to delete listing", "listing_id", id, "error", err)
		respondInternal(c, CodeInternal, "failed to delete listing")
		return
	}

	h.images.Remove(listing.ImagePath)
	h.log.Infow("listing deleted", "listing_id", id, "caller", caller.UserID)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// AttachImage stores a single uploaded image for a listing under
// {id}.{ext} and persists the resulting path. Malformed, empty, multi-file,
// or unsupported uploads are rejected outright.
// POST /api/ads/:id/image/:userId/:role
func (h *ListingHandler) AttachImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	listing, err := h.db.GetListingByID(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "listing not found")
		return
	}
	if err != nil {
		h.log.Errorw("failed to load listing", "listing_id", id, "error", err)
		respondInternal(c, CodeInternal, "failed to load listing")
		return
	}

	caller := callerFromPath(c)
	if !caller.CanModify(listing.UserID) {
		respondForbidden(c, "not the listing owner")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondValidation(c, "expected multipart form data")
		return
	}
	files := form.File["image"]
	if len(files) != 1 {
		respondValidation(c, "expected exactly one image file")
		return
	}
	header := files[0]
	if header.Size == 0 {
		respondValidation(c, "image file is empty")
		return
	}

	src, err := header.Open()
	if err != nil {
		respondValidation(c, "unreadable image file")
		return
	}
	defer src.Close()

	path, err := h.images.Save(id, header.Filename, src)
	if errors.Is(err, storage.ErrUnsupportedImageType) || errors.Is(err, storage.ErrEmptyImage) {
		respondValidation(c, err.Error())
		return
	}
	if err != nil {
		h.log.Errorw("failed to store image", "listing_id", id, "error", err)
		respondInternal(c, CodeInternal, "failed to store image")
		return
	}

	previous := listing.ImagePath
	listing.ImagePath = path
	err = h.db.UpdateListing(c.Request.Context(), listing)
	switch {
	case errors.Is(err, database.ErrNotFound):
		h.images.Remove(path)
		respondNotFound(c, "listing not found")
	case errors.Is(err, database.ErrConflict):
		h.log.Warnw("concurrent listing update lost", "listing_id", id)
		respondInternal(c, CodeConflict, "listing was modified concurrently")
	case err != nil:
		h.log.Errorw("failed to persist image path", "listing_id", id, "error", err)
		respondInternal(c, CodeInternal, "failed to persist image path")
	default:
		if previous != "" && previous != path {
			h.images.Remove(previous)
		}
		h.log.Infow("listing image attached", "listing_id", id, "path", path)
		c.JSON(http.StatusOK, gin.H{"image_path": path})
	}
}

// respondProjected writes the listings as DTOs, resolving category and type
// names once for the whole batch.
func (h *ListingHandler) respondProjected(c *gin.Context, listings []models.Listing) {
	categories, types, err := h.taxonomyNames(c)
	if err != nil {
		return
	}
	dtos, err := toListingDTOs(listings, categories, types)
	if err != nil {
		h.log.Errorw("listing projection failed", "error", err)
		respondInternal(c, CodeInternal, "listing references a missing category or type")
		return
	}
	c.JSON(http.StatusOK, dtos)
}

// taxonomyNames pre-fetches both name maps; on failure the error response
// has already been written.
func (h *ListingHandler) taxonomyNames(c *gin.Context) (map[uint]string, map[uint]string, error) {
	categories, err := h.db.CategoryNames(c.Request.Context())
	if err != nil {
		h.log.Errorw("failed to load categories", "error", err)
		respondInternal(c, CodeInternal, "failed to load categories")
		return nil, nil, err
	}
	types, err := h.db.TypeNames(c.Request.Context())
	if err != nil {
		h.log.Errorw("failed to load types", "error", err)
		respondInternal(c, CodeInternal, "failed to load types")
		return nil, nil, err
	}
	return categories, types, nil
}

// checkReferences rejects a payload pointing at a category or type that does
// not exist.
func (h *ListingHandler) checkReferences(c *gin.Context, categoryID, typeID uint) bool {
	exists, err := h.db.CategoryExists(c.Request.Context(), categoryID)
	if err != nil {
		h.log.Errorw("failed to check category", "category_id", categoryID, "error", err)
		respondInternal(c, CodeInternal, "failed to check category")
		return false
	}
	if !exists {
		respondValidation(c, "category does not exist")
		return false
	}
	exists, err = h.db.TypeExists(c.Request.Context(), typeID)
	if err != nil {
		h.log.Errorw("failed to check type", "type_id", typeID, "error", err)
		respondInternal(c, CodeInternal, "failed to check type")
		return false
	}
	if !exists {
		respondValidation(c, "type does not exist")
		return false
	}
	return true
}

// callerFromPath builds the caller identity from the userId and role path
// parameters. An unknown role claim simply never matches Admin, so the
// ownership check still applies.
func callerFromPath(c *gin.Context) auth.Caller {
	caller := auth.Caller{UserID: c.Param("userId")}
	if role, err := auth.ParseRole(c.Param("role")); err == nil {
		caller.Role = role
	}
	return caller
}

func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondValidation(c, "invalid id "+strconv.Quote(raw))
		return 0, false
	}
	return uint(id), true
}
