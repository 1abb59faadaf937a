package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"classifieds-portal/internal/models"
)

// GetAllListings retrieves every listing, newest first.
func (gdb *GormDB) GetAllListings(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	err := gdb.db.WithContext(ctx).Order("timestamp DESC, id DESC").Find(&listings).Error
	return listings, err
}

// GetListingByID retrieves a single listing by id.
func (gdb *GormDB) GetListingByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	err := gdb.db.WithContext(ctx).First(&listing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetListingsByUser retrieves the listings owned by userID, newest first.
func (gdb *GormDB) GetListingsByUser(ctx context.Context, userID string) ([]models.Listing, error) {
	var listings []models.Listing
	err := gdb.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Find(&listings).Error
	return listings, err
}

// SearchListings returns listings whose title or description contains the
// query as a substring. Matching collation is the engine's; no ranking,
// no pagination.
func (gdb *GormDB) SearchListings(ctx context.Context, query string) ([]models.Listing, error) {
	var listings []models.Listing
	pattern := "%" + query + "%"
	err := gdb.db.WithContext(ctx).
		Where("title LIKE ? OR description LIKE ?", pattern, pattern).
		Order("timestamp DESC, id DESC").
		Find(&listings).Error
	return listings, err
}

// CreateListing inserts a new listing. The id is assigned by the store and
// the timestamp by the server when the caller left it zero.
func (gdb *GormDB) CreateListing(ctx context.Context, l *models.Listing) error {
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now()
	}
	if l.Version == 0 {
		l.Version = 1
	}
	return gdb.db.WithContext(ctx).Create(l).Error
}

// UpdateListing saves the mutable listing fields, guarded by the version
// column. A save against a stale version returns ErrConflict; a save
// against a vanished row returns ErrNotFound. On success the in-memory
// version is advanced to match the stored row.
func (gdb *GormDB) UpdateListing(ctx context.Context, l *models.Listing) error {
	res := gdb.db.WithContext(ctx).Model(&models.Listing{}).
		Where("id = ? AND version = ?", l.ID, l.Version).
		Updates(map[string]interface{}{
			"category_id": l.CategoryID,
			"type_id":     l.TypeID,
			"title":       l.Title,
			"description": l.Description,
			"price":       l.Price,
			"timestamp":   l.Timestamp,
			"location":    l.Location,
			"image_path":  l.ImagePath,
			"version":     l.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		exists, err := gdb.ListingExists(ctx, l.ID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrConflict
	}
	l.Version++
	return nil
}

// DeleteListing removes a listing row. The caller is responsible for the
// associated image file.
func (gdb *GormDB) DeleteListing(ctx context.Context, id uint) error {
	res := gdb.db.WithContext(ctx).Delete(&models.Listing{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListingExists reports whether a listing row with the given id exists.
func (gdb *GormDB) ListingExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := gdb.db.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
