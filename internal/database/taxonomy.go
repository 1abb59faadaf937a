package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"classifieds-portal/internal/models"
)

// GetAllCategories retrieves all listing categories.
func (gdb *GormDB) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := gdb.db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, err
}

// GetCategoryByID retrieves a single category by id.
func (gdb *GormDB) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := gdb.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory inserts a new category.
func (gdb *GormDB) CreateCategory(ctx context.Context, c *models.Category) error {
	return gdb.db.WithContext(ctx).Create(c).Error
}

// UpdateCategory renames an existing category.
func (gdb *GormDB) UpdateCategory(ctx context.Context, id uint, name string) error {
	res := gdb.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", id).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category and all listings that reference it,
// in one transaction. This is the only write that spans entity types.
func (gdb *GormDB) DeleteCategory(ctx context.Context, id uint) error {
	return gdb.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("category_id = ?", id).Delete(&models.Listing{}).Error
	})
}

// CategoryExists reports whether a category row with the given id exists.
func (gdb *GormDB) CategoryExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := gdb.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CategoryNames returns an id -> name map over all categories, used to
// project listings in one batch instead of a per-row lookup.
func (gdb *GormDB) CategoryNames(ctx context.Context) (map[uint]string, error) {
	categories, err := gdb.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

// GetAllTypes retrieves all listing types.
func (gdb *GormDB) GetAllTypes(ctx context.Context) ([]models.AdType, error) {
	var types []models.AdType
	err := gdb.db.WithContext(ctx).Order("id ASC").Find(&types).Error
	return types, err
}

// GetTypeByID retrieves a single listing type by id.
func (gdb *GormDB) GetTypeByID(ctx context.Context, id uint) (*models.AdType, error) {
	var adType models.AdType
	err := gdb.db.WithContext(ctx).First(&adType, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &adType, nil
}

// CreateType inserts a new listing type.
func (gdb *GormDB) CreateType(ctx context.Context, t *models.AdType) error {
	return gdb.db.WithContext(ctx).Create(t).Error
}

// UpdateType renames an existing listing type.
func (gdb *GormDB) UpdateType(ctx context.Context, id uint, name string) error {
	res := gdb.db.WithContext(ctx).Model(&models.AdType{}).
		Where("id = ?", id).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteType removes a listing type and all listings that reference it,
// in one transaction.
func (gdb *GormDB) DeleteType(ctx context.Context, id uint) error {
	return gdb.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.AdType{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("type_id = ?", id).Delete(&models.Listing{}).Error
	})
}

// TypeExists reports whether a listing type row with the given id exists.
func (gdb *GormDB) TypeExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := gdb.db.WithContext(ctx).Model(&models.AdType{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// TypeNames returns an id -> name map over all listing types.
func (gdb *GormDB) TypeNames(ctx context.Context) (map[uint]string, error) {
	types, err := gdb.GetAllTypes(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(types))
	for _, t := range types {
		names[t.ID] = t.Name
	}
	return names, nil
}
