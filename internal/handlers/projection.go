package handlers

import (
	"fmt"

	"classifieds-portal/internal/models"
)

// toListingDTOs projects listings into transfer objects using pre-fetched
// id -> name maps for categories and types, so a page of listings costs two
// taxonomy queries instead of two per row. A listing referencing a category
// or type with no row is an error, not a blank name.
func toListingDTOs(listings []models.Listing, categories, types map[uint]string) ([]models.ListingDTO, error) {
	dtos := make([]models.ListingDTO, 0, len(listings))
	for _, l := range listings {
		dto, err := toListingDTO(l, categories, types)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

func toListingDTO(l models.Listing, categories, types map[uint]string) (models.ListingDTO, error) {
	categoryName, ok := categories[l.CategoryID]
	if !ok {
		return models.ListingDTO{}, fmt.Errorf("listing %d references missing category %d", l.ID, l.CategoryID)
	}
	typeName, ok := types[l.TypeID]
	if !ok {
		return models.ListingDTO{}, fmt.Errorf("listing %d references missing type %d", l.ID, l.TypeID)
	}
	return models.ListingDTO{
		ID:          l.ID,
		UserID:      l.UserID,
		CategoryID:  l.CategoryID,
		Category:    categoryName,
		TypeID:      l.TypeID,
		Type:        typeName,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Timestamp:   l.Timestamp,
		Location:    l.Location,
		ImagePath:   l.ImagePath,
	}, nil
}
