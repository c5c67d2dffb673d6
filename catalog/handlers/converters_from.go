package handlers

import (
	"time"

	"microreg/catalog/domain"
	"microreg/helpers"
)

// fromCreateItemRequest builds a new item. req must be validated.
func fromCreateItemRequest(req CreateItemRequest, id string, now time.Time) domain.Item {
	return domain.Item{
		ID:          id,
		Name:        req.Name,
		Price:       helpers.Value(req.Price),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func fromUpdateItemRequest(req UpdateItemRequest) domain.ItemPatch {
	return domain.ItemPatch{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
}
