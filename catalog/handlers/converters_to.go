package handlers

import (
	"microreg/catalog/domain"
)

func toItemInfo(i domain.Item) ItemInfo {
	return ItemInfo{
		Id:          i.ID,
		Name:        i.Name,
		Price:       i.Price,
		Description: i.Description,
		ImageURL:    i.ImageURL,
		CreatedAt:   i.CreatedAt.UTC(),
		UpdatedAt:   i.UpdatedAt.UTC(),
	}
}

// toItemsResponse keeps the store order.
func toItemsResponse(items []domain.Item) ItemsResponse {
	out := make([]ItemInfo, 0, len(items))
	for _, i := range items {
		out = append(out, toItemInfo(i))
	}
	return ItemsResponse{Items: out}
}
