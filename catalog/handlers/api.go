package handlers

import (
	"time"

	"github.com/labstack/echo/v4"
)

// CreateItemRequest defines model for CreateItemRequest.
type CreateItemRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Description string   `json:"description" validate:"max=2000"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
}

// UpdateItemRequest defines model for UpdateItemRequest. Absent fields are left unchanged.
type UpdateItemRequest struct {
	Name        *string  `json:"name" validate:"omitnil,min=1,max=200"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0"`
	Description *string  `json:"description" validate:"omitnil,max=2000"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,url"`
}

// ItemInfo defines model for ItemInfo.
type ItemInfo struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemsResponse defines model for ItemsResponse.
type ItemsResponse struct {
	Items []ItemInfo `json:"items"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /items)
	ListItems(ctx echo.Context) error
	// (GET /items/{id})
	GetItem(ctx echo.Context, id string) error
	// (POST /items)
	CreateItem(ctx echo.Context) error
	// (PUT /items/{id})
	UpdateItem(ctx echo.Context, id string) error
	// (DELETE /items/{id})
	DeleteItem(ctx echo.Context, id string) error
	// (GET /healthz)
	Healthz(ctx echo.Context) error
}

// EchoRouter is implemented by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	withID := func(h func(echo.Context, string) error) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			return h(ctx, ctx.Param("id"))
		}
	}

	router.GET("/items", si.ListItems)
	router.GET("/items/:id", withID(si.GetItem))
	router.POST("/items", si.CreateItem)
	router.PUT("/items/:id", withID(si.UpdateItem))
	router.DELETE("/items/:id", withID(si.DeleteItem))
	router.GET("/healthz", si.Healthz)
}
