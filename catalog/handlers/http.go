// Package handlers contains http handlers for the catalog service.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"microreg/apierror"
	"microreg/catalog/interfaces"
	"microreg/helpers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// HTTPServer implements ServerInterface over an ItemStore.
type HTTPServer struct {
	store  interfaces.ItemStore
	newID  func() string
	now    func() time.Time
	logger log.Logger
}

// NewHTTPServer creates a new HTTPServer. newID generates item ids and now stamps them.
func NewHTTPServer(store interfaces.ItemStore, newID func() string, now func() time.Time, logger log.Logger) *HTTPServer {
	return &HTTPServer{
		store:  helpers.NilPanic(store, "handlers.http.go: store is required"),
		newID:  helpers.NilPanic(newID, "handlers.http.go: newID is required"),
		now:    helpers.NilPanic(now, "handlers.http.go: now is required"),
		logger: log.WithPrefix(logger, "component", "HTTPServer"),
	}
}

// ListItems (GET /items) returns all items, newest first.
func (h *HTTPServer) ListItems(ectx echo.Context) error {
	items, err := h.store.List(ectx.Request().Context())
	if err != nil {
		return fmt.Errorf("listItems failed to list items, err: %w", err)
	}
	return ectx.JSON(http.StatusOK, toItemsResponse(items))
}

// GetItem (GET /items/{id}) returns 404 when the item does not exist.
func (h *HTTPServer) GetItem(ectx echo.Context, id string) error {
	item, err := h.store.Get(ectx.Request().Context(), id)
	if err != nil {
		return fmt.Errorf("getItem failed to get item %s, err: %w", id, err)
	}
	return ectx.JSON(http.StatusOK, toItemInfo(item))
}

// CreateItem (POST /items) validates the body and stores a new item. Returns 201.
func (h *HTTPServer) CreateItem(ectx echo.Context) error {
	var req CreateItemRequest
	if err := ectx.Bind(&req); err != nil {
		return apierror.NewBadParameterError("invalid request body", err)
	}
	if err := ectx.Validate(&req); err != nil {
		return err
	}

	item := fromCreateItemRequest(req, h.newID(), h.now())
	if err := h.store.Create(ectx.Request().Context(), item); err != nil {
		return fmt.Errorf("createItem failed to store item, err: %w", err)
	}
	level.Info(h.logger).Log("msg", "item created", "id", item.ID)
	return ectx.JSON(http.StatusCreated, toItemInfo(item))
}

// UpdateItem (PUT /items/{id}) applies a partial update. Returns 404 when the item does not exist.
func (h *HTTPServer) UpdateItem(ectx echo.Context, id string) error {
	var req UpdateItemRequest
	if err := ectx.Bind(&req); err != nil {
		return apierror.NewBadParameterError("invalid request body", err)
	}
	if err := ectx.Validate(&req); err != nil {
		return err
	}

	ctx := ectx.Request().Context()
	item, err := h.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("updateItem failed to get item %s, err: %w", id, err)
	}
	item = item.Apply(fromUpdateItemRequest(req), h.now())
	if err := h.store.Update(ctx, item); err != nil {
		return fmt.Errorf("updateItem failed to store item %s, err: %w", id, err)
	}
	return ectx.JSON(http.StatusOK, toItemInfo(item))
}

// DeleteItem (DELETE /items/{id}) returns 204, or 404 when the item does not exist.
func (h *HTTPServer) DeleteItem(ectx echo.Context, id string) error {
	if err := h.store.Delete(ectx.Request().Context(), id); err != nil {
		return fmt.Errorf("deleteItem failed to delete item %s, err: %w", id, err)
	}
	level.Info(h.logger).Log("msg", "item deleted", "id", id)
	return ectx.NoContent(http.StatusNoContent)
}

func (h *HTTPServer) Healthz(ectx echo.Context) error {
	return ectx.NoContent(http.StatusOK)
}
