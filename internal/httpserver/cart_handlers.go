package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"shopper/internal/events"
	"shopper/internal/logging"
	"shopper/internal/service"
)

type CartHandler struct {
	Svc    *service.CartService
	Events *events.Producer
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID := pathUserID(c)

	cart, err := h.Svc.GetOrCreateCart(ctx, userID)
	if err != nil {
		return httpError(c, err)
	}
	items, err := h.Svc.ListItems(ctx, cart.ID)
	if err != nil {
		return httpError(c, err)
	}

	l.Info("cart fetched", "items", len(items))
	return c.JSON(http.StatusOK, echo.Map{
		"cart":  cart,
		"items": items,
	})
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	userID := pathUserID(c)

	var req struct {
		ProductID uuid.UUID `json:"product_id"`
		Quantity  int       `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity <= 0 {
		l.Warn("add_item_error", "status", 400, "reason", "non-positive quantity")
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be positive")
	}

	cart, err := h.Svc.GetOrCreateCart(ctx, userID)
	if err != nil {
		return httpError(c, err)
	}

	item, err := h.Svc.AddItem(ctx, cart.ID, req.ProductID, uint(req.Quantity))
	if err != nil {
		return httpError(c, err)
	}

	publish(c, h.Events, events.TopicCartEvents, userID.String(), map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": req.ProductID,
		"quantity":  item.Quantity,
	})

	l.Info("item added", "product_id", req.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHandler) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.set_quantity")

	userID := pathUserID(c)

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("set_quantity_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity < 0 {
		l.Warn("set_quantity_error", "status", 400, "reason", "negative quantity")
		return echo.NewHTTPError(http.StatusBadRequest, "quantity cannot be negative")
	}

	cart, err := h.Svc.GetOrCreateCart(ctx, userID)
	if err != nil {
		return httpError(c, err)
	}

	item, err := h.Svc.SetQuantity(ctx, cart.ID, productID, uint(req.Quantity))
	if err != nil {
		return httpError(c, err)
	}

	publish(c, h.Events, events.TopicCartEvents, userID.String(), map[string]any{
		"type":      "cart_quantity_set",
		"userID":    userID,
		"productID": productID,
		"quantity":  req.Quantity,
	})

	if item == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	userID := pathUserID(c)

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	cart, err := h.Svc.GetOrCreateCart(ctx, userID)
	if err != nil {
		return httpError(c, err)
	}

	if err := h.Svc.RemoveItem(ctx, cart.ID, productID); err != nil {
		return httpError(c, err)
	}

	publish(c, h.Events, events.TopicCartEvents, userID.String(), map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID,
		"productID": productID,
	})

	l.Info("item removed", "product_id", productID)
	return c.NoContent(http.StatusNoContent)
}
