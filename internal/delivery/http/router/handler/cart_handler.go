package handler

import (
	"log/slog"
	"net/http"

	"sokoni/internal/delivery/http/response"
	"sokoni/internal/domain/entity"
	"sokoni/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartStore usecase.CartStore
	Logger    *slog.Logger
}

// CartHandler serves the shopping cart.
type CartHandler struct {
	cart   usecase.CartStore
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler.
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cart:   params.CartStore,
		logger: params.Logger,
	}
}

// AddItemRequest represents the request body for adding a cart line.
type AddItemRequest struct {
	ProductID      uuid.UUID         `json:"product_id" validate:"required"`
	Title          string            `json:"title" validate:"required"`
	Image          string            `json:"image"`
	UnitPrice      int64             `json:"unit_price" validate:"gte=0"`
	Quantity       int               `json:"quantity"`
	Customizations map[string]string `json:"customizations"`
	Surcharge      int64             `json:"surcharge" validate:"gte=0"`
}

// UpdateQuantityRequest represents the request body for a quantity change.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// cartPayload is the cart envelope with its derived totals.
type cartPayload struct {
	Items      []entity.CartItem `json:"items"`
	TotalPrice int64             `json:"total_price"`
	TotalItems int               `json:"total_items"`
}

// GetCart returns the cart lines and totals.
func (h *CartHandler) GetCart(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.payload(), "")
}

// AddItem adds a line or merges it into an existing one.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	h.cart.AddToCart(entity.CartItem{
		ProductID:      req.ProductID,
		Title:          req.Title,
		Image:          req.Image,
		UnitPrice:      req.UnitPrice,
		Quantity:       req.Quantity,
		Customizations: req.Customizations,
		Surcharge:      req.Surcharge,
	})

	return response.Success(c, http.StatusCreated, h.payload(), "Item added to cart")
}

// UpdateQuantity sets the quantity of every line of the product.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	var req UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}

	h.cart.UpdateQuantity(productID, req.Quantity)

	return response.Success(c, http.StatusOK, h.payload(), "Quantity updated")
}

// RemoveItem deletes every line of the product.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product id")
	}

	h.cart.RemoveFromCart(productID)

	return response.Success(c, http.StatusOK, h.payload(), "Item removed")
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	h.cart.Clear()

	return response.Success(c, http.StatusOK, h.payload(), "Cart cleared")
}

func (h *CartHandler) payload() cartPayload {
	return cartPayload{
		Items:      h.cart.Items(),
		TotalPrice: h.cart.TotalPrice(),
		TotalItems: h.cart.TotalItems(),
	}
}
