package httpserver

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	"storefront/internal/service/pricing"
)

type cartLineResponse struct {
	pricing.Line
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type cartResponse struct {
	Items   []cartLineResponse `json:"items"`
	Summary pricing.Summary    `json:"summary"`
}

type addCartItemRequest struct {
	ProductID     string `json:"productId" binding:"required"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
}

type updateCartItemRequest struct {
	Quantity *int   `json:"quantity" binding:"required"`
	// Size narrows the update to one line; empty updates every line of the product.
	Size     string `json:"size"`
}

func (h *handler) cartView() cartResponse {
	lines := pricing.Enrich(h.store.Cart(), h.store.Products())
	items := make([]cartLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, cartLineResponse{Line: l, UnitPrice: l.UnitPrice(), LineTotal: l.Total()})
	}
	return cartResponse{Items: items, Summary: pricing.Summarize(lines)}
}

func (h *handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartView())
}

// addCartItem mirrors the product page: a size from the product is required and
// the color defaults to the product's first color.
func (h *handler) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	p, ok := h.store.Product(req.ProductID)
	if !ok {
		writeError(c, h, "add to cart", domain.ErrNotFound)
		return
	}
	if !slices.Contains(p.Sizes, req.SelectedSize) {
		badRequest(c, "please select a size")
		return
	}
	color := req.SelectedColor
	if color == "" {
		color = p.Colors[0]
	} else if !slices.Contains(p.Colors, color) {
		badRequest(c, "unknown color")
		return
	}

	item := domain.CartItem{
		ProductID:     p.ID,
		Quantity:      req.Quantity,
		SelectedSize:  req.SelectedSize,
		SelectedColor: color,
	}
	if err := h.store.AddToCart(c.Request.Context(), item); err != nil {
		writeError(c, h, "add to cart", err)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}

func (h *handler) updateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	ctx := c.Request.Context()
	productID := c.Param("productId")
	var err error
	if req.Size != "" {
		err = h.store.UpdateCartLineQuantity(ctx, productID, req.Size, *req.Quantity)
	} else {
		err = h.store.UpdateCartQuantity(ctx, productID, *req.Quantity)
	}
	if err != nil {
		writeError(c, h, "update cart", err)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}

// removeCartItem drops every line of the product, or only ?size= when given.
func (h *handler) removeCartItem(c *gin.Context) {
	ctx := c.Request.Context()
	productID := c.Param("productId")
	var err error
	if size := c.Query("size"); size != "" {
		err = h.store.RemoveCartLine(ctx, productID, size)
	} else {
		err = h.store.RemoveFromCart(ctx, productID)
	}
	if err != nil {
		writeError(c, h, "remove from cart", err)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}

func (h *handler) clearCart(c *gin.Context) {
	if err := h.store.ClearCart(c.Request.Context()); err != nil {
		writeError(c, h, "clear cart", err)
		return
	}
	c.JSON(http.StatusOK, h.cartView())
}
