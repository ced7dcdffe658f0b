package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
	"storefront/internal/service/checkout"
)

type checkoutRequest struct {
	Address    string `json:"address"`
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"`
}

// placeOrder runs the checkout flow in one request: shipping address, then
// payment, then confirmation.
func (h *handler) placeOrder(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	flow := checkout.New(h.store)
	if err := flow.ContinueToPayment(req.Address); err != nil {
		writeError(c, h, "checkout", err)
		return
	}
	order, err := flow.PlaceOrder(c.Request.Context(), req.CardName, req.CardNumber)
	if err != nil {
		writeError(c, h, "checkout", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"step": flow.Step().String(), "order": order})
}

// listOrders shows a shopper their own orders; admins see every order.
func (h *handler) listOrders(c *gin.Context) {
	user := h.store.User()
	if user == nil {
		writeError(c, h, "list orders", checkout.ErrAuthRequired)
		return
	}
	orders := h.store.Orders()
	if !user.IsAdmin() {
		own := orders[:0]
		for _, o := range orders {
			if o.UserID == user.ID {
				own = append(own, o)
			}
		}
		orders = own
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "results": orders})
}

func (h *handler) getOrder(c *gin.Context) {
	user := h.store.User()
	if user == nil {
		writeError(c, h, "get order", checkout.ErrAuthRequired)
		return
	}
	order, ok := h.store.Order(c.Param("id"))
	if !ok || (!user.IsAdmin() && order.UserID != user.ID) {
		writeError(c, h, "get order", domain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, order)
}
