package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"storefront/internal/domain"
	"storefront/internal/seed"
	"storefront/internal/service/checkout"
	"storefront/internal/service/pricing"
)

type updateOrderRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

type describeRequest struct {
	Name string `json:"name" binding:"required"`
}

// requireAdmin lets only an administrator session through.
func (h *handler) requireAdmin(c *gin.Context) {
	user := h.store.User()
	if user == nil {
		writeError(c, h, "admin", checkout.ErrAuthRequired)
		c.Abort()
		return
	}
	if !user.IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}
	c.Next()
}

func (h *handler) adminStats(c *gin.Context) {
	c.JSON(http.StatusOK, pricing.ComputeStats(h.store.Orders(), h.store.Products()))
}

func (h *handler) adminListOrders(c *gin.Context) {
	orders := h.store.Orders()
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "results": orders})
}

func (h *handler) adminUpdateOrder(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if !req.Status.Valid() {
		badRequest(c, "unknown order status")
		return
	}
	id := c.Param("id")
	if _, ok := h.store.Order(id); !ok {
		writeError(c, h, "update order", domain.ErrNotFound)
		return
	}
	if err := h.store.UpdateOrder(c.Request.Context(), id, req.Status); err != nil {
		writeError(c, h, "update order", err)
		return
	}
	order, _ := h.store.Order(id)
	c.JSON(http.StatusOK, order)
}

// adminCreateProduct fills the body over the product form defaults and assigns
// a fresh id.
func (h *handler) adminCreateProduct(c *gin.Context) {
	var patch domain.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	draft := domain.NewProductDraft()
	draft.ID = uuid.NewString()
	p, err := patch.Apply(draft)
	if err != nil {
		writeError(c, h, "create product", err)
		return
	}
	if err := h.store.AddProduct(c.Request.Context(), p); err != nil {
		writeError(c, h, "create product", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handler) adminPatchProduct(c *gin.Context) {
	var patch domain.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	p, err := h.store.PatchProduct(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, h, "patch product", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) adminDeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.store.Product(id); !ok {
		writeError(c, h, "delete product", domain.ErrNotFound)
		return
	}
	if err := h.store.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, h, "delete product", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) adminDescribeProduct(c *gin.Context) {
	var req describeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		badRequest(c, "product name required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": h.advice.ProductDescription(c.Request.Context(), req.Name)})
}

func (h *handler) adminResetCatalog(c *gin.Context) {
	if err := seed.Apply(c.Request.Context(), h.store); err != nil {
		writeError(c, h, "reset catalog", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(h.store.Products())})
}
