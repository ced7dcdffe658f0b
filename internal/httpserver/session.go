package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
	"storefront/internal/service/catalog"
)

type loginRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *handler) currentUser(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": h.store.User()})
}

// login signs in without a password; the role follows the email address.
func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	email := strings.TrimSpace(req.Email)
	if local, domainPart, ok := strings.Cut(email, "@"); !ok || local == "" || domainPart == "" {
		badRequest(c, "invalid email")
		return
	}
	user, err := h.store.Login(c.Request.Context(), email, domain.RoleForEmail(email))
	if err != nil {
		writeError(c, h, "login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *handler) logout(c *gin.Context) {
	if err := h.store.Logout(c.Request.Context()); err != nil {
		writeError(c, h, "logout", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) getWishlist(c *gin.Context) {
	ids := h.store.Wishlist()
	c.JSON(http.StatusOK, gin.H{
		"productIds": ids,
		"products":   catalog.ByIDs(h.store.Products(), ids),
	})
}

// toggleWishlist only requires the product to exist when adding, so ids of
// deleted products can still be removed.
func (h *handler) toggleWishlist(c *gin.Context) {
	id := c.Param("productId")
	if _, ok := h.store.Product(id); !ok && !h.store.InWishlist(id) {
		writeError(c, h, "toggle wishlist", domain.ErrNotFound)
		return
	}
	in, err := h.store.ToggleWishlist(c.Request.Context(), id)
	if err != nil {
		writeError(c, h, "toggle wishlist", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"productId": id, "inWishlist": in})
}
