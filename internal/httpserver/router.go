package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
	"storefront/internal/service/advice"
	"storefront/internal/service/checkout"
)

// Store is the state manager contract the HTTP surface drives.
type Store interface {
	checkout.Store
	Product(id string) (domain.Product, bool)
	Wishlist() []string
	InWishlist(productID string) bool
	Orders() []domain.Order
	Order(id string) (domain.Order, bool)

	Login(ctx context.Context, email string, role domain.Role) (domain.User, error)
	Logout(ctx context.Context) error

	AddToCart(ctx context.Context, item domain.CartItem) error
	RemoveFromCart(ctx context.Context, productID string) error
	RemoveCartLine(ctx context.Context, productID, size string) error
	UpdateCartQuantity(ctx context.Context, productID string, qty int) error
	UpdateCartLineQuantity(ctx context.Context, productID, size string, qty int) error
	ClearCart(ctx context.Context) error
	ToggleWishlist(ctx context.Context, productID string) (bool, error)

	UpdateOrder(ctx context.Context, orderID string, status domain.OrderStatus) error
	AddProduct(ctx context.Context, p domain.Product) error
	PatchProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ReplaceCatalog(ctx context.Context, products []domain.Product) error
}

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps groups everything the router needs.
type Deps struct {
	Store   Store
	Advice  *advice.Client
	Storage Pinger
	// CORSOrigins lists allowed browser origins; "*" allows any. Empty disables CORS.
	CORSOrigins []string
}

type handler struct {
	store     Store
	advice    *advice.Client
	logger    *log.Logger
	assistant *assistantRegistry
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, *handler, error) {
	if deps.Store == nil {
		return nil, nil, errors.New("store is required")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	adv := deps.Advice
	if adv == nil {
		adv = advice.New(nil, logger)
	}
	h := &handler{
		store:     deps.Store,
		advice:    adv,
		logger:    logger,
		assistant: newAssistantRegistry(adv),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if mw := corsMiddleware(deps.CORSOrigins); mw != nil {
		router.Use(mw)
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Storage))

	router.GET("/categories", h.listCategories)
	router.GET("/products", h.listProducts)
	router.GET("/products/featured", h.featuredProducts)
	router.GET("/products/:id", h.getProduct)

	router.GET("/session", h.currentUser)
	router.POST("/session", h.login)
	router.DELETE("/session", h.logout)

	router.GET("/cart", h.getCart)
	router.DELETE("/cart", h.clearCart)
	router.POST("/cart/items", h.addCartItem)
	router.PATCH("/cart/items/:productId", h.updateCartItem)
	router.DELETE("/cart/items/:productId", h.removeCartItem)

	router.GET("/wishlist", h.getWishlist)
	router.POST("/wishlist/:productId", h.toggleWishlist)

	router.POST("/checkout", h.placeOrder)
	router.GET("/orders", h.listOrders)
	router.GET("/orders/:id", h.getOrder)

	router.POST("/assistant/sessions", h.openAssistant)
	router.GET("/assistant/sessions/:id", h.getAssistant)
	router.POST("/assistant/sessions/:id/messages", h.sendAssistantMessage)
	router.DELETE("/assistant/sessions/:id", h.closeAssistant)

	admin := router.Group("/admin", h.requireAdmin)
	admin.GET("/stats", h.adminStats)
	admin.GET("/orders", h.adminListOrders)
	admin.PATCH("/orders/:id", h.adminUpdateOrder)
	admin.POST("/products", h.adminCreateProduct)
	admin.PATCH("/products/:id", h.adminPatchProduct)
	admin.DELETE("/products/:id", h.adminDeleteProduct)
	admin.POST("/products/describe", h.adminDescribeProduct)
	admin.POST("/catalog/reset", h.adminResetCatalog)

	return router, h, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
