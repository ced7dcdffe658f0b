package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	"storefront/internal/service/catalog"
)

const defaultFeaturedLimit = 3

func (h *handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": domain.Categories()})
}

// listProducts serves the shop page: ?category=&minPrice=&maxPrice=&sort=.
func (h *handler) listProducts(c *gin.Context) {
	filter := catalog.Filter{Category: domain.Category(c.Query("category"))}
	if filter.Category != "" && filter.Category != catalog.All && !filter.Category.Valid() {
		badRequest(c, "unknown category")
		return
	}
	var ok bool
	if filter.MinPrice, ok = priceParam(c, "minPrice"); !ok {
		return
	}
	if filter.MaxPrice, ok = priceParam(c, "maxPrice"); !ok {
		return
	}
	key, ok := catalog.ParseSortKey(c.Query("sort"))
	if !ok {
		badRequest(c, "unknown sort")
		return
	}

	products := filter.Apply(h.store.Products())
	catalog.Sort(products, key)
	c.JSON(http.StatusOK, gin.H{"count": len(products), "results": products})
}

func priceParam(c *gin.Context, name string) (*decimal.Decimal, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := decimal.NewFromString(raw)
	if err != nil || v.IsNegative() {
		badRequest(c, "invalid "+name)
		return nil, false
	}
	return &v, true
}

func (h *handler) featuredProducts(c *gin.Context) {
	limit := defaultFeaturedLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "invalid limit")
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, gin.H{"results": catalog.Featured(h.store.Products(), limit)})
}

func (h *handler) getProduct(c *gin.Context) {
	p, ok := h.store.Product(c.Param("id"))
	if !ok {
		writeError(c, h, "get product", domain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}
