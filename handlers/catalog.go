package handlers

import (
	"net/http"
	"strconv"

	"cafe-pos/catalog"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the menu browsing endpoints.
type CatalogHandler struct {
	accessor *catalog.Accessor
}

func NewCatalogHandler(accessor *catalog.Accessor) *CatalogHandler {
	return &CatalogHandler{accessor: accessor}
}

// GetCatalog returns categories and menu items together. Either fetch
// failing is a blocking error: no partial catalog is ever shown.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	cat, err := h.accessor.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Không thể tải thực đơn, vui lòng thử lại"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"categories": cat.Categories,
		"items":      cat.Items,
		"count":      len(cat.Items),
	})
}

// GetMenu returns the filtered, sorted, searched menu view.
// Query params: category (id, 0 or absent = all), sort (catalog sort
// option), search (remote substring search).
func (h *CatalogHandler) GetMenu(c *gin.Context) {
	ctx := c.Request.Context()
	sortOption := catalog.SortOption(c.DefaultQuery("sort", string(catalog.SortDefault)))

	if query := c.Query("search"); query != "" {
		items, latest, err := h.accessor.Search(ctx, query)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Tìm kiếm thất bại, vui lòng thử lại"})
			return
		}
		if !latest {
			// Superseded by a newer search; the client already has (or
			// will get) fresher results.
			c.JSON(http.StatusOK, gin.H{"items": []any{}, "count": 0, "stale": true})
			return
		}
		items = catalog.SortItems(items, sortOption)
		c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
		return
	}

	cat, err := h.accessor.Load(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Không thể tải thực đơn, vui lòng thử lại"})
		return
	}

	categoryID := catalog.AllCategories
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		categoryID = uint(id)
	}

	items := catalog.FilterByCategory(cat.Items, categoryID)
	items = catalog.SortItems(items, sortOption)
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}
