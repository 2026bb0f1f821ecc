package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"cafe-pos/catalog"
	"cafe-pos/handlers"
	"cafe-pos/middleware"
	"cafe-pos/models"
	"cafe-pos/routes"
	"cafe-pos/session"
	"cafe-pos/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, []models.MenuItem) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{}, &models.MenuItem{}, &models.Order{}, &models.OrderItem{},
	))

	category := models.Category{Name: "Cà phê", SortOrder: 1, IsActive: true}
	require.NoError(t, db.Create(&category).Error)
	items := []models.MenuItem{
		{Name: "Cà phê đen", Price: 45000, CategoryID: category.ID, IsAvailable: true, SortOrder: 1},
		{Name: "Cà phê sữa", Price: 55000, CategoryID: category.ID, IsAvailable: true, SortOrder: 2},
		{Name: "Món đã hết", Price: 10000, CategoryID: category.ID, IsAvailable: false, SortOrder: 3},
	}
	require.NoError(t, db.Create(&items).Error)

	st := store.New(db)
	sessions := session.NewManager(st, 0)

	r := gin.New()
	routes.SetupRoutes(r, routes.Deps{
		Catalog:  handlers.NewCatalogHandler(catalog.NewAccessor(st)),
		Cart:     handlers.NewCartHandler(st),
		Checkout: handlers.NewCheckoutHandler(),
		Orders:   handlers.NewOrderHandler(st),
		Sessions: sessions,
	})
	return r, items
}

// client keeps the session cookie across requests, like a browser.
type client struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func (c *client) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			c.cookie = ck
		}
	}
	var payload map[string]any
	if w.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &payload))
	}
	return w, payload
}

func TestCartFlowOverHTTP(t *testing.T) {
	router, items := newTestRouter(t)
	c := &client{t: t, router: router}

	// Empty cart to start.
	w, cart := c.do(http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, cart["total"])
	assert.Equal(t, false, cart["submitting"])

	// Add 2× Cà phê đen and 1× Cà phê sữa.
	w, cart = c.do(http.MethodPut, "/api/cart/items", gin.H{"menu_item_id": items[0].ID, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	w, cart = c.do(http.MethodPut, "/api/cart/items", gin.H{"menu_item_id": items[1].ID, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 145000.0, cart["subtotal"])
	assert.Equal(t, 145000.0, cart["total"])
	assert.Equal(t, "145.000₫", cart["total_formatted"])
	assert.Len(t, cart["items"], 2)

	index := cart["quantity_index"].(map[string]any)
	assert.Equal(t, 2.0, index[fmt.Sprint(items[0].ID)])

	// Quantity zero removes the line.
	w, cart = c.do(http.MethodPut, "/api/cart/items", gin.H{"menu_item_id": items[0].ID, "quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 55000.0, cart["total"])
	assert.Len(t, cart["items"], 1)

	// Checkout persists and resets.
	w, resp := c.do(http.MethodPost, "/api/cart/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, resp["order_number"], "ORD_")
	assert.Equal(t, "55.000₫", resp["total_formatted"])

	_, cart = c.do(http.MethodGet, "/api/cart", nil)
	assert.Equal(t, 0.0, cart["total"])
	assert.Empty(t, cart["items"])

	// Success toast waiting to be drained.
	_, toasts := c.do(http.MethodGet, "/api/cart/notifications", nil)
	require.Equal(t, 1.0, toasts["count"])
}

func TestCheckoutEmptyCartOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)
	c := &client{t: t, router: router}

	w, _ := c.do(http.MethodPost, "/api/cart/checkout", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// No order was created.
	_, resp := c.do(http.MethodGet, "/api/orders", nil)
	assert.Equal(t, 0.0, resp["count"])
}

func TestUnavailableItemRejected(t *testing.T) {
	router, items := newTestRouter(t)
	c := &client{t: t, router: router}

	w, resp := c.do(http.MethodPut, "/api/cart/items", gin.H{"menu_item_id": items[2].ID, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp["error"], "not available")
}

func TestMenuFilterSortSearchOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)
	c := &client{t: t, router: router}

	w, resp := c.do(http.MethodGet, "/api/menu?sort=price-desc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	menu := resp["items"].([]any)
	require.Len(t, menu, 2, "unavailable items excluded")
	assert.Equal(t, "Cà phê sữa", menu[0].(map[string]any)["name"])

	w, resp = c.do(http.MethodGet, "/api/menu?search=s%E1%BB%AFa", nil)
	require.Equal(t, http.StatusOK, w.Code)
	menu = resp["items"].([]any)
	require.Len(t, menu, 1)
	assert.Equal(t, "Cà phê sữa", menu[0].(map[string]any)["name"])
}
