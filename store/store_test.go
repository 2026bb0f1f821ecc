package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"cafe-pos/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{}, &models.MenuItem{}, &models.Order{}, &models.OrderItem{},
	))
	return New(db)
}

func seedCatalog(t *testing.T, s *Store) (models.Category, []models.MenuItem) {
	t.Helper()
	categories := []models.Category{
		{Name: "Cà phê", SortOrder: 2, IsActive: true},
		{Name: "Trà", SortOrder: 1, IsActive: true},
		{Name: "Ngừng bán", SortOrder: 3, IsActive: false},
	}
	require.NoError(t, s.db.Create(&categories).Error)

	items := []models.MenuItem{
		{Name: "Cà phê đen", Description: "Cà phê phin đậm đà", Price: 45000, CategoryID: categories[0].ID, IsAvailable: true, SortOrder: 2},
		{Name: "Cà phê sữa", Description: "Cà phê phin với sữa đặc", Price: 55000, CategoryID: categories[0].ID, IsAvailable: true, SortOrder: 1},
		{Name: "Món đã hết", Price: 10000, CategoryID: categories[0].ID, IsAvailable: false, SortOrder: 3},
	}
	require.NoError(t, s.db.Create(&items).Error)
	return categories[0], items
}

func TestActiveCategoriesFiltersAndOrders(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)

	categories, err := s.ActiveCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2, "inactive categories excluded")
	assert.Equal(t, "Trà", categories[0].Name, "ordered by sort_order")
	assert.Equal(t, "Cà phê", categories[1].Name)
}

func TestAvailableMenuItems(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)

	items, err := s.AvailableMenuItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2, "unavailable items excluded")
	assert.Equal(t, "Cà phê sữa", items[0].Name, "ordered by sort_order")
	assert.Equal(t, "Cà phê", items[0].Category.Name, "category preloaded")
}

func TestSearchMenuItems(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	found, err := s.SearchMenuItems(ctx, "cà phê")
	require.NoError(t, err)
	assert.Len(t, found, 2, "matches name case-insensitively, skips unavailable")

	found, err = s.SearchMenuItems(ctx, "sữa đặc")
	require.NoError(t, err)
	require.Len(t, found, 1, "matches description")
	assert.Equal(t, "Cà phê sữa", found[0].Name)

	found, err = s.SearchMenuItems(ctx, "pizza")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestCreateOrderAssignsSequentialNumbers(t *testing.T) {
	s := newTestStore(t)
	_, items := seedCatalog(t, s)
	ctx := context.Background()
	today := time.Now().Format("20060102")

	first := &models.Order{
		OrderType:     models.OrderDineIn,
		Status:        models.StatusPending,
		Subtotal:      145000,
		TotalAmount:   145000,
		PaymentStatus: models.PaymentPaid,
		PaymentMethod: models.PaymentCash,
		Items: []models.OrderItem{
			{MenuItemID: items[0].ID, Quantity: 2, UnitPrice: 45000, TotalPrice: 90000},
			{MenuItemID: items[1].ID, Quantity: 1, UnitPrice: 55000, TotalPrice: 55000, SpecialInstructions: "ít đường"},
		},
	}
	require.NoError(t, s.CreateOrder(ctx, first))
	assert.Equal(t, "ORD_"+today+"_001", first.OrderNumber)
	assert.NotZero(t, first.ID)

	second := &models.Order{
		OrderType:     models.OrderTakeaway,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPaid,
		PaymentMethod: models.PaymentCash,
		Items: []models.OrderItem{
			{MenuItemID: items[0].ID, Quantity: 1, UnitPrice: 45000, TotalPrice: 45000},
		},
	}
	require.NoError(t, s.CreateOrder(ctx, second))
	assert.Equal(t, "ORD_"+today+"_002", second.OrderNumber)

	// Items persisted with the order.
	persisted, err := s.OrderByID(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, persisted.Items, 2)
	assert.Equal(t, "ít đường", persisted.Items[1].SpecialInstructions)
	assert.Equal(t, "Cà phê đen", persisted.Items[0].MenuItem.Name)
}

func TestListOrdersNewestFirst(t *testing.T) {
	s := newTestStore(t)
	_, items := seedCatalog(t, s)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		order := &models.Order{
			OrderType:     models.OrderDineIn,
			Status:        models.StatusPending,
			PaymentStatus: models.PaymentPaid,
			Items: []models.OrderItem{
				{MenuItemID: items[0].ID, Quantity: 1, UnitPrice: 45000, TotalPrice: 45000},
			},
		}
		require.NoError(t, s.CreateOrder(ctx, order))
	}

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "ORD_"+time.Now().Format("20060102")+"_003", orders[0].OrderNumber)
}

func TestUpdateOrderStatus(t *testing.T) {
	s := newTestStore(t)
	_, items := seedCatalog(t, s)
	ctx := context.Background()

	order := &models.Order{
		OrderType:     models.OrderDineIn,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPaid,
		Items: []models.OrderItem{
			{MenuItemID: items[0].ID, Quantity: 1, UnitPrice: 45000, TotalPrice: 45000},
		},
	}
	require.NoError(t, s.CreateOrder(ctx, order))

	require.NoError(t, s.UpdateOrderStatus(ctx, order, models.StatusPreparing))
	reloaded, err := s.OrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, reloaded.Status)
}
