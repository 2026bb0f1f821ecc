// Package store implements the storage boundary over GORM/SQLite. The
// rest of the system treats it as an opaque service returning category,
// menu and order records.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cafe-pos/models"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ActiveCategories returns active categories in display order.
func (s *Store) ActiveCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order asc").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return categories, nil
}

// AvailableMenuItems returns orderable menu items in display order.
func (s *Store) AvailableMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("is_available = ?", true).
		Order("sort_order asc").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("fetch menu items: %w", err)
	}
	return items, nil
}

// SearchMenuItems matches available items whose name or description
// contains the query, case-insensitively.
func (s *Store) SearchMenuItems(ctx context.Context, query string) ([]models.MenuItem, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var items []models.MenuItem
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("is_available = ?", true).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("sort_order asc").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("search menu items: %w", err)
	}
	return items, nil
}

// MenuItemByID fetches one menu item.
func (s *Store) MenuItemByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.WithContext(ctx).Preload("Category").First(&item, id).Error
	if err != nil {
		return nil, fmt.Errorf("fetch menu item %d: %w", id, err)
	}
	return &item, nil
}

// CreateOrder assigns the next order number and persists the order with
// its items in one transaction. On success the order's OrderNumber, ID
// and timestamps are filled in.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := nextOrderNumber(tx)
		if err != nil {
			return err
		}
		order.OrderNumber = number
		return tx.Create(order).Error
	})
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// nextOrderNumber produces ORD_YYYYMMDD_NNN from a per-day sequence.
func nextOrderNumber(tx *gorm.DB) (string, error) {
	today := time.Now().Format("20060102")
	var count int64
	err := tx.Model(&models.Order{}).
		Where("order_number LIKE ?", "ORD_"+today+"_%").
		Count(&count).Error
	if err != nil {
		return "", fmt.Errorf("order number sequence: %w", err)
	}
	return fmt.Sprintf("ORD_%s_%03d", today, count+1), nil
}

// ListOrders returns persisted orders, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.MenuItem").
		Order("created_at desc, id desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// OrderByID fetches one order with its items.
func (s *Store) OrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items.MenuItem").First(&order, id).Error
	if err != nil {
		return nil, fmt.Errorf("fetch order %d: %w", id, err)
	}
	return &order, nil
}

// UpdateOrderStatus records a status change. Transition validity is
// checked by the caller against the order lifecycle.
func (s *Store) UpdateOrderStatus(ctx context.Context, order *models.Order, to models.OrderStatus) error {
	err := s.db.WithContext(ctx).Model(order).Update("status", to).Error
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}
