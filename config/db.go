package config

import (
	"fmt"

	"cafe-pos/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the SQLite database, migrates the schema and seeds the
// café catalog on first run.
func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	err = db.AutoMigrate(
		&models.Category{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	if err := seedCatalog(db); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	return db, nil
}

// seedCatalog inserts the starter menu when the catalog is empty.
func seedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Cà phê", Description: "Cà phê phin truyền thống và pha máy", SortOrder: 1, IsActive: true},
		{Name: "Trà", Description: "Trà trái cây và trà truyền thống", SortOrder: 2, IsActive: true},
		{Name: "Nước ép", Description: "Nước ép trái cây tươi", SortOrder: 3, IsActive: true},
		{Name: "Bánh ngọt", Description: "Bánh tráng miệng", SortOrder: 4, IsActive: true},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	items := []models.MenuItem{
		{Name: "Cà phê đen", Description: "Cà phê phin đậm đà", Price: 45000, CategoryID: categories[0].ID, IsAvailable: true, SortOrder: 1},
		{Name: "Cà phê sữa", Description: "Cà phê phin với sữa đặc", Price: 55000, CategoryID: categories[0].ID, IsAvailable: true, SortOrder: 2},
		{Name: "Bạc xỉu", Description: "Nhiều sữa, ít cà phê", Price: 59000, CategoryID: categories[0].ID, IsAvailable: true, SortOrder: 3},
		{Name: "Trà đào cam sả", Description: "Trà đào với cam tươi và sả", Price: 65000, CategoryID: categories[1].ID, IsAvailable: true, SortOrder: 1},
		{Name: "Trà sen vàng", Description: "Trà sen với hạt sen tươi", Price: 55000, CategoryID: categories[1].ID, IsAvailable: true, SortOrder: 2},
		{Name: "Nước ép cam", Description: "Cam vắt nguyên chất", Price: 69000, CategoryID: categories[2].ID, IsAvailable: true, SortOrder: 1},
		{Name: "Tiramisu", Description: "Bánh tiramisu vị cà phê", Price: 75000, CategoryID: categories[3].ID, IsAvailable: true, SortOrder: 1},
		{Name: "Croissant bơ", Description: "Bánh sừng bò nướng bơ", Price: 49000, CategoryID: categories[3].ID, IsAvailable: true, SortOrder: 2},
	}
	return db.Create(&items).Error
}
