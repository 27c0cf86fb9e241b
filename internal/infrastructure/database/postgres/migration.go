// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"errors"
	"fmt"
	"log"

	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/domain/cart"
	"github.com/pitstop-performance/backend/internal/domain/catalog"
	"github.com/pitstop-performance/backend/internal/domain/order"
	"github.com/pitstop-performance/backend/internal/domain/support"
	"github.com/pitstop-performance/backend/internal/domain/upload"
	"github.com/pitstop-performance/backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// User domain
		&user.User{},
		&user.Address{},

		// Catalog domain
		&catalog.PartCategory{},
		&catalog.BrandCategory{},
		&catalog.ModelCategory{},
		&catalog.Product{},

		// Cart domain
		&cart.Cart{},
		&cart.CartItem{},

		// Order domain
		&order.Order{},
		&order.OrderItem{},

		// Support domain
		&support.Ticket{},
		&support.TicketReply{},

		// Upload domain
		&upload.UploadedFile{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_username_active ON users(username, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_part_active ON products(part_category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_brand_active ON products(brand_category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Model category indexes
		"CREATE INDEX IF NOT EXISTS idx_model_categories_brand ON model_categories(brand_category_id)",

		// Cart indexes
		"CREATE INDEX IF NOT EXISTS idx_cart_items_cart ON cart_items(cart_id)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",

		// Support indexes
		"CREATE INDEX IF NOT EXISTS idx_support_tickets_user ON support_tickets(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_support_ticket_replies_ticket ON support_ticket_replies(ticket_id, created_at)",

		// Address indexes
		"CREATE INDEX IF NOT EXISTS idx_addresses_user ON addresses(user_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedDevData inserts a development admin account and starter
// categories when they are missing
func (m *Migration) SeedDevData(cfg *config.Config) error {
	if !cfg.IsDevelopment() {
		return nil
	}

	var admin user.User
	err := m.db.Where("username = ?", "admin").First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), cfg.Security.BcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin = user.User{
			Username:   "admin",
			Email:      "admin@pitstop-performance.com",
			Password:   string(hash),
			IsActive:   true,
			IsAdmin:    true,
			IsVerified: true,
		}
		if err := m.db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		log.Println("✅ Seeded development admin user")
	} else if err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}

	var count int64
	if err := m.db.Model(&catalog.PartCategory{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count part categories: %w", err)
	}
	if count == 0 {
		categories := []catalog.PartCategory{
			{Name: "Brakes"},
			{Name: "Suspension"},
			{Name: "Exhaust"},
			{Name: "Intake"},
			{Name: "Wheels"},
		}
		if err := m.db.Create(&categories).Error; err != nil {
			return fmt.Errorf("failed to seed part categories: %w", err)
		}
		log.Println("✅ Seeded starter part categories")
	}

	return nil
}
