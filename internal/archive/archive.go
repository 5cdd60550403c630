// Package archive persists confirmed orders. Live session state never
// touches the database; only the final order snapshot is written here when
// a table confirms.
package archive

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect (lib/pq)
	_ "github.com/jinzhu/gorm/dialects/sqlite"   // SQLite dialect (go-sqlite3)

	"parolaccia/internal/models"
)

// Order is one confirmed order row. Items holds the line items as JSON so
// the archive schema does not have to track menu changes.
type Order struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	SessionID string    `json:"sessionId"`
	TableID   string    `json:"mesaId"`
	PartySize int       `json:"comensales"`
	Items     string    `gorm:"type:text" json:"items"`
	Total     float64   `json:"total"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store wraps the archive database connection
type Store struct {
	db *gorm.DB
}

// Open connects to the archive database and migrates the schema. Dialect is
// "sqlite3" or "postgres"; the DSN is a file path or connection string
// respectively.
func Open(dialect, dsn string) (*Store, error) {
	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}
	if err := db.AutoMigrate(&Order{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate archive schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save writes a confirmed order
func (s *Store) Save(sessionID, tableID string, partySize int, items []models.LineItem, total float64, currency string) (*Order, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %w", err)
	}
	order := &Order{
		SessionID: sessionID,
		TableID:   tableID,
		PartySize: partySize,
		Items:     string(payload),
		Total:     total,
		Currency:  currency,
	}
	if err := s.db.Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	return order, nil
}

// Recent returns the newest confirmed orders, most recent first
func (s *Store) Recent(limit int) ([]Order, error) {
	var orders []Order
	if err := s.db.Order("created_at desc").Limit(limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
