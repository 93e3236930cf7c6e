package database

import (
	"database/sql"
	"fmt"
	"log"

	"ecorecycle-server/models"

	_ "github.com/lib/pq"
)

type DB struct {
	*sql.DB
}

var Database *DB

// Connect opens a database connection. Production uses the "postgres"
// driver; tests pass "sqlite" with an in-memory DSN against the same schema.
func Connect(driver, dsn string) (*DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	Database = &DB{db}
	return Database, nil
}

// InitializeTables creates all tables if they don't exist
func (db *DB) InitializeTables() error {
	// Order respects foreign key dependencies
	tables := []interface{}{
		models.UserProfile{},
		models.PointsTransaction{},
		models.WasteSubmission{},
		models.PickupRequest{},
		models.Fertilizer{},
		models.FertilizerPurchase{},
		models.CartItem{},
		models.Complaint{},
	}

	for _, table := range tables {
		if tableModel, ok := table.(interface {
			TableName() string
			CreateTableSQL() string
		}); ok {
			if _, err := db.Exec(tableModel.CreateTableSQL()); err != nil {
				return fmt.Errorf("failed to create table %s: %w", tableModel.TableName(), err)
			}
		}
	}

	if err := db.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("All tables created successfully")
	return nil
}

// runMigrations handles schema updates for existing tables
func (db *DB) runMigrations() error {
	migrations := []string{
		`CREATE INDEX IF NOT EXISTS idx_points_transactions_user ON points_transactions (user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items (user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_fertilizer_purchases_user ON fertilizer_purchases (user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_waste_submissions_user ON waste_submissions (user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_pickup_requests_user ON pickup_requests (user_id);`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
