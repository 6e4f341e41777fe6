package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"gorm.io/gorm"
)

// IndexManager creates the PostgreSQL indexes the workflow queries depend on
type IndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *gorm.DB, logger coreport.Logger) *IndexManager {
	return &IndexManager{
		db:     db,
		logger: logger,
	}
}

var indexStatements = []struct {
	name string
	sql  string
}{
	{
		// one order per payment intent; webhook replays rely on it
		name: "idx_orders_payment_intent_unique",
		sql: `CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_payment_intent_unique
			ON orders (stripe_payment_intent_id)`,
	},
	{
		name: "idx_orders_generation_paid",
		sql: `CREATE INDEX IF NOT EXISTS idx_orders_generation_paid
			ON orders (generation_id)
			WHERE status = 'paid'`,
	},
	{
		name: "idx_generations_user_created",
		sql: `CREATE INDEX IF NOT EXISTS idx_generations_user_created
			ON generations (user_id, created_at DESC)`,
	},
}

// CreateIndexes creates the indexes if they don't exist
func (m *IndexManager) CreateIndexes(ctx context.Context) error {
	m.logger.Info("Creating database indexes", nil)

	for _, index := range indexStatements {
		if err := m.db.WithContext(ctx).Exec(index.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": index.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Database indexes created successfully", nil)
	return nil
}

// ApplyPerformanceTweaks applies non-critical PostgreSQL storage settings.
// Failures are logged and ignored.
func (m *IndexManager) ApplyPerformanceTweaks(ctx context.Context) {
	// generations rows are updated in place several times each
	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE generations SET (fillfactor = 90)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for generations table", map[string]any{
			"error": err.Error(),
		})
	}
}
