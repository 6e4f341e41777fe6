package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"gorm.io/gorm"
)

// GenerationConstraints adds CHECK constraints that keep generation and order
// rows inside their lifecycle
type GenerationConstraints struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewGenerationConstraints creates a new migration instance
func NewGenerationConstraints(db *gorm.DB, logger coreport.Logger) *GenerationConstraints {
	return &GenerationConstraints{
		db:     db,
		logger: logger,
	}
}

var checkConstraints = []struct {
	table string
	name  string
	check string
}{
	{"generations", "chk_generations_status", `status IN ('PENDING_PAYMENT', 'PROCESSING', 'COMPLETED', 'FAILED')`},
	{"generations", "chk_generations_image_url", `(status = 'COMPLETED') = (image_url IS NOT NULL)`},
	{"generations", "chk_generations_retry_count", `retry_count >= 0`},
	{"orders", "chk_orders_status", `status IN ('pending', 'paid')`},
	{"orders", "chk_orders_amount_paid", `amount_paid >= 0`},
}

// Run executes the migration
func (m *GenerationConstraints) Run(ctx context.Context) error {
	m.logger.Info("Adding generation and order check constraints", nil)

	existing, err := m.existingConstraints(ctx)
	if err != nil {
		return err
	}

	for _, c := range checkConstraints {
		if existing[c.name] {
			continue
		}
		stmt := "ALTER TABLE " + c.table + " ADD CONSTRAINT " + c.name + " CHECK (" + c.check + ")"
		if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			m.logger.Error("Failed to add check constraint", map[string]any{
				"constraint": c.name,
				"error":      err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Check constraints in place", nil)
	return nil
}

// existingConstraints returns the names of the check constraints already defined
func (m *GenerationConstraints) existingConstraints(ctx context.Context) (map[string]bool, error) {
	var rows []struct {
		ConstraintName string `gorm:"column:constraint_name"`
	}

	err := m.db.WithContext(ctx).Raw(`
		SELECT constraint_name
		FROM information_schema.table_constraints
		WHERE constraint_type = 'CHECK' AND table_name IN ('generations', 'orders')
	`).Scan(&rows).Error
	if err != nil {
		m.logger.Error("Failed to read existing constraints", map[string]any{"error": err.Error()})
		return nil, err
	}

	existing := make(map[string]bool, len(rows))
	for _, row := range rows {
		existing[row.ConstraintName] = true
	}
	return existing, nil
}
