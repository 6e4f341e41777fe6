package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	domainErr "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/repository"
)

// ErrorMapper maps errors raised while managing a transaction to domain errors.
// Errors from queries inside the transaction are mapped by the repositories.
type ErrorMapper struct {
	classifier *repository.ErrorClassifier
}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{classifier: repository.NewErrorClassifier()}
}

// MapError wraps err with the domain error matching its class
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", domainErr.ErrDatabaseConnection, operation, err)
	}

	switch m.classifier.Classify(err) {
	case repository.ConnectionError, repository.TransientError, repository.LockError:
		// retryable
		return fmt.Errorf("%w: %s: %v", domainErr.ErrDatabaseConnection, operation, err)
	case repository.ConstraintError, repository.DuplicateKeyError:
		return fmt.Errorf("%w: %s: %v", domainErr.ErrDataIntegrity, operation, err)
	}
	if errors.Is(err, sql.ErrConnDone) || strings.Contains(err.Error(), "database is closed") {
		return fmt.Errorf("%w: %s: %v", domainErr.ErrDatabaseConnection, operation, err)
	}
	return fmt.Errorf("%w: %s: %v", domainErr.ErrInternalServer, operation, err)
}
