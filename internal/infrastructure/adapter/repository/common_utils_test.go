package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorClassifier_Classify(t *testing.T) {
	classifier := NewErrorClassifier()

	testCases := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"nil", nil, ""},
		{"gorm duplicate", gorm.ErrDuplicatedKey, DuplicateKeyError},
		{"postgres duplicate", errors.New("duplicate key value violates unique constraint"), DuplicateKeyError},
		{"deadlock", errors.New("ERROR: deadlock detected"), LockError},
		{"serialization", errors.New("could not serialize access due to concurrent update"), LockError},
		{"reset", errors.New("read: connection reset by peer"), TransientError},
		{"dial", errors.New("dial tcp 10.0.0.1:5432"), ConnectionError},
		{"foreign key", errors.New(`insert violates foreign key constraint "fk_orders_generation"`), ConstraintError},
		{"other", errors.New("syntax error at or near"), ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifier.Classify(tc.err))
		})
	}
}
