package persistence

import (
	"errors"

	"github.com/kitchencloud/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps GORM sentinel errors to domain errors. Other errors pass through unchanged.
// Duplicate and foreign-key detection needs gorm.Config.TranslateError.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.WrapDomainError(shared.CodeAlreadyExists, "Resource already exists", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.WrapDomainError(shared.CodeNotFound, "Referenced resource not found", err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return shared.WrapDomainError(shared.CodeInvalidInput, "Value violates a table constraint", err)
	default:
		return err
	}
}
