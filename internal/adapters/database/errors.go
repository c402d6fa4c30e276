package database

import (
	"errors"
	"fmt"

	"nodebird/internal/core/errs"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL server error numbers for duplicate key and foreign key failures.
const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// translate maps store errors onto the errs failure kinds. The original
// error stays in the chain so callers can still match gorm sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrConstraint) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", errs.ErrNotFound, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %w", errs.ErrConstraint, err)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry:
			return fmt.Errorf("%w: %w: %w", errs.ErrConstraint, gorm.ErrDuplicatedKey, err)
		case mysqlRowIsReferenced, mysqlNoReferencedRow:
			return fmt.Errorf("%w: %w: %w", errs.ErrConstraint, gorm.ErrForeignKeyViolated, err)
		}
	}
	return err
}

func isDuplicate(err error) bool {
	return errors.Is(translate(err), gorm.ErrDuplicatedKey)
}
