package employee

import (
	"errors"
	"strings"

	employeeerrors "go-hrm/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var uniqueViolations = map[string]error{
	"uq_employee_number": employeeerrors.ErrEmployeeNumberAlreadyExists,
	"uq_employee_email":  employeeerrors.ErrEmployeeAlreadyExists,
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if mapped, ok := uniqueViolations[pgErr.ConstraintName]; ok {
				return mapped
			}
		case "22P02":
			return employeeerrors.ErrInvalidEmployeeID
		case "22001":
			return employeeerrors.ErrValueTooLong
		}
		return err
	}

	// Some drivers only surface the constraint in the message text.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") {
		for constraint, mapped := range uniqueViolations {
			if strings.Contains(msg, constraint) {
				return mapped
			}
		}
	}
	return err
}
