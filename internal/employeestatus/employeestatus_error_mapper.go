package employeestatus

import (
	"errors"

	employeestatuserrors "go-hrm/internal/employeestatus/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeestatuserrors.ErrStatusNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "22P02":
			return employeestatuserrors.ErrInvalidEmployeeID
		case "23503":
			return employeestatuserrors.ErrEmployeeNotFound
		}
	}

	return err
}
