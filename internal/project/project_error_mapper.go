package project

import (
	"errors"

	projecterrors "go-hrm/internal/project/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return projecterrors.ErrProjectNotFound
	}
	if errors.Is(err, ErrStaleVersion) {
		return projecterrors.ErrVersionConflict
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == "uq_project_code" {
				return projecterrors.ErrProjectCodeAlreadyExists
			}
		case "22P02":
			return projecterrors.ErrInvalidProjectID
		}
	}

	return err
}
