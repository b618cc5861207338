package lettertemplate

import (
	"errors"

	lettertemplateerrors "go-hrm/internal/lettertemplate/errors"

	"go.mongodb.org/mongo-driver/mongo"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return lettertemplateerrors.ErrTemplateNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return lettertemplateerrors.ErrTemplateLocked
	}
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return lettertemplateerrors.ErrStoreUnavailable
	}

	return err
}
