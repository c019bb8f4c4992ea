// Package service contains the entity services: per-entity façades composing
// the data access layer, the authorization checks and shape conversion.
package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lfms6164/digital-folder-api/internal/apperr"
	"github.com/lfms6164/digital-folder-api/internal/models"
	"github.com/lfms6164/digital-folder-api/internal/store"
)

// ownershipSource yields the name and creator of a row, for ownership checks.
// Each entity service implements it for its own table.
type ownershipSource interface {
	owner(id uuid.UUID) (name string, createdBy uuid.UUID, err error)
}

// ValidateOwnership checks that the actor owns every referenced row.
//
// Admins bypass the check for direct mutations but NOT for relation checks
// (isRelation true): when an entity being created or patched references
// related rows, even an admin must reference rows it owns. Fails fast on the
// first disallowed id.
func ValidateOwnership(actor *models.Actor, src ownershipSource, ids []uuid.UUID, isRelation bool) error {
	if !isRelation && actor.IsAdmin() {
		return nil
	}

	for _, id := range ids {
		name, createdBy, err := src.owner(id)
		if err != nil {
			return err
		}
		if createdBy != actor.ID {
			return &apperr.AuthorizationError{
				Message: fmt.Sprintf("user %q doesn't have ownership over %q", actor.Username, name),
			}
		}
	}
	return nil
}

// ValidateUnique fails with a ConflictError when a row of T with the given
// name already exists.
func ValidateUnique[T any](s *store.Store, name string) error {
	_, err := store.GetByField[T](s, name, "name")
	if err != nil {
		var notFound *apperr.NotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return &apperr.ConflictError{Message: fmt.Sprintf("%q already exists", name)}
}
