// Package store is the generic data access layer. It executes structured
// query specifications against any entity table uniformly: ownership scoping,
// filtering, search, sorting, pagination, CRUD and many-to-many relation
// management.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lfms6164/digital-folder-api/internal/apperr"
	"github.com/lfms6164/digital-folder-api/internal/models"
	"github.com/lfms6164/digital-folder-api/internal/query"
)

// Store wraps the database handle shared by all entity services.
type Store struct {
	db *gorm.DB
}

// New creates a Store.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for migrations and seeding.
func (s *Store) DB() *gorm.DB { return s.db }

// List executes a query specification against the entity table of T.
// Applied in order: ownership scope, created_by filter, entity-specific
// filter predicates, case-insensitive name search, total count (before
// pagination), sort (default: name ascending), offset/limit pagination.
func List[T any](s *Store, actor *models.Actor, params *query.Params, preloads ...string) ([]T, int64, error) {
	var model T
	tx := s.db.Model(&model)

	if actor != nil && actor.FilterID != nil {
		tx = tx.Where("created_by = ?", *actor.FilterID)
	}

	if params != nil {
		if ids := params.CreatedBy(); len(ids) > 0 {
			tx = tx.Where("created_by IN ?", ids)
		}

		var err error
		tx, err = applyFilters(tx, any(&model), params.Filters)
		if err != nil {
			return nil, 0, err
		}

		if params.Search != "" {
			tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
		}
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count %s rows: %w", entityName(&model), err)
	}

	cols := columnsOf(any(&model))
	sorted := false
	if params != nil {
		for _, sp := range params.SortBy {
			if !cols[sp.Key] {
				// Unknown sort keys are skipped, matching filter leniency.
				continue
			}
			dir := "ASC"
			if sp.Order == "desc" {
				dir = "DESC"
			}
			tx = tx.Order(sp.Key + " " + dir)
			sorted = true
		}
	}
	if !sorted && cols["name"] {
		tx = tx.Order("name ASC")
	}

	if params != nil && params.ItemsPerPage != query.AllItems {
		offset := (params.Page - 1) * params.ItemsPerPage
		tx = tx.Offset(offset).Limit(params.ItemsPerPage)
	}

	for _, preload := range preloads {
		tx = tx.Preload(preload)
	}

	var rows []T
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list %s rows: %w", entityName(&model), err)
	}
	return rows, count, nil
}

// GetByID fetches a single row by primary key.
func GetByID[T any](s *Store, id uuid.UUID, preloads ...string) (*T, error) {
	var row T
	tx := s.db
	for _, preload := range preloads {
		tx = tx.Preload(preload)
	}
	if err := tx.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Message: fmt.Sprintf("%s %s not found", entityName(&row), id)}
		}
		return nil, fmt.Errorf("get %s by id: %w", entityName(&row), err)
	}
	return &row, nil
}

// GetByField fetches a single row by a dynamic column. The column must be a
// known column of the entity.
func GetByField[T any](s *Store, value any, column string) (*T, error) {
	var row T
	if !columnsOf(any(&row))[column] {
		return nil, &apperr.ConfigError{Message: fmt.Sprintf("%s has no column %q", entityName(&row), column)}
	}
	if err := s.db.Where(column+" = ?", value).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Message: fmt.Sprintf("%s with %s %v not found", entityName(&row), column, value)}
		}
		return nil, fmt.Errorf("get %s by %s: %w", entityName(&row), column, err)
	}
	return &row, nil
}

// Create inserts a row.
func Create[T any](s *Store, row *T) error {
	if err := s.db.Create(row).Error; err != nil {
		return fmt.Errorf("create %s: %w", entityName(row), err)
	}
	return nil
}

// Update applies a partial column update to the row with the given id.
// A missing id is the caller's responsibility; the update is then a no-op.
func Update[T any](s *Store, id uuid.UUID, updates map[string]any) error {
	var model T
	if err := s.db.Model(&model).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("update %s: %w", entityName(&model), err)
	}
	return nil
}

// Delete removes the row with the given id.
func Delete[T any](s *Store, id uuid.UUID) error {
	var model T
	if err := s.db.Where("id = ?", id).Delete(&model).Error; err != nil {
		return fmt.Errorf("delete %s: %w", entityName(&model), err)
	}
	return nil
}

// ReplaceRelations sets the named many-to-many association of the entity to
// exactly the given set of related rows. This is a full replace, not an
// incremental diff.
func ReplaceRelations[T any, R any](s *Store, id uuid.UUID, relatedIDs []uuid.UUID, relation string) error {
	entity, err := GetByID[T](s, id)
	if err != nil {
		return err
	}

	var related []R
	if len(relatedIDs) > 0 {
		if err := s.db.Find(&related, "id IN ?", relatedIDs).Error; err != nil {
			return fmt.Errorf("fetch related rows: %w", err)
		}
	}

	if err := s.db.Model(entity).Association(relation).Replace(&related); err != nil {
		return fmt.Errorf("replace %s relations: %w", entityName(entity), err)
	}
	return nil
}

// ClearRelations removes every row from the named association of the entity.
func ClearRelations[T any](s *Store, id uuid.UUID, relation string) error {
	entity, err := GetByID[T](s, id)
	if err != nil {
		return err
	}
	if err := s.db.Model(entity).Association(relation).Clear(); err != nil {
		return fmt.Errorf("clear %s relations: %w", entityName(entity), err)
	}
	return nil
}

// entityName returns a lowercase entity name for error messages.
func entityName(model any) string {
	name := fmt.Sprintf("%T", model)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}
