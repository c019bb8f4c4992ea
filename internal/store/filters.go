package store

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lfms6164/digital-folder-api/internal/apperr"
	"github.com/lfms6164/digital-folder-api/internal/models"
)

// Known columns per entity, used to validate dynamic field lookups and sort
// keys. Kept in sync with the model structs.
var (
	userColumns    = set("id", "username", "role")
	groupColumns   = set("id", "name", "created_by")
	tagColumns     = set("id", "name", "icon", "color", "group_id", "created_by")
	projectColumns = set("id", "name", "repo_url", "introduction", "description", "images", "created_by")
	ticketColumns  = set("id", "name", "description", "image", "state", "created_by", "created_at", "updated_at")
)

func set(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// columnsOf returns the column set for a model pointer.
func columnsOf(model any) map[string]bool {
	switch model.(type) {
	case *models.User:
		return userColumns
	case *models.Group:
		return groupColumns
	case *models.Tag:
		return tagColumns
	case *models.Project:
		return projectColumns
	case *models.Ticket:
		return ticketColumns
	default:
		return nil
	}
}

// applyFilters adds the entity-specific filter predicates to the query.
// Groups support has_tags, projects support tag_ids (any of), tags support
// group_ids. Keys that do not apply to the entity are ignored.
func applyFilters(tx *gorm.DB, model any, filters map[string]any) (*gorm.DB, error) {
	if len(filters) == 0 {
		return tx, nil
	}

	switch model.(type) {
	case *models.Group:
		if raw, ok := filters["has_tags"]; ok {
			hasTags, ok := raw.(bool)
			if !ok {
				return nil, &apperr.ParseError{Message: "has_tags filter must be a boolean"}
			}
			sub := "EXISTS (SELECT 1 FROM tags WHERE tags.group_id = groups.id)"
			if !hasTags {
				sub = "NOT " + sub
			}
			tx = tx.Where(sub)
		}
	case *models.Project:
		if raw, ok := filters["tag_ids"]; ok {
			ids, err := uuidList(raw, "tag_ids")
			if err != nil {
				return nil, err
			}
			tx = tx.Where("id IN (SELECT project_id FROM project_tag_relations WHERE tag_id IN ?)", ids)
		}
	case *models.Tag:
		if raw, ok := filters["group_ids"]; ok {
			ids, err := uuidList(raw, "group_ids")
			if err != nil {
				return nil, err
			}
			tx = tx.Where("group_id IN ?", ids)
		}
	}

	return tx, nil
}

// uuidList coerces a decoded JSON array into uuids.
func uuidList(raw any, key string) ([]uuid.UUID, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, &apperr.ParseError{Message: fmt.Sprintf("%s filter must be an array", key)}
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &apperr.ParseError{Message: fmt.Sprintf("%s filter must contain ids", key)}
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, &apperr.ParseError{Message: fmt.Sprintf("invalid id %q in %s filter", s, key)}
		}
		ids = append(ids, id)
	}
	return ids, nil
}
