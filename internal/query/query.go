// Package query turns raw filter/search/sort/pagination request parameters
// into a structured specification executed by the store.
package query

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/lfms6164/digital-folder-api/internal/apperr"
	"github.com/lfms6164/digital-folder-api/internal/models"
)

const (
	// DefaultItemsPerPage is used when the caller does not specify a page size.
	DefaultItemsPerPage = 10
	// AllItems disables pagination entirely.
	AllItems = -1
)

// SortParam is a single sort instruction.
type SortParam struct {
	Key   string `json:"key"`
	Order string `json:"order"` // "asc" or "desc"
}

// Params is the structured query specification for list endpoints.
type Params struct {
	Filters      map[string]any
	Search       string
	SortBy       []SortParam
	ItemsPerPage int
	Page         int
}

// CreatedBy returns the resolved created_by filter ids, if any.
func (p *Params) CreatedBy() []uuid.UUID {
	ids, _ := p.Filters["created_by"].([]uuid.UUID)
	return ids
}

// UserLookup resolves a role name to the ids of users holding that role.
// Satisfied by the user service.
type UserLookup interface {
	IDsByRole(role models.UserRole) ([]uuid.UUID, error)
}

// Parse decodes the raw list-endpoint parameters.
//
// filters is a JSON object; a created_by entry holding a role name is
// resolved to the concrete user id(s) of that role via lookup, so callers can
// ask for "everything an admin created" without knowing ids. A USER-role
// filter additionally includes the VIEWER users' ids. sortBy is a JSON array
// of {key, order} pairs. itemsPerPage of -1 means all rows.
func Parse(lookup UserLookup, filters, search, sortBy string, itemsPerPage, page int) (*Params, error) {
	parsed := map[string]any{}
	if filters != "" {
		if err := json.Unmarshal([]byte(filters), &parsed); err != nil {
			return nil, &apperr.ParseError{Message: fmt.Sprintf("invalid filters: %v", err)}
		}
		if raw, ok := parsed["created_by"]; ok {
			ids, err := resolveCreatedBy(lookup, raw)
			if err != nil {
				return nil, err
			}
			parsed["created_by"] = ids
		}
	}

	var parsedSort []SortParam
	if sortBy != "" {
		if err := json.Unmarshal([]byte(sortBy), &parsedSort); err != nil {
			return nil, &apperr.ParseError{Message: fmt.Sprintf("invalid sort_by: %v", err)}
		}
		for i, s := range parsedSort {
			if s.Order != "desc" {
				parsedSort[i].Order = "asc"
			}
		}
	}

	if itemsPerPage == 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	if page < 1 {
		page = 1
	}

	return &Params{
		Filters:      parsed,
		Search:       search,
		SortBy:       parsedSort,
		ItemsPerPage: itemsPerPage,
		Page:         page,
	}, nil
}

// resolveCreatedBy turns a created_by filter value into user ids. A concrete
// user id passes through untouched; a role name is resolved via lookup.
func resolveCreatedBy(lookup UserLookup, raw any) ([]uuid.UUID, error) {
	value, ok := raw.(string)
	if !ok {
		return nil, &apperr.ParseError{Message: "created_by filter must be a string"}
	}

	if id, err := uuid.Parse(value); err == nil {
		return []uuid.UUID{id}, nil
	}

	role := models.UserRole(value)
	if !role.Valid() {
		return nil, &apperr.NotFoundError{Message: fmt.Sprintf("user role %q not found", value)}
	}

	roles := []models.UserRole{role}
	// Rows created by viewers are shown alongside user rows.
	if role == models.RoleUser {
		roles = append(roles, models.RoleViewer)
	}

	var ids []uuid.UUID
	for _, r := range roles {
		roleIDs, err := lookup.IDsByRole(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, roleIDs...)
	}
	return ids, nil
}
