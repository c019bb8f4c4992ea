package service

import (
	"github.com/google/uuid"

	"github.com/lfms6164/digital-folder-api/internal/apperr"
	"github.com/lfms6164/digital-folder-api/internal/models"
	"github.com/lfms6164/digital-folder-api/internal/query"
	"github.com/lfms6164/digital-folder-api/internal/store"
)

// GroupService manages tag groups.
type GroupService struct {
	store *store.Store
}

// NewGroupService creates a GroupService.
func NewGroupService(s *store.Store) *GroupService {
	return &GroupService{store: s}
}

// List returns groups visible to the actor, with their tags.
func (s *GroupService) List(actor *models.Actor, params *query.Params) (*Page[GroupOut], error) {
	groups, count, err := store.List[models.Group](s.store, actor, params, "Tags")
	if err != nil {
		return nil, err
	}

	items := make([]GroupOut, 0, len(groups))
	for _, group := range groups {
		items = append(items, groupOut(&group))
	}
	return &Page[GroupOut]{Items: items, Count: count}, nil
}

// Get returns a single group by id.
func (s *GroupService) Get(id uuid.UUID) (*GroupOut, error) {
	group, err := store.GetByID[models.Group](s.store, id, "Tags")
	if err != nil {
		return nil, err
	}
	out := groupOut(group)
	return &out, nil
}

// Create validates name uniqueness and inserts a group owned by the actor.
func (s *GroupService) Create(actor *models.Actor, req GroupCreate) (*GroupOut, error) {
	if err := ValidateUnique[models.Group](s.store, req.Name); err != nil {
		return nil, err
	}

	group := models.Group{Name: req.Name, CreatedBy: actor.ID}
	if err := store.Create(s.store, &group); err != nil {
		return nil, err
	}
	return s.Get(group.ID)
}

// Patch applies a partial update to a group owned by the actor.
func (s *GroupService) Patch(actor *models.Actor, id uuid.UUID, req GroupPatch) (*GroupOut, error) {
	if err := ValidateOwnership(actor, s, []uuid.UUID{id}, false); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		if err := ValidateUnique[models.Group](s.store, *req.Name); err != nil {
			return nil, err
		}
		updates["name"] = *req.Name
	}

	if len(updates) > 0 {
		if err := store.Update[models.Group](s.store, id, updates); err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

// Delete removes a group. Groups still holding tags cannot be deleted.
func (s *GroupService) Delete(actor *models.Actor, id uuid.UUID) error {
	if err := ValidateOwnership(actor, s, []uuid.UUID{id}, false); err != nil {
		return err
	}

	group, err := store.GetByID[models.Group](s.store, id, "Tags")
	if err != nil {
		return err
	}
	if len(group.Tags) > 0 {
		return &apperr.ConflictError{Message: "group " + group.Name + " has tags and can't be deleted"}
	}

	return store.Delete[models.Group](s.store, id)
}

func (s *GroupService) owner(id uuid.UUID) (string, uuid.UUID, error) {
	group, err := store.GetByID[models.Group](s.store, id)
	if err != nil {
		return "", uuid.Nil, err
	}
	return group.Name, group.CreatedBy, nil
}

func groupOut(group *models.Group) GroupOut {
	tags := make([]TagOut, 0, len(group.Tags))
	for _, tag := range group.Tags {
		tags = append(tags, tagOut(&tag))
	}
	return GroupOut{
		ID:      group.ID,
		Name:    group.Name,
		HasTags: len(group.Tags) > 0,
		Tags:    tags,
	}
}
