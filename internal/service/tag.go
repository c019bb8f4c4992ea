package service

import (
	"github.com/google/uuid"

	"github.com/lfms6164/digital-folder-api/internal/models"
	"github.com/lfms6164/digital-folder-api/internal/query"
	"github.com/lfms6164/digital-folder-api/internal/store"
)

// TagService manages tags.
type TagService struct {
	store  *store.Store
	groups *GroupService
}

// NewTagService creates a TagService.
func NewTagService(s *store.Store, groups *GroupService) *TagService {
	return &TagService{store: s, groups: groups}
}

// List returns tags visible to the actor.
func (s *TagService) List(actor *models.Actor, params *query.Params) (*Page[TagOut], error) {
	tags, count, err := store.List[models.Tag](s.store, actor, params)
	if err != nil {
		return nil, err
	}

	items := make([]TagOut, 0, len(tags))
	for _, tag := range tags {
		items = append(items, tagOut(&tag))
	}
	return &Page[TagOut]{Items: items, Count: count}, nil
}

// Get returns a single tag by id.
func (s *TagService) Get(id uuid.UUID) (*TagOut, error) {
	tag, err := store.GetByID[models.Tag](s.store, id)
	if err != nil {
		return nil, err
	}
	out := tagOut(tag)
	return &out, nil
}

// Create inserts a tag owned by the actor. The referenced group must belong
// to the actor as well; this is a relation check, so admins are not exempt.
func (s *TagService) Create(actor *models.Actor, req TagCreate) (*TagOut, error) {
	if err := ValidateOwnership(actor, s.groups, []uuid.UUID{req.GroupID}, true); err != nil {
		return nil, err
	}
	if err := ValidateUnique[models.Tag](s.store, req.Name); err != nil {
		return nil, err
	}

	tag := models.Tag{
		Name:      req.Name,
		Icon:      req.Icon,
		Color:     req.Color,
		GroupID:   req.GroupID,
		CreatedBy: actor.ID,
	}
	if err := store.Create(s.store, &tag); err != nil {
		return nil, err
	}
	return s.Get(tag.ID)
}

// Patch applies a partial update to a tag owned by the actor.
func (s *TagService) Patch(actor *models.Actor, id uuid.UUID, req TagPatch) (*TagOut, error) {
	if err := ValidateOwnership(actor, s, []uuid.UUID{id}, false); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		if err := ValidateUnique[models.Tag](s.store, *req.Name); err != nil {
			return nil, err
		}
		updates["name"] = *req.Name
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.GroupID != nil {
		if err := ValidateOwnership(actor, s.groups, []uuid.UUID{*req.GroupID}, true); err != nil {
			return nil, err
		}
		updates["group_id"] = *req.GroupID
	}

	if len(updates) > 0 {
		if err := store.Update[models.Tag](s.store, id, updates); err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

// Delete removes a tag and its project relations.
func (s *TagService) Delete(actor *models.Actor, id uuid.UUID) error {
	if err := ValidateOwnership(actor, s, []uuid.UUID{id}, false); err != nil {
		return err
	}

	// Join rows first so no dangling relations survive the delete.
	if err := store.ClearRelations[models.Tag](s.store, id, "Projects"); err != nil {
		return err
	}
	return store.Delete[models.Tag](s.store, id)
}

func (s *TagService) owner(id uuid.UUID) (string, uuid.UUID, error) {
	tag, err := store.GetByID[models.Tag](s.store, id)
	if err != nil {
		return "", uuid.Nil, err
	}
	return tag.Name, tag.CreatedBy, nil
}

func tagOut(tag *models.Tag) TagOut {
	return TagOut{
		ID:        tag.ID,
		Name:      tag.Name,
		Icon:      tag.Icon,
		Color:     tag.Color,
		GroupID:   tag.GroupID,
		CreatedBy: tag.CreatedBy,
	}
}
