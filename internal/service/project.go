package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/lfms6164/digital-folder-api/internal/models"
	"github.com/lfms6164/digital-folder-api/internal/query"
	"github.com/lfms6164/digital-folder-api/internal/storage"
	"github.com/lfms6164/digital-folder-api/internal/store"
)

// ProjectService manages projects, their tag relations and their images.
type ProjectService struct {
	store   *store.Store
	storage storage.Client
	tags    *TagService
}

// NewProjectService creates a ProjectService.
func NewProjectService(s *store.Store, blob storage.Client, tags *TagService) *ProjectService {
	return &ProjectService{store: s, storage: blob, tags: tags}
}

// List returns projects visible to the actor, with their tags.
func (s *ProjectService) List(actor *models.Actor, params *query.Params) (*Page[ProjectOut], error) {
	projects, count, err := store.List[models.Project](s.store, actor, params, "Tags")
	if err != nil {
		return nil, err
	}

	items := make([]ProjectOut, 0, len(projects))
	for _, project := range projects {
		items = append(items, projectOut(&project))
	}
	return &Page[ProjectOut]{Items: items, Count: count}, nil
}

// Get returns a single project by id.
func (s *ProjectService) Get(id uuid.UUID) (*ProjectOut, error) {
	project, err := store.GetByID[models.Project](s.store, id, "Tags")
	if err != nil {
		return nil, err
	}
	out := projectOut(project)
	return &out, nil
}

// Create inserts a project owned by the actor, attaches its tags and moves
// any uploaded images from the temp area into the project's folder.
func (s *ProjectService) Create(ctx context.Context, actor *models.Actor, req ProjectCreate) (*ProjectOut, error) {
	if len(req.TagIDs) > 0 {
		if err := ValidateOwnership(actor, s.tags, req.TagIDs, true); err != nil {
			return nil, err
		}
	}
	if err := ValidateUnique[models.Project](s.store, req.Name); err != nil {
		return nil, err
	}

	project := models.Project{
		Name:         req.Name,
		RepoURL:      req.RepoURL,
		Introduction: req.Introduction,
		Description:  req.Description,
		Images:       req.Images,
		CreatedBy:    actor.ID,
	}
	if err := store.Create(s.store, &project); err != nil {
		return nil, err
	}

	if len(req.TagIDs) > 0 {
		if err := store.ReplaceRelations[models.Project, models.Tag](s.store, project.ID, req.TagIDs, "Tags"); err != nil {
			return nil, err
		}
	}

	if len(req.Images) > 0 {
		if err := s.storage.Move(ctx, storage.FolderProjects, req.Images, project.ID.String()); err != nil {
			return nil, err
		}
	}

	return s.Get(project.ID)
}

// Patch applies a partial update. A non-nil image list is reconciled against
// the files currently stored for the project: additions are moved out of the
// temp area, removals are deleted. A non-nil tag id list replaces the tag set.
func (s *ProjectService) Patch(ctx context.Context, actor *models.Actor, id uuid.UUID, req ProjectPatch) (*ProjectOut, error) {
	if err := ValidateOwnership(actor, s, []uuid.UUID{id}, false); err != nil {
		return nil, err
	}
	if req.TagIDs != nil && len(*req.TagIDs) > 0 {
		if err := ValidateOwnership(actor, s.tags, *req.TagIDs, true); err != nil {
			return nil, err
		}
	}

	updates := map[string]any{}
	if req.Name != nil {
		if err := ValidateUnique[models.Project](s.store, *req.Name); err != nil {
			return nil, err
		}
		updates["name"] = *req.Name
	}
	if req.RepoURL != nil {
		updates["repo_url"] = *req.RepoURL
	}
	if req.Introduction != nil {
		updates["introduction"] = *req.Introduction
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Images != nil {
		updates["images"] = models.StringList(*req.Images)
	}

	if len(updates) > 0 {
		if err := store.Update[models.Project](s.store, id, updates); err != nil {
			return nil, err
		}
	}

	if req.Images != nil {
		if err := s.reconcileImages(ctx, id, *req.Images); err != nil {
			return nil, err
		}
	}

	if req.TagIDs != nil {
		if err := store.ReplaceRelations[models.Project, models.Tag](s.store, id, *req.TagIDs, "Tags"); err != nil {
			return nil, err
		}
	}

	return s.Get(id)
}

// Delete removes a project, its tag relations and its image folder.
func (s *ProjectService) Delete(ctx context.Context, actor *models.Actor, id uuid.UUID) error {
	if err := ValidateOwnership(actor, s, []uuid.UUID{id}, false); err != nil {
		return err
	}

	project, err := store.GetByID[models.Project](s.store, id)
	if err != nil {
		return err
	}
	if len(project.Images) > 0 {
		if err := s.storage.DeleteDir(ctx, storage.FolderProjects, id.String()); err != nil {
			return err
		}
	}

	if err := store.ClearRelations[models.Project](s.store, id, "Tags"); err != nil {
		return err
	}
	return store.Delete[models.Project](s.store, id)
}

// reconcileImages drives storage moves/deletes from the symmetric difference
// between the stored file set and the requested one.
func (s *ProjectService) reconcileImages(ctx context.Context, id uuid.UUID, images []string) error {
	stored, err := s.storage.List(ctx, storage.FolderProjects, id.String())
	if err != nil {
		return err
	}

	old := make(map[string]bool, len(stored))
	for _, file := range stored {
		old[file] = true
	}
	requested := make(map[string]bool, len(images))
	for _, file := range images {
		requested[file] = true
	}

	var toAdd, toDelete []string
	for file := range requested {
		if !old[file] {
			toAdd = append(toAdd, file)
		}
	}
	for file := range old {
		if !requested[file] {
			toDelete = append(toDelete, file)
		}
	}

	if len(toAdd) > 0 {
		if err := s.storage.Move(ctx, storage.FolderProjects, toAdd, id.String()); err != nil {
			return err
		}
	}
	if len(toDelete) > 0 {
		if err := s.storage.Delete(ctx, storage.FolderProjects, id.String(), toDelete); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProjectService) owner(id uuid.UUID) (string, uuid.UUID, error) {
	project, err := store.GetByID[models.Project](s.store, id)
	if err != nil {
		return "", uuid.Nil, err
	}
	return project.Name, project.CreatedBy, nil
}

func projectOut(project *models.Project) ProjectOut {
	tags := make([]TagOut, 0, len(project.Tags))
	tagIDs := make([]uuid.UUID, 0, len(project.Tags))
	for _, tag := range project.Tags {
		tags = append(tags, tagOut(&tag))
		tagIDs = append(tagIDs, tag.ID)
	}
	return ProjectOut{
		ID:           project.ID,
		Name:         project.Name,
		RepoURL:      project.RepoURL,
		Introduction: project.Introduction,
		Description:  project.Description,
		Tags:         tags,
		TagIDs:       tagIDs,
		Images:       project.Images,
		CreatedBy:    project.CreatedBy,
	}
}
