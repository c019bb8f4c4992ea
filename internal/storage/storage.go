// Package storage manages image blobs in an object-storage bucket. Objects
// are keyed as {folder}/{temp|entity_id}/{filename}: uploads land in the temp
// area and are moved into a per-entity directory when the entity is created.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/lfms6164/digital-folder-api/internal/apperr"
)

// TempDir is the holding area for uploaded-but-unattached images.
const TempDir = "temp"

// Client is the object-storage surface used by the entity services.
type Client interface {
	// Upload stores a file in the temp area of a folder.
	Upload(ctx context.Context, folder, filename, contentType string, r io.Reader, size int64) error
	// List returns the filenames under folder/dir.
	List(ctx context.Context, folder, dir string) ([]string, error)
	// Move relocates files from the temp area to folder/dest.
	Move(ctx context.Context, folder string, files []string, dest string) error
	// Delete removes the named files from folder/dir.
	Delete(ctx context.Context, folder, dir string, files []string) error
	// DeleteDir removes every file under folder/dir.
	DeleteDir(ctx context.Context, folder, dir string) error
}

// Entity folders inside the bucket.
const (
	FolderProjects = "projects"
	FolderTickets  = "tickets"
)

// ValidateFolder checks that the folder is one of the known entity folders.
func ValidateFolder(folder string) error {
	switch folder {
	case FolderProjects, FolderTickets:
		return nil
	}
	return &apperr.ConfigError{Message: fmt.Sprintf("storage folder %q is invalid", folder)}
}

// allowed upload content types
var imageContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

// ValidateContentType checks that the upload is an accepted image type.
func ValidateContentType(contentType string) error {
	if !imageContentTypes[contentType] {
		return &apperr.ParseError{Message: fmt.Sprintf("invalid image content type %q", contentType)}
	}
	return nil
}
