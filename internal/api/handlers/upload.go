package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lfms6164/digital-folder-api/internal/storage"
)

// UploadHandler receives multipart image uploads into the storage temp area.
type UploadHandler struct {
	storage storage.Client
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(blob storage.Client) *UploadHandler {
	return &UploadHandler{storage: blob}
}

// Upload stores the posted files in the temp area of the :folder path
// parameter and returns their filenames. The files stay in temp until an
// entity create or patch claims them.
func (h *UploadHandler) Upload(c *gin.Context) {
	folder := c.Param("folder")
	if err := storage.ValidateFolder(folder); err != nil {
		respondError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid multipart form"})
		return
	}

	var names []string
	for _, file := range form.File["files"] {
		contentType := file.Header.Get("Content-Type")
		if err := storage.ValidateContentType(contentType); err != nil {
			respondError(c, err)
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable file"})
			return
		}
		err = h.storage.Upload(c.Request.Context(), folder, file.Filename, contentType, src, file.Size)
		src.Close()
		if err != nil {
			respondError(c, err)
			return
		}
		names = append(names, file.Filename)
	}

	c.JSON(http.StatusOK, gin.H{"file_names": names})
}
