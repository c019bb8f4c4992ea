package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lfms6164/digital-folder-api/internal/apperr"
	"github.com/lfms6164/digital-folder-api/internal/query"
)

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps an error to its HTTP status and writes the error body.
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(status, ErrorResponse{Error: msg})
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// parseListParams decodes the list-endpoint query string into a query spec.
func parseListParams(c *gin.Context, lookup query.UserLookup) (*query.Params, error) {
	itemsPerPage, err := strconv.Atoi(c.DefaultQuery("itemsPerPage", strconv.Itoa(query.DefaultItemsPerPage)))
	if err != nil {
		return nil, &apperr.ParseError{Message: "itemsPerPage must be an integer"}
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return nil, &apperr.ParseError{Message: "page must be an integer"}
	}

	return query.Parse(
		lookup,
		c.Query("filters"),
		c.Query("search"),
		c.Query("sortBy"),
		itemsPerPage,
		page,
	)
}
