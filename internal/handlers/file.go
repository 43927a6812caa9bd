package handlers

import (
	"github.com/delcom/fittrack/internal/response"
	"github.com/delcom/fittrack/internal/services"
	"github.com/gin-gonic/gin"
)

// FileHandler serves stored upload files.
type FileHandler struct {
	fileStore *services.FileStorage
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileStore *services.FileStorage) *FileHandler {
	return &FileHandler{fileStore: fileStore}
}

// Serve resolves a stored filename to its binary content.
func (h *FileHandler) Serve(c *gin.Context) {
	filename := c.Param("filename")
	if filename == "" || !h.fileStore.Exists(filename) {
		response.NotFound(c, "File not found")
		return
	}

	c.File(h.fileStore.Path(filename))
}
