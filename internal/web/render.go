package web

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scrummycpro/the-quarries/internal/attachments"
)

func (s *Server) render(c *gin.Context, status int, name string, data gin.H) {
	s.renderWithFlash(c, status, name, data, popFlash(c))
}

func (s *Server) renderWithFlash(c *gin.Context, status int, name string, data gin.H, flash *Flash) {
	data["flash"] = flash
	data["user"] = currentUser(c)
	c.HTML(status, name, data)
}

// fail answers an unexpected (storage) error. Internal details are logged,
// never shown.
func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	s.renderWithFlash(c, http.StatusInternalServerError, "error.html",
		gin.H{"error": "Something went wrong. Please try again later."}, nil)
}

func (s *Server) apiFail(c *gin.Context, err error) {
	s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "internal error",
	})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}

// formUploads collects the "files" parts of a multipart request. Requests
// that are not multipart carry no uploads.
func formUploads(c *gin.Context) ([]attachments.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	headers := form.File["files"]
	uploads := make([]attachments.Upload, 0, len(headers))
	for _, fh := range headers {
		uploads = append(uploads, fromFileHeader(fh))
	}
	return uploads, nil
}

func fromFileHeader(fh *multipart.FileHeader) attachments.Upload {
	return attachments.Upload{
		Filename: fh.Filename,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// contentDisposition builds a header value for a download named filename.
// The name is carried verbatim but encoded so the header stays well formed.
func contentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
