package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scrummycpro/the-quarries/internal/core"
)

const maxQuerySize = 10 << 10 // 10KB

func (s *Server) handleAPISearch(c *gin.Context) {
	keyword := c.Query("keyword")

	if len(keyword) > maxQuerySize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "keyword exceeds maximum size of 10KB",
		})
		return
	}

	outcome, err := s.records.Search(c.Request.Context(), keyword)
	if err != nil {
		s.apiFail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"keyword":   keyword,
		"performed": outcome.Performed,
		"results":   outcome.Records,
		"count":     len(outcome.Records),
	})
}

func (s *Server) handleAPIRecord(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		apiNotFound(c, "record not found")
		return
	}

	rec, err := s.records.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			apiNotFound(c, "record not found")
			return
		}
		s.apiFail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rec,
	})
}

type logRecordRequest struct {
	Prompt   string `json:"prompt" binding:"required"`
	Response string `json:"response" binding:"required"`
}

func (s *Server) handleAPILogRecord(c *gin.Context) {
	var req logRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "prompt and response are required",
		})
		return
	}

	rec, err := s.records.Log(c.Request.Context(), req.Prompt, req.Response)
	if err != nil {
		s.apiFail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    rec,
	})
}

func (s *Server) handleAPINotes(c *gin.Context) {
	notes, err := s.notes.List(c.Request.Context())
	if err != nil {
		s.apiFail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    notes,
		"count":   len(notes),
	})
}

func (s *Server) handleAPINote(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		apiNotFound(c, "note not found")
		return
	}

	note, err := s.notes.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			apiNotFound(c, "note not found")
			return
		}
		s.apiFail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    note,
	})
}

func (s *Server) handleAPICreateNote(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "title is required",
		})
		return
	}

	uploads, err := formUploads(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid multipart form",
		})
		return
	}

	note, err := s.notes.Create(c.Request.Context(), title, c.PostForm("content"), uploads)
	if err != nil {
		s.apiFail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    note,
		"message": "Note created",
	})
}

func (s *Server) handleAPIUpdateNote(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		apiNotFound(c, "note not found")
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "title is required",
		})
		return
	}

	uploads, err := formUploads(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid multipart form",
		})
		return
	}

	note, err := s.notes.Update(c.Request.Context(), id, title, c.PostForm("content"), uploads)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			apiNotFound(c, "note not found")
			return
		}
		s.apiFail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    note,
		"message": "Note updated",
	})
}

func (s *Server) handleAPIDeleteNote(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		apiNotFound(c, "note not found")
		return
	}

	if err := s.notes.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			apiNotFound(c, "note not found")
			return
		}
		s.apiFail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Note deleted",
	})
}

func apiNotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error":   msg,
	})
}
