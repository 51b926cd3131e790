package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scrummycpro/the-quarries/internal/core"
)

// Search and export

func (s *Server) handleSearch(c *gin.Context) {
	keyword := c.PostForm("keyword")
	if keyword == "" {
		keyword = c.Query("keyword")
	}

	outcome, err := s.records.Search(c.Request.Context(), keyword)
	if err != nil {
		s.fail(c, err)
		return
	}

	data := gin.H{
		"keyword":   keyword,
		"performed": outcome.Performed,
		"results":   nil,
	}
	if outcome.Performed {
		data["results"] = outcome.Records
	}
	s.render(c, http.StatusOK, "search.html", data)
}

func (s *Server) handleExport(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		s.recordNotFound(c)
		return
	}

	export, err := s.records.Export(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			s.recordNotFound(c)
			return
		}
		s.fail(c, err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(export.Filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(export.Body))
}

func (s *Server) recordNotFound(c *gin.Context) {
	setFlash(c, "danger", "Record not found")
	c.Redirect(http.StatusSeeOther, "/search")
}

// Notes

func (s *Server) handleNotes(c *gin.Context) {
	notes, err := s.notes.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "notes.html", gin.H{"notes": notes})
}

func (s *Server) handleAddNoteForm(c *gin.Context) {
	s.render(c, http.StatusOK, "add_note.html", gin.H{})
}

func (s *Server) handleCreateNote(c *gin.Context) {
	title, ok := c.GetPostForm("title")
	if !ok || title == "" {
		s.renderWithFlash(c, http.StatusBadRequest, "add_note.html", gin.H{"content": c.PostForm("content")},
			&Flash{Category: "danger", Message: "Title is required."})
		return
	}

	uploads, err := formUploads(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	if _, err := s.notes.Create(c.Request.Context(), title, c.PostForm("content"), uploads); err != nil {
		s.fail(c, err)
		return
	}

	setFlash(c, "success", "Note added successfully!")
	c.Redirect(http.StatusSeeOther, "/notes")
}

func (s *Server) handleViewNote(c *gin.Context) {
	note, ok := s.loadNote(c)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, "view_note.html", gin.H{"note": note})
}

func (s *Server) handleUpdateNoteForm(c *gin.Context) {
	note, ok := s.loadNote(c)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, "update_note.html", gin.H{"note": note})
}

func (s *Server) handleUpdateNote(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		s.noteNotFound(c)
		return
	}

	title := c.PostForm("title")
	if title == "" {
		note, ok := s.loadNote(c)
		if !ok {
			return
		}
		note.Content = c.PostForm("content")
		s.renderWithFlash(c, http.StatusBadRequest, "update_note.html", gin.H{"note": note},
			&Flash{Category: "danger", Message: "Title is required."})
		return
	}

	uploads, err := formUploads(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	_, err = s.notes.Update(c.Request.Context(), id, title, c.PostForm("content"), uploads)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			s.noteNotFound(c)
			return
		}
		s.fail(c, err)
		return
	}

	setFlash(c, "success", "Note updated successfully!")
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/note/%d", id))
}

func (s *Server) handleDeleteNote(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		s.noteNotFound(c)
		return
	}

	if err := s.notes.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			s.noteNotFound(c)
			return
		}
		s.fail(c, err)
		return
	}

	setFlash(c, "success", "Note deleted successfully!")
	c.Redirect(http.StatusSeeOther, "/notes")
}

// loadNote fetches the :id note, answering the request itself when it cannot.
func (s *Server) loadNote(c *gin.Context) (*core.Note, bool) {
	id, ok := paramID(c)
	if !ok {
		s.noteNotFound(c)
		return nil, false
	}

	note, err := s.notes.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			s.noteNotFound(c)
			return nil, false
		}
		s.fail(c, err)
		return nil, false
	}
	return note, true
}

func (s *Server) noteNotFound(c *gin.Context) {
	setFlash(c, "danger", "Note not found")
	c.Redirect(http.StatusSeeOther, "/notes")
}
