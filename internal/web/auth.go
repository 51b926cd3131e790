package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scrummycpro/the-quarries/internal/core"
)

const (
	sessionCookie = "ashlar_session"
	userKey       = "username"
)

// loadSession resolves the session cookie into the current username.
func (s *Server) loadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
			if username, ok := s.sessions.Lookup(id); ok {
				c.Set(userKey, username)
			}
		}
		c.Next()
	}
}

// requireSession gates a route behind login when the server is configured
// to. API routes answer 401, pages redirect to the login form.
func (s *Server) requireSession(api bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.opts.RequireSession || currentUser(c) != "" {
			c.Next()
			return
		}
		if api {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "login required",
			})
			return
		}
		setFlash(c, "danger", "Please log in first.")
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userKey)
}

func (s *Server) handleRegisterForm(c *gin.Context) {
	s.render(c, http.StatusOK, "register.html", gin.H{})
}

func (s *Server) handleRegister(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, err := s.accounts.Register(c.Request.Context(), username, password)
	switch {
	case err == nil:
		setFlash(c, "success", "Registration successful! Please log in.")
		c.Redirect(http.StatusSeeOther, "/login")
	case errors.Is(err, core.ErrDuplicateUsername):
		s.renderWithFlash(c, http.StatusConflict, "register.html", gin.H{"username": username},
			&Flash{Category: "danger", Message: "Username already exists. Please choose another."})
	case errors.Is(err, core.ErrInvalidCredentials):
		s.renderWithFlash(c, http.StatusBadRequest, "register.html", gin.H{"username": username},
			&Flash{Category: "danger", Message: "Username and password are required."})
	default:
		s.fail(c, err)
	}
}

func (s *Server) handleLoginForm(c *gin.Context) {
	s.render(c, http.StatusOK, "login.html", gin.H{})
}

func (s *Server) handleLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := s.accounts.Authenticate(c.Request.Context(), username, password)
	switch {
	case err == nil:
		id := s.sessions.Create(user.Username)
		c.SetCookie(sessionCookie, id, int(s.sessions.TTL().Seconds()), "/", "", false, true)
		setFlash(c, "success", "Welcome back, "+user.Username+".")
		c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, core.ErrInvalidCredentials):
		s.renderWithFlash(c, http.StatusUnauthorized, "login.html", gin.H{"username": username},
			&Flash{Category: "danger", Message: "Invalid username or password."})
	default:
		s.fail(c, err)
	}
}

func (s *Server) handleLogout(c *gin.Context) {
	if id, err := c.Cookie(sessionCookie); err == nil {
		s.sessions.Delete(id)
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	setFlash(c, "success", "Logged out.")
	c.Redirect(http.StatusSeeOther, "/")
}
