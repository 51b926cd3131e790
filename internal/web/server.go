package web

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scrummycpro/the-quarries/internal/attachments"
	"github.com/scrummycpro/the-quarries/internal/core"
	"github.com/scrummycpro/the-quarries/internal/sefaria"
)

// NoteService is the note lifecycle used by the handlers.
// Implementations: core.NoteService
type NoteService interface {
	Create(ctx context.Context, title, content string, uploads []attachments.Upload) (*core.Note, error)
	Get(ctx context.Context, id int64) (*core.Note, error)
	List(ctx context.Context) ([]core.Note, error)
	Update(ctx context.Context, id int64, title, content string, uploads []attachments.Upload) (*core.Note, error)
	Delete(ctx context.Context, id int64) error
}

// RecordService reads and logs saturn records.
// Implementations: core.RecordService
type RecordService interface {
	Log(ctx context.Context, prompt, response string) (*core.Record, error)
	Get(ctx context.Context, id int64) (*core.Record, error)
	Search(ctx context.Context, keyword string) (*core.SearchOutcome, error)
	Export(ctx context.Context, id int64) (*core.Export, error)
}

// AccountService registers and authenticates users.
// Implementations: core.AccountService
type AccountService interface {
	Register(ctx context.Context, username, password string) (*core.User, error)
	Authenticate(ctx context.Context, username, password string) (*core.User, error)
}

// TextFeed supplies the religious-text snippets shown on the index and
// tracing board pages.
// Implementations: sefaria.Client
type TextFeed interface {
	BaseURL() string
	RandomByTopic(ctx context.Context) (*sefaria.RandomText, error)
	Calendars(ctx context.Context, calendarType, timezone string) (*sefaria.Calendar, error)
}

// Options holds server settings
type Options struct {
	Mode               string
	StaticDir          string
	RequireSession     bool
	SessionTTL         time.Duration
	Calendar           string
	Timezone           string
	MaxMultipartMemory int64
}

// Deps holds the collaborators of a Server
type Deps struct {
	Notes    NoteService
	Records  RecordService
	Accounts AccountService
	Feed     TextFeed
	Logger   *slog.Logger
	Options  Options
}

// Server is the ashlar web server
type Server struct {
	notes    NoteService
	records  RecordService
	accounts AccountService
	feed     TextFeed
	sessions *SessionStore
	logger   *slog.Logger
	opts     Options
	router   *gin.Engine
}

// NewServer creates a new web server
func NewServer(deps Deps) *Server {
	if deps.Options.Mode != "" {
		gin.SetMode(deps.Options.Mode)
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	if deps.Options.MaxMultipartMemory > 0 {
		router.MaxMultipartMemory = deps.Options.MaxMultipartMemory
	}

	s := &Server{
		notes:    deps.Notes,
		records:  deps.Records,
		accounts: deps.Accounts,
		feed:     deps.Feed,
		sessions: NewSessionStore(deps.Options.SessionTTL),
		logger:   logger,
		opts:     deps.Options,
		router:   router,
	}

	router.Use(gin.Recovery(), s.requestLogger(), s.loadSession())

	router.SetHTMLTemplate(template.Must(
		template.New("").Funcs(template.FuncMap{"base": path.Base}).ParseFS(templateFS, "templates/*.html"),
	))
	if deps.Options.StaticDir != "" {
		router.Static("/static", deps.Options.StaticDir)
	}

	// Web routes
	router.GET("/", s.handleIndex)
	router.GET("/search", s.handleSearch)
	router.POST("/search", s.handleSearch)
	router.GET("/export/:id", s.handleExport)
	router.GET("/tracing-board", s.handleTracingBoard)

	router.GET("/notes", s.handleNotes)
	router.GET("/note/:id", s.handleViewNote)
	router.GET("/add_note", s.handleAddNoteForm)
	router.GET("/update_note/:id", s.handleUpdateNoteForm)

	pages := router.Group("/", s.requireSession(false))
	{
		pages.POST("/notes", s.handleCreateNote)
		pages.POST("/add_note", s.handleCreateNote)
		pages.POST("/update_note/:id", s.handleUpdateNote)
		pages.POST("/delete_note/:id", s.handleDeleteNote)
	}

	router.GET("/register", s.handleRegisterForm)
	router.POST("/register", s.handleRegister)
	router.GET("/login", s.handleLoginForm)
	router.POST("/login", s.handleLogin)
	router.POST("/logout", s.handleLogout)

	// API routes
	api := router.Group("/api")
	{
		api.GET("/search", s.handleAPISearch)
		api.GET("/saturn/:id", s.handleAPIRecord)
		api.POST("/saturn", s.handleAPILogRecord)
		api.GET("/notes", s.handleAPINotes)
		api.GET("/notes/:id", s.handleAPINote)

		guarded := api.Group("", s.requireSession(true))
		guarded.POST("/notes", s.handleAPICreateNote)
		guarded.PUT("/notes/:id", s.handleAPIUpdateNote)
		guarded.DELETE("/notes/:id", s.handleAPIDeleteNote)
	}

	return s
}

// Handler exposes the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
