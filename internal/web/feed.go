package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scrummycpro/the-quarries/internal/sefaria"
)

func (s *Server) handleIndex(c *gin.Context) {
	r, err := s.feed.RandomByTopic(c.Request.Context())
	if err != nil {
		s.logger.Warn("sefaria random text unavailable", "error", err)
	}
	text := sefaria.FormatRandomText(s.feed.BaseURL(), r, err)

	s.render(c, http.StatusOK, "index.html", gin.H{"random_text": text})
}

const calendarUnavailable = "An error occurred: the reading schedule is unavailable right now."

func (s *Server) handleTracingBoard(c *gin.Context) {
	data := gin.H{"calendar_items": []sefaria.CalendarItem{}}

	cal, err := s.feed.Calendars(c.Request.Context(), s.opts.Calendar, s.opts.Timezone)
	if err != nil {
		s.logger.Warn("sefaria calendar unavailable", "error", err)
		data["error"] = calendarUnavailable
	} else if cal.CalendarItems != nil {
		data["calendar_items"] = cal.CalendarItems
	}

	s.render(c, http.StatusOK, "tracing_board.html", data)
}
