package core

import (
	"github.com/scrummycpro/the-quarries/internal/storage"
)

// TimestampLayout is the format used when stamping new saturn records.
const TimestampLayout = "2006-01-02 15:04:05"

// Record is one logged prompt/response pair ("saturn" row).
type Record struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Prompt    string `json:"prompt"`
	Response  string `json:"response"`
}

// Note is a titled text entry with zero or more attachment paths.
type Note struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments"`
}

// User is a registered account. The password hash never leaves this package
// through JSON.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// SearchOutcome distinguishes "no search performed" (Performed false) from a
// search that matched nothing (Performed true, Records empty).
type SearchOutcome struct {
	Keyword   string   `json:"keyword"`
	Performed bool     `json:"performed"`
	Records   []Record `json:"results"`
}

// Export is a saturn record rendered as a downloadable text file.
type Export struct {
	Filename string
	Body     string
}

func recordFromStorage(r *storage.LoggedRecord) Record {
	return Record{
		ID:        r.ID,
		Timestamp: r.Timestamp,
		Prompt:    r.Prompt,
		Response:  r.Response,
	}
}

func noteFromStorage(n *storage.NoteRecord) Note {
	attachments := n.Files
	if attachments == nil {
		attachments = []string{}
	}
	return Note{
		ID:          n.ID,
		Title:       n.Title,
		Content:     n.Content,
		Attachments: attachments,
	}
}
