// Package notify is the portal's transient toast surface. Notices are
// carried as cookie-session flashes: a mutation handler pushes one, the next
// page render pops and displays it, and it is gone after that.
package notify

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Variant selects the toast styling.
type Variant string

const (
	Success Variant = "success"
	Error   Variant = "error"
)

// Notice is one toast: a short title, a description and a variant.
type Notice struct {
	Variant     Variant `json:"variant"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

func init() {
	gob.Register(Notice{})
}

// Push queues a notice for the next render.
func Push(c *gin.Context, n Notice) {
	sess := sessions.Default(c)
	sess.AddFlash(n)
	_ = sess.Save()
}

// Pop drains and returns all queued notices. Returns an empty slice rather
// than nil so the payload always carries a renderable list.
func Pop(c *gin.Context) []Notice {
	sess := sessions.Default(c)
	flashes := sess.Flashes()
	if len(flashes) > 0 {
		_ = sess.Save()
	}
	notices := make([]Notice, 0, len(flashes))
	for _, f := range flashes {
		if n, ok := f.(Notice); ok {
			notices = append(notices, n)
		}
	}
	return notices
}
