package middlewares

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"koita-chat-api/internal/domain/chat"
)

var errStreamingUnsupported = errors.New("response writer does not support flushing")

// PrepareSSE configures the HTTP response for Server Sent Events responses.
func PrepareSSE(c *gin.Context) (http.Flusher, bool) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	flusher, ok := c.Writer.(http.Flusher)
	return flusher, ok
}

// SSESink writes chat events as "data: <json>\n\n" frames.
type SSESink struct {
	c       *gin.Context
	flusher http.Flusher
	events  int
}

func NewSSESink(c *gin.Context) *SSESink {
	return &SSESink{c: c}
}

// Start commits the 200 event-stream response.
func (s *SSESink) Start() error {
	flusher, ok := PrepareSSE(s.c)
	if !ok {
		return errStreamingUnsupported
	}
	s.flusher = flusher
	s.c.Status(http.StatusOK)
	s.c.Writer.WriteHeaderNow()
	s.flusher.Flush()
	return nil
}

func (s *SSESink) Send(event chat.Event) error {
	if s.flusher == nil {
		return errStreamingUnsupported
	}
	if err := s.c.Request.Context().Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	frame := make([]byte, 0, len(payload)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, payload...)
	frame = append(frame, '\n', '\n')
	if _, err := s.c.Writer.Write(frame); err != nil {
		return err
	}
	s.flusher.Flush()
	s.events++
	return nil
}

// Started reports whether the response has been committed.
func (s *SSESink) Started() bool {
	return s.flusher != nil
}

// Events returns how many events were written.
func (s *SSESink) Events() int {
	return s.events
}

var _ chat.EventSink = (*SSESink)(nil)
