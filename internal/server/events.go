package server

import (
	"io"

	"github.com/gin-gonic/gin"

	"silent-auction/internal/events"
)

// StreamEventsHandler streams ledger notifications to the client as
// server-sent events. Full-detail events and masked notices arrive exactly as
// the emitter published them; the masking already happened there.
func StreamEventsHandler(hub *events.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub := hub.Subscribe(16)
		defer hub.Unsubscribe(sub)

		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Stream(func(w io.Writer) bool {
			select {
			case event, ok := <-sub:
				if !ok {
					return false
				}
				c.SSEvent(event.Name, event)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
