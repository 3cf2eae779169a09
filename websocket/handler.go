package websocket

import (
	"business-permits-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// UpgradeMiddleware rejects plain HTTP requests on websocket endpoints.
func UpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// ThreadHandler subscribes a connection to one requirement's review thread
// and streams events until the client disconnects.
func ThreadHandler(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		applicationID := conn.Params("id")
		requirementName := conn.Params("requirementName")

		client := &Client{
			Conn:   conn,
			Thread: ThreadKey(applicationID, requirementName),
			Send:   make(chan []byte, 16),
		}
		hub.register <- client

		config.Logger.Debug("Websocket client subscribed",
			zap.String("thread", client.Thread))

		done := make(chan struct{})
		go func() {
			defer close(done)
			for payload := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			}
		}()

		// The read loop only watches for disconnects; clients send messages
		// over the REST endpoint, not the socket.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		hub.unregister <- client
		<-done
	})
}

// InitWebsocketRoutes mounts the review-thread subscription endpoint.
func InitWebsocketRoutes(app *fiber.App, hub *Hub) {
	ws := app.Group("/ws", UpgradeMiddleware)
	ws.Get("/applications/:id/threads/:requirementName", ThreadHandler(hub))
}
