package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/digital-companion/companion/internal/models"
	"github.com/digital-companion/companion/internal/services"
	"github.com/digital-companion/companion/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/datatypes"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// AssistantWebSocket is a live chat relay: each text frame from the client is
// forwarded to the assistant service and the reply is sent back as a JSON
// frame. Exchanges are persisted the same way as the /message endpoint.
func AssistantWebSocket(c *gin.Context) {
	userID, err := currentOwner(c)
	if err != nil {
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	defer func() {
		conn.Close()
		log.Printf("Assistant WebSocket closed for user %d", userID)
	}()

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	// Replies and keepalive pings come from different goroutines.
	var writeMu sync.Mutex

	writeJSON := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()

		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
		return conn.WriteJSON(v)
	}

	if err := writeJSON(map[string]string{
		"type":    "connected",
		"message": "Assistant connection established",
	}); err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				writeMu.Lock()
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					writeMu.Unlock()
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					writeMu.Unlock()
					log.Printf("Ping failed for user %d: %v", userID, err)
					return
				}
				writeMu.Unlock()
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for user %d: %v", userID, err)
			break
		}

		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Assistant WebSocket error for user %d: %v", userID, err)
			}
			break
		}

		if messageType != websocket.TextMessage {
			continue
		}

		prompt := string(message)

		reply, raw, err := services.ProcessText(prompt)

		if err != nil {
			log.Printf("Assistant service error for user %d: %v", userID, err)
			if err := writeJSON(map[string]string{
				"type":    "error",
				"message": "Assistant service unavailable",
			}); err != nil {
				break
			}
			continue
		}

		exchange := models.AssistantExchange{
			UserID: userID,
			Prompt: prompt,
			Reply:  reply,
			Raw:    datatypes.JSON(raw),
		}

		if err := assistantStore().Create(&exchange); err != nil {
			log.Printf("Failed to record assistant exchange: %v", err)
		}

		if err := writeJSON(map[string]string{
			"type":  "reply",
			"reply": reply,
		}); err != nil {
			log.Printf("Failed to send reply to user %d: %v", userID, err)
			break
		}
	}
}
