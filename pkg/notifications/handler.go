package notifications

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"seedround/pkg/response"
)

type NotificationHandler struct {
	service NotificationService
	feed    *Feed
	logger  interface {
		Printf(string, ...interface{})
	}
}

func NewNotificationHandler(service NotificationService, feed *Feed) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		feed:    feed,
		logger:  log.New(log.Writer(), "[notifications] ", log.LstdFlags),
	}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/profiles/:id/notifications", h.listNotifications)
	router.PATCH("/profiles/:id/notifications/seen", h.markAllSeen)
	router.PATCH("/notifications/:id/seen", h.markSeen)
	router.GET("/ws/notifications", h.handleFeed)
}

// @Summary      List notifications for a profile
// @Tags         notifications
// @Produce      json
// @Param        id path int true "Profile ID"
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200 {object} response.APIResponse{data=NotificationList}
// @Router       /profiles/{id}/notifications [get]
func (h *NotificationHandler) listNotifications(c *gin.Context) {
	recipientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || recipientID <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid profile id", nil)
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	list, total, err := h.service.ListNotifications(c.Request.Context(), recipientID, page, limit)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "notifications listed", NotificationList{Items: list, Total: total, Page: page, Limit: limit})
}

// @Summary      Mark notification as seen
// @Tags         notifications
// @Produce      json
// @Param        id path int true "Notification ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /notifications/{id}/seen [patch]
func (h *NotificationHandler) markSeen(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid notification id", nil)
		return
	}

	if err := h.service.MarkSeen(c.Request.Context(), id); err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "notification marked seen", nil)
}

// @Summary      Mark all notifications as seen
// @Tags         notifications
// @Produce      json
// @Param        id path int true "Profile ID"
// @Success      200 {object} response.APIResponse
// @Router       /profiles/{id}/notifications/seen [patch]
func (h *NotificationHandler) markAllSeen(c *gin.Context) {
	recipientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || recipientID <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid profile id", nil)
		return
	}

	count, err := h.service.MarkAllSeen(c.Request.Context(), recipientID)
	if err != nil {
		response.SendAPIError(c, err)
		return
	}
	response.SendAPIResponse(c, http.StatusOK, true, "notifications marked seen", gin.H{"updated": count})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, validate origin properly
		return true
	},
}

// handleFeed upgrades the connection and streams new notifications for the
// profile given by the profile_id query parameter.
func (h *NotificationHandler) handleFeed(c *gin.Context) {
	profileID, err := strconv.ParseInt(c.Query("profile_id"), 10, 64)
	if err != nil || profileID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile_id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Printf("websocket upgrade error: %v", err)
		return
	}

	client := h.feed.AddClient(profileID, conn)
	h.logger.Printf("profile %d connected", profileID)

	go h.readLoop(client)
	go h.writeLoop(client)
}

// readLoop drains the connection so pings/pongs and close frames are
// processed; the feed is push-only, inbound payloads are discarded.
func (h *NotificationHandler) readLoop(client *FeedClient) {
	defer func() {
		h.feed.RemoveClient(client.ProfileID)
		client.Conn.Close()
		h.logger.Printf("profile %d disconnected", client.ProfileID)
	}()

	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		select {
		case <-client.Done:
			return
		default:
		}

		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Printf("websocket error for profile %d: %v", client.ProfileID, err)
			}
			return
		}
	}
}

func (h *NotificationHandler) writeLoop(client *FeedClient) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-client.Done:
			return

		case payload, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteJSON(payload); err != nil {
				h.logger.Printf("write error for profile %d: %v", client.ProfileID, err)
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.logger.Printf("ping error for profile %d: %v", client.ProfileID, err)
				return
			}
		}
	}
}
