package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sportconnect/sportconnect-api/internal/api/handler/v1/request"
	"github.com/sportconnect/sportconnect-api/internal/api/handler/v1/response"
	"github.com/sportconnect/sportconnect-api/internal/domain"
	"github.com/sportconnect/sportconnect-api/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type ChatService interface {
	CanChat(ctx context.Context, userID, eventID uint) (bool, error)
	GetMessages(ctx context.Context, userID, eventID uint, limit, offset int) ([]domain.Message, error)
	PostMessage(ctx context.Context, userID, eventID uint, content string) (domain.Message, error)
}

type Client struct {
	conn    *websocket.Conn
	send    chan []byte
	userID  uint
	eventID uint

	mu     sync.Mutex
	closed bool
}

// trySend queues a payload for the write pump. It reports false when the
// client is already shut down or its buffer is full, instead of blocking or
// panicking on the closed channel.
func (c *Client) trySend(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}

	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// shutdown closes the send channel exactly once. Both the unregister path
// and the slow-client eviction in Run go through here, so a racing
// readPump can never hit a closed channel.
func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

type roomMessage struct {
	eventID uint
	payload []byte
}

type ChatHandler struct {
	svc        ChatService
	uSvc       UserService
	rooms      map[uint]map[*Client]bool
	roomsMutex sync.RWMutex
	broadcast  chan roomMessage
	register   chan *Client
	unregister chan *Client
}

func NewChatHandler(svc ChatService, uSvc UserService) *ChatHandler {
	return &ChatHandler{
		svc:        svc,
		uSvc:       uSvc,
		rooms:      make(map[uint]map[*Client]bool),
		broadcast:  make(chan roomMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run owns the room registry. Register, unregister and broadcast all go
// through this loop so the maps are never touched concurrently.
func (h *ChatHandler) Run() {
	for {
		select {
		case client := <-h.register:
			h.roomsMutex.Lock()
			if h.rooms[client.eventID] == nil {
				h.rooms[client.eventID] = make(map[*Client]bool)
			}
			h.rooms[client.eventID][client] = true
			h.roomsMutex.Unlock()
		case client := <-h.unregister:
			h.roomsMutex.Lock()
			if room, ok := h.rooms[client.eventID]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					client.shutdown()
					if len(room) == 0 {
						delete(h.rooms, client.eventID)
					}
				}
			}
			h.roomsMutex.Unlock()
		case message := <-h.broadcast:
			h.roomsMutex.Lock()
			room := h.rooms[message.eventID]
			for client := range room {
				if !client.trySend(message.payload) {
					client.shutdown()
					delete(room, client)
				}
			}
			h.roomsMutex.Unlock()
		}
	}
}

// HandleWebSocket godoc
// @Summary      Establish WebSocket connection for an event's chat room
// @Description  Upgrades the connection and streams chat messages for participants and the organizer
// @Tags         events,chat
// @Produce      json
// @Param        eventID  path  int  true  "event ID"
// @Success      101  {string}  string  "Switching Protocols to WebSocket"
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/chat [get]
// @Security     BearerAuth
func (h *ChatHandler) HandleWebSocket(c *gin.Context) {
	user, respErr := getUserFromContext(c, h.uSvc)
	if respErr != nil {
		response.RenderErr(c, respErr)
		return
	}

	eventID, err := strconv.ParseUint(c.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(c, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	allowed, err := h.svc.CanChat(c.Request.Context(), user.ID, uint(eventID))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(c, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleWebSocket -> h.svc.CanChat -> %w", err)
		response.RenderErr(c, response.ErrInternalServerError(err))
		return
	}
	if !allowed {
		response.RenderErr(c, response.ErrPermissionDenied(service.ErrNotParticipant))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		conn:    conn,
		send:    make(chan []byte, 256),
		userID:  user.ID,
		eventID: uint(eventID),
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *Client) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for {
		message, ok := <-c.send
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
}

func (c *Client) readPump(h *ChatHandler) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Warn("websocket read failed", zap.Error(err))
			}
			break
		}

		var req request.PostMessageRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			c.sendError("invalid message format")
			continue
		}
		if err := req.Validate(); err != nil {
			c.sendError(err.Error())
			continue
		}

		saved, err := h.svc.PostMessage(context.Background(), c.userID, c.eventID, req.Content)
		if err != nil {
			zap.L().Warn("failed to save chat message", zap.Error(err))
			c.sendError("message could not be saved")
			continue
		}

		payload, err := json.Marshal(saved)
		if err != nil {
			continue
		}

		h.broadcast <- roomMessage{eventID: c.eventID, payload: payload}
	}
}

func (c *Client) sendError(msg string) {
	payload, _ := json.Marshal(map[string]any{
		"type":    "error",
		"message": msg,
	})
	c.trySend(payload)
}

// HandleGetMessages godoc
// @Summary      Get chat messages for an event
// @Tags         events,chat
// @Produce      json
// @Param        eventID  path   int  true   "event ID"
// @Param        limit    query  int  false  "number of messages to retrieve (default 50)"
// @Param        offset   query  int  false  "offset for pagination (default 0)"
// @Success      200  {array}   domain.Message
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/messages [get]
// @Security     BearerAuth
func (h *ChatHandler) HandleGetMessages(c *gin.Context) {
	user, respErr := getUserFromContext(c, h.uSvc)
	if respErr != nil {
		response.RenderErr(c, respErr)
		return
	}

	eventID, err := strconv.ParseUint(c.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(c, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.svc.GetMessages(c.Request.Context(), user.ID, uint(eventID), limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(c, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrNotParticipant):
			response.RenderErr(c, response.ErrPermissionDenied(service.ErrNotParticipant))
		default:
			err = fmt.Errorf("v1.HandleGetMessages -> h.svc.GetMessages -> %w", err)
			response.RenderErr(c, response.ErrInternalServerError(err))
		}
		return
	}

	c.JSON(http.StatusOK, messages)
}

// HandlePostMessage godoc
// @Summary      Post a chat message to an event
// @Tags         events,chat
// @Produce      json
// @Param        eventID  path  int                         true  "event ID"
// @Param        request  body  request.PostMessageRequest  true  "request body"
// @Success      201  {object}  domain.Message
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/messages [post]
// @Security     BearerAuth
func (h *ChatHandler) HandlePostMessage(c *gin.Context) {
	user, respErr := getUserFromContext(c, h.uSvc)
	if respErr != nil {
		response.RenderErr(c, respErr)
		return
	}

	eventID, err := strconv.ParseUint(c.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(c, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	var req request.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RenderErr(c, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(c, response.ErrBadRequest(err))
		return
	}

	message, err := h.svc.PostMessage(c.Request.Context(), user.ID, uint(eventID), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(c, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrNotParticipant):
			response.RenderErr(c, response.ErrPermissionDenied(service.ErrNotParticipant))
		default:
			err = fmt.Errorf("v1.HandlePostMessage -> h.svc.PostMessage -> %w", err)
			response.RenderErr(c, response.ErrInternalServerError(err))
		}
		return
	}

	if payload, err := json.Marshal(message); err == nil {
		h.broadcast <- roomMessage{eventID: uint(eventID), payload: payload}
	}

	c.JSON(http.StatusCreated, message)
}
