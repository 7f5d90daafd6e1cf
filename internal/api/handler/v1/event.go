package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sportconnect/sportconnect-api/internal/api/handler/v1/request"
	"github.com/sportconnect/sportconnect-api/internal/api/handler/v1/response"
	"github.com/sportconnect/sportconnect-api/internal/domain"
	"github.com/sportconnect/sportconnect-api/internal/service"
)

type EventService interface {
	CreateEvent(ctx context.Context, event domain.Event, organizerID uint) (domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	ListEvents(ctx context.Context, filter domain.EventFilter, callerID uint) ([]domain.Event, error)
	Join(ctx context.Context, userID, eventID uint) (service.JoinResult, error)
	Leave(ctx context.Context, userID, eventID uint) (service.LeaveResult, error)
	Cancel(ctx context.Context, eventID, callerID uint) error
}

type EventHandler struct {
	svc  EventService
	uSvc UserService
}

func NewEventHandler(svc EventService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListEvents godoc
// @Summary      List upcoming events
// @Tags         events
// @Produce      json
// @Param        sport        query  string  false  "filter by sport"
// @Param        level        query  string  false  "filter by level"
// @Param        gender       query  string  false  "filter by gender"
// @Param        location     query  string  false  "filter by location substring"
// @Param        place_id     query  int     false  "filter by place"
// @Param        accessible   query  bool    false  "only PMR-accessible events"
// @Param        include_past query  bool    false  "include events that already started"
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [get]
// @Security     BearerAuth
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	placeID, _ := strconv.ParseUint(ctx.Query("place_id"), 10, 32)
	accessible, _ := strconv.ParseBool(ctx.DefaultQuery("accessible", "false"))
	includePast, _ := strconv.ParseBool(ctx.DefaultQuery("include_past", "false"))

	filter := domain.EventFilter{
		Sport:          ctx.Query("sport"),
		Level:          ctx.Query("level"),
		Gender:         ctx.Query("gender"),
		Location:       ctx.Query("location"),
		PlaceID:        uint(placeID),
		AccessibleOnly: accessible,
		IncludePast:    includePast,
	}

	events, err := h.svc.ListEvents(ctx.Request.Context(), filter, user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get a single event
// @Tags         events
// @Produce      json
// @Param        eventID  path  int  true  "event ID"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleCreateEvent godoc
// @Summary      Create a new event
// @Tags         events
// @Produce      json
// @Param        request  body  request.CreateEventRequest  true  "request body"
// @Success      201  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	startsAt, err := req.ParseStartsAt()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid starts_at: %w", err)))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), domain.Event{
		Sport:            req.Sport,
		Level:            req.Level,
		Gender:           req.Gender,
		Location:         req.Location,
		PlaceID:          req.PlaceID,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		StartsAt:         startsAt,
		TransportStation: req.TransportStation,
		TransportLines:   req.TransportLines,
		IsAccessible:     req.IsAccessible,
	}, user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleJoinEvent godoc
// @Summary      Join an event
// @Tags         events
// @Produce      json
// @Param        eventID  path  int  true  "event ID"
// @Success      200  {object}  response.JoinEventResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/join [post]
// @Security     BearerAuth
func (h *EventHandler) HandleJoinEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	result, err := h.svc.Join(ctx.Request.Context(), user.ID, uint(eventID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrAlreadyJoined):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyJoined))
		case errors.Is(err, service.ErrEventCancelled):
			response.RenderErr(ctx, response.ErrConflict(service.ErrEventCancelled))
		default:
			err = fmt.Errorf("v1.HandleJoinEvent -> h.svc.Join -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.JoinEventResponse{
		Message:       "event joined",
		AwardedPoints: result.AwardedPoints,
		TotalPoints:   result.NewBalance,
	})
}

// HandleLeaveEvent godoc
// @Summary      Leave an event
// @Tags         events
// @Produce      json
// @Param        eventID  path  int  true  "event ID"
// @Success      200  {object}  response.LeaveEventResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/leave [post]
// @Security     BearerAuth
func (h *EventHandler) HandleLeaveEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	result, err := h.svc.Leave(ctx.Request.Context(), user.ID, uint(eventID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrNotJoined):
			response.RenderErr(ctx, response.ErrConflict(service.ErrNotJoined))
		default:
			err = fmt.Errorf("v1.HandleLeaveEvent -> h.svc.Leave -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.LeaveEventResponse{
		Message:        "event left",
		PointsReversed: result.PointsReversed,
		TotalPoints:    result.NewBalance,
	})
}

// HandleCancelEvent godoc
// @Summary      Cancel an event as its organizer
// @Tags         events
// @Produce      json
// @Param        eventID  path  int  true  "event ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/cancel [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCancelEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	err = h.svc.Cancel(ctx.Request.Context(), uint(eventID), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrNotOrganizer):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotOrganizer))
		case errors.Is(err, service.ErrEventCancelled):
			response.RenderErr(ctx, response.ErrConflict(service.ErrEventCancelled))
		default:
			err = fmt.Errorf("v1.HandleCancelEvent -> h.svc.Cancel -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "event cancelled"})
}
