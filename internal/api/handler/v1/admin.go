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

type AdminUserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	SetAdmin(ctx context.Context, actor domain.User, targetID uint, isAdmin bool) error
	ResetPoints(ctx context.Context, userID uint) error
	DeleteUser(ctx context.Context, actor domain.User, targetID uint) error
}

type AdminEventService interface {
	ToggleCancelled(ctx context.Context, eventID uint) (bool, error)
	DeleteEvent(ctx context.Context, eventID uint) error
}

type AdminHandler struct {
	uSvc    AdminUserService
	userSvc UserService
	eSvc    AdminEventService
	pSvc    PlaceService
}

func NewAdminHandler(uSvc AdminUserService, userSvc UserService, eSvc AdminEventService, pSvc PlaceService) *AdminHandler {
	return &AdminHandler{
		uSvc:    uSvc,
		userSvc: userSvc,
		eSvc:    eSvc,
		pSvc:    pSvc,
	}
}

// HandleListUsers godoc
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/users [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleListUsers(ctx *gin.Context) {
	users, err := h.uSvc.ListUsers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListUsers -> h.uSvc.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleSetAdmin godoc
// @Summary      Grant or revoke another user's admin flag
// @Tags         admin
// @Produce      json
// @Param        userID   path  int                      true  "user ID"
// @Param        request  body  request.SetAdminRequest  true  "request body"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/users/{userID}/admin [put]
// @Security     BearerAuth
func (h *AdminHandler) HandleSetAdmin(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.userSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	targetID, err := strconv.ParseUint(ctx.Param("userID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid user ID: %w", err)))
		return
	}

	var req request.SetAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.uSvc.SetAdmin(ctx.Request.Context(), actor, uint(targetID), req.IsAdmin)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", targetID))
		case errors.Is(err, service.ErrSelfAdminChange):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrSelfAdminChange))
		default:
			err = fmt.Errorf("v1.HandleSetAdmin -> h.uSvc.SetAdmin -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "admin flag updated"})
}

// HandleResetPoints godoc
// @Summary      Reset a user's points to zero
// @Tags         admin
// @Produce      json
// @Param        userID  path  int  true  "user ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/users/{userID}/reset-points [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleResetPoints(ctx *gin.Context) {
	targetID, err := strconv.ParseUint(ctx.Param("userID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid user ID: %w", err)))
		return
	}

	err = h.uSvc.ResetPoints(ctx.Request.Context(), uint(targetID))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", targetID))
			return
		}

		err = fmt.Errorf("v1.HandleResetPoints -> h.uSvc.ResetPoints -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "points reset"})
}

// HandleDeleteUser godoc
// @Summary      Delete a user and everything they own
// @Tags         admin
// @Produce      json
// @Param        userID  path  int  true  "user ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/users/{userID} [delete]
// @Security     BearerAuth
func (h *AdminHandler) HandleDeleteUser(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.userSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	targetID, err := strconv.ParseUint(ctx.Param("userID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid user ID: %w", err)))
		return
	}

	err = h.uSvc.DeleteUser(ctx.Request.Context(), actor, uint(targetID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", targetID))
		case errors.Is(err, service.ErrSelfAdminChange):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrSelfAdminChange))
		default:
			err = fmt.Errorf("v1.HandleDeleteUser -> h.uSvc.DeleteUser -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// HandleToggleEventCancelled godoc
// @Summary      Toggle an event's cancelled flag
// @Tags         admin
// @Produce      json
// @Param        eventID  path  int  true  "event ID"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/events/{eventID}/toggle-cancel [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleToggleEventCancelled(ctx *gin.Context) {
	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	cancelled, err := h.eSvc.ToggleCancelled(ctx.Request.Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleToggleEventCancelled -> h.eSvc.ToggleCancelled -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"is_cancelled": cancelled})
}

// HandleDeleteEvent godoc
// @Summary      Delete an event with its participations and messages
// @Tags         admin
// @Produce      json
// @Param        eventID  path  int  true  "event ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/events/{eventID} [delete]
// @Security     BearerAuth
func (h *AdminHandler) HandleDeleteEvent(ctx *gin.Context) {
	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	err = h.eSvc.DeleteEvent(ctx.Request.Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteEvent -> h.eSvc.DeleteEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// HandleListAllPlaces godoc
// @Summary      List all places including deactivated ones
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.Place
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/places [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleListAllPlaces(ctx *gin.Context) {
	places, err := h.pSvc.ListPlaces(ctx.Request.Context(), true)
	if err != nil {
		err = fmt.Errorf("v1.HandleListAllPlaces -> h.pSvc.ListPlaces -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, places)
}

// HandleCreatePlace godoc
// @Summary      Create a place
// @Tags         admin
// @Produce      json
// @Param        request  body  request.CreatePlaceRequest  true  "request body"
// @Success      201  {object}  domain.Place
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/places [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleCreatePlace(ctx *gin.Context) {
	var req request.CreatePlaceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	place, err := h.pSvc.CreatePlace(ctx.Request.Context(), domain.Place{
		Name:             req.Name,
		Address:          req.Address,
		City:             req.City,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Sports:           req.Sports,
		IsPMRAccessible:  req.IsPMRAccessible,
		TransportStation: req.TransportStation,
		TransportLines:   req.TransportLines,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreatePlace -> h.pSvc.CreatePlace -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, place)
}

// HandleUpdatePlace godoc
// @Summary      Update a place
// @Tags         admin
// @Produce      json
// @Param        placeID  path  int                         true  "place ID"
// @Param        request  body  request.UpdatePlaceRequest  true  "request body"
// @Success      200  {object}  domain.Place
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/places/{placeID} [put]
// @Security     BearerAuth
func (h *AdminHandler) HandleUpdatePlace(ctx *gin.Context) {
	placeID, err := strconv.ParseUint(ctx.Param("placeID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid place ID: %w", err)))
		return
	}

	var req request.UpdatePlaceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	place, err := h.pSvc.GetPlace(ctx.Request.Context(), uint(placeID))
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("place", "ID", placeID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdatePlace -> h.pSvc.GetPlace -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	applyPlaceUpdates(&place, req)

	updated, err := h.pSvc.UpdatePlace(ctx.Request.Context(), place)
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdatePlace -> h.pSvc.UpdatePlace -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func applyPlaceUpdates(place *domain.Place, req request.UpdatePlaceRequest) {
	if req.Name != nil {
		place.Name = *req.Name
	}
	if req.Address != nil {
		place.Address = *req.Address
	}
	if req.City != nil {
		place.City = *req.City
	}
	if req.Latitude != nil {
		place.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		place.Longitude = req.Longitude
	}
	if req.Sports != nil {
		place.Sports = *req.Sports
	}
	if req.IsPMRAccessible != nil {
		place.IsPMRAccessible = *req.IsPMRAccessible
	}
	if req.TransportStation != nil {
		place.TransportStation = *req.TransportStation
	}
	if req.TransportLines != nil {
		place.TransportLines = *req.TransportLines
	}
}

// HandleDeactivatePlace godoc
// @Summary      Deactivate a place
// @Tags         admin
// @Produce      json
// @Param        placeID  path  int  true  "place ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/places/{placeID}/deactivate [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleDeactivatePlace(ctx *gin.Context) {
	placeID, err := strconv.ParseUint(ctx.Param("placeID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid place ID: %w", err)))
		return
	}

	err = h.pSvc.DeactivatePlace(ctx.Request.Context(), uint(placeID))
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("place", "ID", placeID))
			return
		}

		err = fmt.Errorf("v1.HandleDeactivatePlace -> h.pSvc.DeactivatePlace -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "place deactivated"})
}

// HandleRestorePlace godoc
// @Summary      Restore a deactivated place
// @Tags         admin
// @Produce      json
// @Param        placeID  path  int  true  "place ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/places/{placeID}/restore [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleRestorePlace(ctx *gin.Context) {
	placeID, err := strconv.ParseUint(ctx.Param("placeID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid place ID: %w", err)))
		return
	}

	err = h.pSvc.RestorePlace(ctx.Request.Context(), uint(placeID))
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("place", "ID", placeID))
			return
		}

		err = fmt.Errorf("v1.HandleRestorePlace -> h.pSvc.RestorePlace -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "place restored"})
}
