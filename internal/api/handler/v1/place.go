package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sportconnect/sportconnect-api/internal/api/handler/v1/response"
	"github.com/sportconnect/sportconnect-api/internal/domain"
	"github.com/sportconnect/sportconnect-api/internal/service"
)

type PlaceService interface {
	ListPlaces(ctx context.Context, includeInactive bool) ([]domain.Place, error)
	GetPlace(ctx context.Context, id uint) (domain.Place, error)
	CreatePlace(ctx context.Context, place domain.Place) (domain.Place, error)
	UpdatePlace(ctx context.Context, place domain.Place) (domain.Place, error)
	DeactivatePlace(ctx context.Context, id uint) error
	RestorePlace(ctx context.Context, id uint) error
}

type PlaceHandler struct {
	svc PlaceService
}

func NewPlaceHandler(svc PlaceService) *PlaceHandler {
	return &PlaceHandler{
		svc: svc,
	}
}

// HandleListPlaces godoc
// @Summary      List active places
// @Tags         places
// @Produce      json
// @Success      200  {array}   domain.Place
// @Failure      500  {object}  response.Err
// @Router       /places [get]
func (h *PlaceHandler) HandleListPlaces(ctx *gin.Context) {
	places, err := h.svc.ListPlaces(ctx.Request.Context(), false)
	if err != nil {
		err = fmt.Errorf("v1.HandleListPlaces -> h.svc.ListPlaces -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, places)
}

// HandleGetPlace godoc
// @Summary      Get a single place
// @Tags         places
// @Produce      json
// @Param        placeID  path  int  true  "place ID"
// @Success      200  {object}  domain.Place
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /places/{placeID} [get]
func (h *PlaceHandler) HandleGetPlace(ctx *gin.Context) {
	placeID, err := strconv.ParseUint(ctx.Param("placeID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid place ID: %w", err)))
		return
	}

	place, err := h.svc.GetPlace(ctx.Request.Context(), uint(placeID))
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("place", "ID", placeID))
			return
		}

		err = fmt.Errorf("v1.HandleGetPlace -> h.svc.GetPlace -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, place)
}
