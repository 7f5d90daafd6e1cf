package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sportconnect/sportconnect-api/internal/api/handler/v1/request"
	"github.com/sportconnect/sportconnect-api/internal/api/handler/v1/response"
	"github.com/sportconnect/sportconnect-api/internal/service"
)

type CoachService interface {
	Ask(ctx context.Context, question string) (string, error)
}

type CoachHandler struct {
	svc CoachService
}

func NewCoachHandler(svc CoachService) *CoachHandler {
	return &CoachHandler{
		svc: svc,
	}
}

// HandleAskCoach godoc
// @Summary      Ask the virtual sport coach a question
// @Tags         coach
// @Produce      json
// @Param        request  body  request.AskCoachRequest  true  "request body"
// @Success      200  {object}  response.CoachResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /coach/ask [post]
// @Security     BearerAuth
func (h *CoachHandler) HandleAskCoach(ctx *gin.Context) {
	var req request.AskCoachRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	answer, err := h.svc.Ask(ctx.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, service.ErrCoachUnavailable) {
			response.RenderErr(ctx, response.ErrBadGateway(service.ErrCoachUnavailable))
			return
		}

		err = fmt.Errorf("v1.HandleAskCoach -> h.svc.Ask -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.CoachResponse{Answer: answer})
}
