package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportconnect/sportconnect-api/internal/api/handler/v1/response"
	"github.com/sportconnect/sportconnect-api/internal/api/middleware"
	"github.com/sportconnect/sportconnect-api/internal/domain"
	"github.com/sportconnect/sportconnect-api/internal/service"
)

type stubUserService struct {
	user domain.User
}

func (s *stubUserService) GetUser(_ context.Context, _ uint) (domain.User, error) {
	return s.user, nil
}

func (s *stubUserService) GetProfile(_ context.Context, _ uint) (service.Profile, error) {
	return service.Profile{User: s.user}, nil
}

func (s *stubUserService) Leaderboard(_ context.Context, _ int) ([]domain.User, error) {
	return []domain.User{s.user}, nil
}

type stubEventService struct {
	joinFn   func(ctx context.Context, userID, eventID uint) (service.JoinResult, error)
	leaveFn  func(ctx context.Context, userID, eventID uint) (service.LeaveResult, error)
	cancelFn func(ctx context.Context, eventID, callerID uint) error
	getFn    func(ctx context.Context, id uint) (domain.Event, error)
}

func (s *stubEventService) CreateEvent(_ context.Context, event domain.Event, organizerID uint) (domain.Event, error) {
	event.ID = 1
	event.OrganizerID = organizerID

	return event, nil
}

func (s *stubEventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	return s.getFn(ctx, id)
}

func (s *stubEventService) ListEvents(_ context.Context, _ domain.EventFilter, _ uint) ([]domain.Event, error) {
	return nil, nil
}

func (s *stubEventService) Join(ctx context.Context, userID, eventID uint) (service.JoinResult, error) {
	return s.joinFn(ctx, userID, eventID)
}

func (s *stubEventService) Leave(ctx context.Context, userID, eventID uint) (service.LeaveResult, error) {
	return s.leaveFn(ctx, userID, eventID)
}

func (s *stubEventService) Cancel(ctx context.Context, eventID, callerID uint) error {
	return s.cancelFn(ctx, eventID, callerID)
}

func newEventTestRouter(svc EventService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewEventHandler(svc, &stubUserService{user: domain.User{ID: 1, Username: "marie"}})

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, uint(1))
	})
	router.GET("/events/:eventID", handler.HandleGetEvent)
	router.POST("/events/:eventID/join", handler.HandleJoinEvent)
	router.POST("/events/:eventID/leave", handler.HandleLeaveEvent)
	router.POST("/events/:eventID/cancel", handler.HandleCancelEvent)

	return router
}

func TestHandleJoinEvent(t *testing.T) {
	router := newEventTestRouter(&stubEventService{
		joinFn: func(_ context.Context, userID, eventID uint) (service.JoinResult, error) {
			assert.Equal(t, uint(1), userID)
			assert.Equal(t, uint(5), eventID)

			return service.JoinResult{AwardedPoints: domain.PointsJoinEvent, NewBalance: 70}, nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/events/5/join", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got response.JoinEventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.PointsJoinEvent, got.AwardedPoints)
	assert.Equal(t, 70, got.TotalPoints)
}

func TestHandleJoinEvent_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"not found", service.ErrEventNotFound, http.StatusNotFound},
		{"already joined", service.ErrAlreadyJoined, http.StatusConflict},
		{"cancelled", service.ErrEventCancelled, http.StatusConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newEventTestRouter(&stubEventService{
				joinFn: func(_ context.Context, _, _ uint) (service.JoinResult, error) {
					return service.JoinResult{}, tc.svcErr
				},
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/events/5/join", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestHandleLeaveEvent_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"not found", service.ErrEventNotFound, http.StatusNotFound},
		{"not joined", service.ErrNotJoined, http.StatusConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newEventTestRouter(&stubEventService{
				leaveFn: func(_ context.Context, _, _ uint) (service.LeaveResult, error) {
					return service.LeaveResult{}, tc.svcErr
				},
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/events/5/leave", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestHandleCancelEvent_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"not found", service.ErrEventNotFound, http.StatusNotFound},
		{"not organizer", service.ErrNotOrganizer, http.StatusForbidden},
		{"already cancelled", service.ErrEventCancelled, http.StatusConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newEventTestRouter(&stubEventService{
				cancelFn: func(_ context.Context, _, _ uint) error {
					return tc.svcErr
				},
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/events/5/cancel", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestHandleGetEvent_InvalidID(t *testing.T) {
	router := newEventTestRouter(&stubEventService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
