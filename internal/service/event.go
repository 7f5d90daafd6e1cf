package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sportconnect/sportconnect-api/internal/domain"
	"github.com/sportconnect/sportconnect-api/internal/repository"
)

var (
	ErrEventNotFound  = repository.ErrEventNotFound
	ErrAlreadyJoined  = repository.ErrAlreadyJoined
	ErrNotJoined      = repository.ErrNotJoined
	ErrEventCancelled = errors.New("event is cancelled")
	ErrNotOrganizer   = errors.New("only the organizer may cancel this event")
	ErrNotParticipant = errors.New("only participants may access the event chat")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event, organizerAward int) (domain.Event, int, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	Find(ctx context.Context, filter domain.EventFilter, callerID uint) ([]domain.Event, error)
	FindParticipation(ctx context.Context, userID, eventID uint) (domain.Participation, error)
	Join(ctx context.Context, userID, eventID uint, points int) (int, error)
	Leave(ctx context.Context, userID, eventID uint) (int, int, error)
	Cancel(ctx context.Context, eventID, organizerID uint, penalty int) error
	ToggleCancelled(ctx context.Context, eventID uint) (bool, error)
	Delete(ctx context.Context, eventID uint) error
}

type MessageRepository interface {
	Create(ctx context.Context, message domain.Message) (domain.Message, error)
	FindByEventID(ctx context.Context, eventID uint, limit, offset int) ([]domain.Message, error)
}

type JoinResult struct {
	AwardedPoints int `json:"awarded_points"`
	NewBalance    int `json:"new_balance"`
}

type LeaveResult struct {
	PointsReversed int `json:"points_reversed"`
	NewBalance     int `json:"new_balance"`
}

type EventService struct {
	repo     EventRepository
	messages MessageRepository
}

func NewEventService(repo EventRepository, messages MessageRepository) *EventService {
	return &EventService{
		repo:     repo,
		messages: messages,
	}
}

// CreateEvent stores a new open event and credits its organizer.
func (s *EventService) CreateEvent(ctx context.Context, event domain.Event, organizerID uint) (domain.Event, error) {
	event.OrganizerID = organizerID
	event.IsCancelled = false

	created, _, err := s.repo.Create(ctx, event, domain.PointsCreateEvent)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

// ListEvents returns events matching the filter. callerID may be zero for
// anonymous listings; joined flags are then all false.
func (s *EventService) ListEvents(ctx context.Context, filter domain.EventFilter, callerID uint) ([]domain.Event, error) {
	events, err := s.repo.Find(ctx, filter, callerID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return events, nil
}

// Join adds the caller to an open event and awards the join points. A second
// join of the same event is a conflict, not a second award.
func (s *EventService) Join(ctx context.Context, userID, eventID uint) (JoinResult, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return JoinResult{}, ErrEventNotFound
		}

		return JoinResult{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if event.IsCancelled {
		return JoinResult{}, ErrEventCancelled
	}

	balance, err := s.repo.Join(ctx, userID, eventID, domain.PointsJoinEvent)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyJoined) {
			return JoinResult{}, ErrAlreadyJoined
		}

		return JoinResult{}, fmt.Errorf("s.repo.Join -> %w", err)
	}

	return JoinResult{
		AwardedPoints: domain.PointsJoinEvent,
		NewBalance:    balance,
	}, nil
}

// Leave removes the caller's participation and reverses exactly the points
// recorded on it at join time.
func (s *EventService) Leave(ctx context.Context, userID, eventID uint) (LeaveResult, error) {
	reversed, balance, err := s.repo.Leave(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotJoined) {
			return LeaveResult{}, ErrNotJoined
		}

		return LeaveResult{}, fmt.Errorf("s.repo.Leave -> %w", err)
	}

	return LeaveResult{
		PointsReversed: reversed,
		NewBalance:     balance,
	}, nil
}

// Cancel flips an open event to cancelled. Organizer only; the organizer pays
// the cancellation penalty. Participants keep their rows and points.
func (s *EventService) Cancel(ctx context.Context, eventID, callerID uint) error {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}

		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if event.OrganizerID != callerID {
		return ErrNotOrganizer
	}

	if event.IsCancelled {
		return ErrEventCancelled
	}

	if err = s.repo.Cancel(ctx, eventID, event.OrganizerID, domain.PointsCancelEvent); err != nil {
		return fmt.Errorf("s.repo.Cancel -> %w", err)
	}

	return nil
}

// ToggleCancelled is the admin escape hatch: it flips the flag in either
// direction with no points side effect.
func (s *EventService) ToggleCancelled(ctx context.Context, eventID uint) (bool, error) {
	cancelled, err := s.repo.ToggleCancelled(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return false, ErrEventNotFound
		}

		return false, fmt.Errorf("s.repo.ToggleCancelled -> %w", err)
	}

	return cancelled, nil
}

// DeleteEvent hard-deletes the event and its participations. Admin only.
func (s *EventService) DeleteEvent(ctx context.Context, eventID uint) error {
	if err := s.repo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// CanChat reports whether the user may read and write the event's chat:
// the organizer and current participants only.
func (s *EventService) CanChat(ctx context.Context, userID, eventID uint) (bool, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return false, ErrEventNotFound
		}

		return false, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if event.OrganizerID == userID {
		return true, nil
	}

	_, err = s.repo.FindParticipation(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotJoined) {
			return false, nil
		}

		return false, fmt.Errorf("s.repo.FindParticipation -> %w", err)
	}

	return true, nil
}

func (s *EventService) GetMessages(ctx context.Context, userID, eventID uint, limit, offset int) ([]domain.Message, error) {
	ok, err := s.CanChat(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotParticipant
	}

	messages, err := s.messages.FindByEventID(ctx, eventID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.messages.FindByEventID -> %w", err)
	}

	return messages, nil
}

func (s *EventService) PostMessage(ctx context.Context, userID, eventID uint, content string) (domain.Message, error) {
	ok, err := s.CanChat(ctx, userID, eventID)
	if err != nil {
		return domain.Message{}, err
	}
	if !ok {
		return domain.Message{}, ErrNotParticipant
	}

	message, err := s.messages.Create(ctx, domain.Message{
		EventID: eventID,
		UserID:  userID,
		Content: content,
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("s.messages.Create -> %w", err)
	}

	return message, nil
}
