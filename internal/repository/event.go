package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sportconnect/sportconnect-api/internal/domain"
	"github.com/sportconnect/sportconnect-api/internal/repository/dao"
)

var (
	ErrEventNotFound = dao.ErrEventNotFound
	ErrAlreadyJoined = dao.ErrAlreadyJoined
	ErrNotJoined     = dao.ErrNotJoined
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event, organizerAward int) (dao.Event, int, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	Find(ctx context.Context, q dao.EventQuery) ([]dao.Event, error)
	CountParticipants(ctx context.Context, eventIDs []uint) (map[uint]int, error)
	FindJoinedEventIDs(ctx context.Context, userID uint, eventIDs []uint) (map[uint]bool, error)
	CountOrganized(ctx context.Context, userID uint) (int, error)
	CountJoined(ctx context.Context, userID uint) (int, error)
	FindParticipation(ctx context.Context, userID, eventID uint) (dao.Participation, error)
	Join(ctx context.Context, userID, eventID uint, points int) (int, error)
	Leave(ctx context.Context, userID, eventID uint) (int, int, error)
	Cancel(ctx context.Context, eventID, organizerID uint, penalty int) error
	ToggleCancelled(ctx context.Context, eventID uint) (bool, error)
	Delete(ctx context.Context, eventID uint) error
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event, organizerAward int) (domain.Event, int, error) {
	created, balance, err := r.dao.Insert(ctx, eventDomainToDao(event), organizerAward)
	if err != nil {
		return domain.Event{}, 0, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventDaoToDomain(created), balance, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return eventDaoToDomain(found), nil
}

// Find lists events matching the filter, annotated with participant counts
// and, when callerID is non-zero, the caller's joined flag.
func (r *EventRepository) Find(ctx context.Context, filter domain.EventFilter, callerID uint) ([]domain.Event, error) {
	found, err := r.dao.Find(ctx, dao.EventQuery{
		Sport:          filter.Sport,
		Level:          filter.Level,
		Gender:         filter.Gender,
		Location:       filter.Location,
		PlaceID:        filter.PlaceID,
		AccessibleOnly: filter.AccessibleOnly,
		IncludePast:    filter.IncludePast,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	ids := make([]uint, 0, len(found))
	for _, e := range found {
		ids = append(ids, e.ID)
	}

	counts, err := r.dao.CountParticipants(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountParticipants -> %w", err)
	}

	joined, err := r.dao.FindJoinedEventIDs(ctx, callerID, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindJoinedEventIDs -> %w", err)
	}

	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		event := eventDaoToDomain(e)
		event.Participants = counts[e.ID]
		event.IsJoined = joined[e.ID]
		events = append(events, event)
	}

	return events, nil
}

func (r *EventRepository) CountOrganized(ctx context.Context, userID uint) (int, error) {
	count, err := r.dao.CountOrganized(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountOrganized -> %w", err)
	}

	return count, nil
}

func (r *EventRepository) CountJoined(ctx context.Context, userID uint) (int, error) {
	count, err := r.dao.CountJoined(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountJoined -> %w", err)
	}

	return count, nil
}

func (r *EventRepository) FindParticipation(ctx context.Context, userID, eventID uint) (domain.Participation, error) {
	found, err := r.dao.FindParticipation(ctx, userID, eventID)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("r.dao.FindParticipation -> %w", err)
	}

	return domain.Participation{
		ID:            found.ID,
		UserID:        found.UserID,
		EventID:       found.EventID,
		PointsAwarded: found.PointsAwarded,
		JoinedAt:      found.JoinedAt,
	}, nil
}

func (r *EventRepository) Join(ctx context.Context, userID, eventID uint, points int) (int, error) {
	balance, err := r.dao.Join(ctx, userID, eventID, points)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Join -> %w", err)
	}

	return balance, nil
}

func (r *EventRepository) Leave(ctx context.Context, userID, eventID uint) (int, int, error) {
	reversed, balance, err := r.dao.Leave(ctx, userID, eventID)
	if err != nil {
		return 0, 0, fmt.Errorf("r.dao.Leave -> %w", err)
	}

	return reversed, balance, nil
}

func (r *EventRepository) Cancel(ctx context.Context, eventID, organizerID uint, penalty int) error {
	if err := r.dao.Cancel(ctx, eventID, organizerID, penalty); err != nil {
		return fmt.Errorf("r.dao.Cancel -> %w", err)
	}

	return nil
}

func (r *EventRepository) ToggleCancelled(ctx context.Context, eventID uint) (bool, error) {
	cancelled, err := r.dao.ToggleCancelled(ctx, eventID)
	if err != nil {
		return false, fmt.Errorf("r.dao.ToggleCancelled -> %w", err)
	}

	return cancelled, nil
}

func (r *EventRepository) Delete(ctx context.Context, eventID uint) error {
	if err := r.dao.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func eventDomainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:               e.ID,
		Sport:            e.Sport,
		Level:            e.Level,
		Gender:           e.Gender,
		Location:         e.Location,
		PlaceID:          e.PlaceID,
		Latitude:         e.Latitude,
		Longitude:        e.Longitude,
		StartsAt:         e.StartsAt,
		TransportStation: e.TransportStation,
		TransportLines:   encodeLines(e.TransportLines),
		IsAccessible:     e.IsAccessible,
		IsCancelled:      e.IsCancelled,
		OrganizerID:      e.OrganizerID,
	}
}

func eventDaoToDomain(e dao.Event) domain.Event {
	event := domain.Event{
		ID:               e.ID,
		Sport:            e.Sport,
		Level:            e.Level,
		Gender:           e.Gender,
		Location:         e.Location,
		PlaceID:          e.PlaceID,
		Latitude:         e.Latitude,
		Longitude:        e.Longitude,
		StartsAt:         e.StartsAt,
		TransportStation: e.TransportStation,
		TransportLines:   decodeLines(e.TransportLines),
		IsAccessible:     e.IsAccessible,
		IsCancelled:      e.IsCancelled,
		OrganizerID:      e.OrganizerID,
		OrganizerName:    e.Organizer.Username,
		CreatedAt:        e.CreatedAt,
	}

	if e.Place != nil {
		place := placeDaoToDomain(*e.Place)
		event.Place = &place
	}

	return event
}

func encodeLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	// Stored as JSON, e.g. ["M4","M6","RER B"].
	b, err := json.Marshal(lines)
	if err != nil {
		return ""
	}

	return string(b)
}

func decodeLines(s string) []string {
	if s == "" {
		return nil
	}

	var lines []string
	if err := json.Unmarshal([]byte(s), &lines); err != nil {
		return nil
	}

	return lines
}
