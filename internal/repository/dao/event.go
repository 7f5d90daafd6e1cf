package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrAlreadyJoined = errors.New("already joined this event")
	ErrNotJoined     = errors.New("not joined this event")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Sport    string `gorm:"not null"`
	Level    string `gorm:"not null"`
	Gender   string `gorm:"not null;default:'mixed'"`
	Location string `gorm:"not null"`

	PlaceID   *uint `gorm:"index"`
	Place     *Place
	Latitude  *float64
	Longitude *float64

	StartsAt         time.Time `gorm:"not null"`
	TransportStation string
	TransportLines   string // JSON-encoded list

	IsAccessible bool `gorm:"not null;default:false"`
	IsCancelled  bool `gorm:"not null;default:false"`

	OrganizerID uint `gorm:"not null;index"`
	Organizer   User `gorm:"foreignKey:OrganizerID"`

	CreatedAt time.Time
}

type Participation struct {
	ID uint `gorm:"primaryKey"`

	UserID  uint `gorm:"not null;uniqueIndex:uni_participations_user_event"`
	EventID uint `gorm:"not null;uniqueIndex:uni_participations_user_event"`

	PointsAwarded int `gorm:"not null;default:50"`

	JoinedAt time.Time `gorm:"not null;autoCreateTime"`
}

// EventQuery narrows the event listing. Zero values mean "any".
type EventQuery struct {
	Sport          string
	Level          string
	Gender         string
	Location       string
	PlaceID        uint
	AccessibleOnly bool
	IncludePast    bool
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

// Insert creates the event and credits the organizer in the same transaction.
// Returns the stored event and the organizer's new balance.
func (d *EventDAO) Insert(ctx context.Context, event Event, organizerAward int) (Event, int, error) {
	var balance int

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		result := tx.Raw(
			`UPDATE users SET points = GREATEST(0, points + ?), updated_at = NOW() WHERE id = ? RETURNING points`,
			organizerAward, event.OrganizerID,
		).Scan(&balance)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
	if err != nil {
		return Event{}, 0, err
	}

	return event, balance, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Preload("Place").
		Preload("Organizer").
		First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) Find(ctx context.Context, q EventQuery) ([]Event, error) {
	tx := d.db.WithContext(ctx).
		Preload("Place").
		Preload("Organizer")

	if q.Sport != "" {
		tx = tx.Where("sport = ?", q.Sport)
	}
	if q.Level != "" {
		tx = tx.Where("level = ?", q.Level)
	}
	if q.Gender != "" {
		tx = tx.Where("gender = ?", q.Gender)
	}
	if q.Location != "" {
		tx = tx.Where("location ILIKE ?", "%"+q.Location+"%")
	}
	if q.PlaceID != 0 {
		tx = tx.Where("place_id = ?", q.PlaceID)
	}
	if q.AccessibleOnly {
		tx = tx.Where("is_accessible = TRUE")
	}
	if !q.IncludePast {
		tx = tx.Where("starts_at >= NOW()")
	}

	var events []Event
	result := tx.Order("starts_at ASC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) CountParticipants(ctx context.Context, eventIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		EventID uint
		Total   int
	}

	result := d.db.WithContext(ctx).
		Model(&Participation{}).
		Select("event_id, COUNT(*) AS total").
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	for _, row := range rows {
		counts[row.EventID] = row.Total
	}

	return counts, nil
}

func (d *EventDAO) FindJoinedEventIDs(ctx context.Context, userID uint, eventIDs []uint) (map[uint]bool, error) {
	joined := make(map[uint]bool, len(eventIDs))
	if userID == 0 || len(eventIDs) == 0 {
		return joined, nil
	}

	var ids []uint
	result := d.db.WithContext(ctx).
		Model(&Participation{}).
		Where("user_id = ? AND event_id IN ?", userID, eventIDs).
		Pluck("event_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	for _, id := range ids {
		joined[id] = true
	}

	return joined, nil
}

func (d *EventDAO) CountOrganized(ctx context.Context, userID uint) (int, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Event{}).
		Where("organizer_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(count), nil
}

func (d *EventDAO) CountJoined(ctx context.Context, userID uint) (int, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Participation{}).
		Where("user_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(count), nil
}

func (d *EventDAO) FindParticipation(ctx context.Context, userID, eventID uint) (Participation, error) {
	var p Participation

	result := d.db.WithContext(ctx).
		First(&p, "user_id = ? AND event_id = ?", userID, eventID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participation{}, ErrNotJoined
		}

		return Participation{}, result.Error
	}

	return p, nil
}

// Join inserts the participation and credits the user atomically. The unique
// (user, event) constraint is what rejects concurrent duplicate joins.
func (d *EventDAO) Join(ctx context.Context, userID, eventID uint, points int) (int, error) {
	var balance int

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p := Participation{
			UserID:        userID,
			EventID:       eventID,
			PointsAwarded: points,
		}

		if err := tx.Create(&p).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case pgerrcode.UniqueViolation:
					return ErrAlreadyJoined
				case pgerrcode.ForeignKeyViolation:
					return ErrEventNotFound
				}
			}

			return err
		}

		result := tx.Raw(
			`UPDATE users SET points = GREATEST(0, points + ?), updated_at = NOW() WHERE id = ? RETURNING points`,
			points, userID,
		).Scan(&balance)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return balance, nil
}

// Leave deletes the participation and reverses exactly the points it awarded,
// in one transaction. Returns the reversed amount and the new balance.
func (d *EventDAO) Leave(ctx context.Context, userID, eventID uint) (int, int, error) {
	var (
		reversed int
		balance  int
	)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Participation
		err := tx.First(&p, "user_id = ? AND event_id = ?", userID, eventID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotJoined
			}

			return err
		}

		if err = tx.Delete(&p).Error; err != nil {
			return err
		}

		reversed = p.PointsAwarded

		result := tx.Raw(
			`UPDATE users SET points = GREATEST(0, points + ?), updated_at = NOW() WHERE id = ? RETURNING points`,
			-p.PointsAwarded, userID,
		).Scan(&balance)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return reversed, balance, nil
}

// Cancel flags the event and charges the organizer the penalty atomically.
// Existing participations are left untouched.
func (d *EventDAO) Cancel(ctx context.Context, eventID, organizerID uint, penalty int) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Event{}).
			Where("id = ?", eventID).
			Update("is_cancelled", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}

		return tx.Exec(
			`UPDATE users SET points = GREATEST(0, points + ?), updated_at = NOW() WHERE id = ?`,
			penalty, organizerID,
		).Error
	})
}

// ToggleCancelled flips the cancelled flag unconditionally. No points effect.
func (d *EventDAO) ToggleCancelled(ctx context.Context, eventID uint) (bool, error) {
	var cancelled bool

	result := d.db.WithContext(ctx).Raw(
		`UPDATE events SET is_cancelled = NOT is_cancelled WHERE id = ? RETURNING is_cancelled`,
		eventID,
	).Scan(&cancelled)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, ErrEventNotFound
	}

	return cancelled, nil
}

// Delete removes the event with its participations and messages. Hard delete,
// admin only. Awarded points are not refunded.
func (d *EventDAO) Delete(ctx context.Context, eventID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&Participation{}).Error; err != nil {
			return err
		}

		if err := tx.Where("event_id = ?", eventID).Delete(&Message{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Event{}, eventID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}

		return nil
	})
}
