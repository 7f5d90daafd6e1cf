package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Message struct {
	ID uint `gorm:"primaryKey"`

	EventID uint `gorm:"not null;index"`
	UserID  uint `gorm:"not null"`
	User    User `gorm:"foreignKey:UserID"`

	Content string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type MessageDAO struct {
	db *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{
		db: db,
	}
}

func (d *MessageDAO) Insert(ctx context.Context, message Message) (Message, error) {
	result := d.db.WithContext(ctx).Create(&message)
	if result.Error != nil {
		return Message{}, result.Error
	}

	// Reload with the author for display fields.
	err := d.db.WithContext(ctx).Preload("User").First(&message, message.ID).Error
	if err != nil {
		return Message{}, err
	}

	return message, nil
}

func (d *MessageDAO) FindByEventID(ctx context.Context, eventID uint, limit, offset int) ([]Message, error) {
	var messages []Message

	result := d.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages)
	if result.Error != nil {
		return nil, result.Error
	}

	return messages, nil
}
