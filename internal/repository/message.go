package repository

import (
	"context"
	"fmt"

	"github.com/sportconnect/sportconnect-api/internal/domain"
	"github.com/sportconnect/sportconnect-api/internal/repository/dao"
)

type MessageDAO interface {
	Insert(ctx context.Context, message dao.Message) (dao.Message, error)
	FindByEventID(ctx context.Context, eventID uint, limit, offset int) ([]dao.Message, error)
}

type MessageRepository struct {
	dao MessageDAO
}

func NewMessageRepository(dao MessageDAO) *MessageRepository {
	return &MessageRepository{
		dao: dao,
	}
}

func (r *MessageRepository) Create(ctx context.Context, message domain.Message) (domain.Message, error) {
	created, err := r.dao.Insert(ctx, dao.Message{
		EventID: message.EventID,
		UserID:  message.UserID,
		Content: message.Content,
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return messageDaoToDomain(created), nil
}

func (r *MessageRepository) FindByEventID(ctx context.Context, eventID uint, limit, offset int) ([]domain.Message, error) {
	found, err := r.dao.FindByEventID(ctx, eventID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	messages := make([]domain.Message, 0, len(found))
	for _, m := range found {
		messages = append(messages, messageDaoToDomain(m))
	}

	return messages, nil
}

func messageDaoToDomain(m dao.Message) domain.Message {
	return domain.Message{
		ID:          m.ID,
		EventID:     m.EventID,
		UserID:      m.UserID,
		Username:    m.User.Username,
		AvatarColor: m.User.AvatarColor,
		Content:     m.Content,
		CreatedAt:   m.CreatedAt,
	}
}
