package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/model"
	"marketplace/internal/repository"
	"marketplace/internal/specs"
)

type NewMessage struct {
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	Body       string `json:"body"`
}

// MessagingService handles direct messages between users.
type MessagingService interface {
	// Conversation pages the messages exchanged by p.UserID and p.PeerID in
	// either direction, newest first.
	Conversation(ctx context.Context, p specs.ConversationParams) (*repository.PaginationResponse[model.Message], error)

	Send(ctx context.Context, m NewMessage) (*model.Message, error)

	// MarkConversationRead stamps every unread message from peerID to userID
	// and returns how many were marked.
	MarkConversationRead(ctx context.Context, userID, peerID int64) (int, error)

	UnreadCount(ctx context.Context, userID int64) (int64, error)
}

type messagingService struct {
	uow *repository.Factory
	now func() time.Time
}

var _ MessagingService = (*messagingService)(nil)

func NewMessagingService(uow *repository.Factory) MessagingService {
	return &messagingService{uow: uow, now: func() time.Time { return time.Now().UTC() }}
}

func (s *messagingService) Conversation(ctx context.Context, p specs.ConversationParams) (*repository.PaginationResponse[model.Message], error) {
	repo := repository.For[model.Message, string](s.uow.New())
	return page(ctx, repo, specs.NewConversationSpec(p), specs.NewConversationCountSpec(p), p.Paging)
}

func (s *messagingService) Send(ctx context.Context, m NewMessage) (*model.Message, error) {
	if strings.TrimSpace(m.Body) == "" {
		return nil, fmt.Errorf("message body is empty: %w", ErrInvalidInput)
	}
	if m.SenderID == m.ReceiverID {
		return nil, fmt.Errorf("sender and receiver are the same user: %w", ErrInvalidInput)
	}

	u := s.uow.New()
	users := repository.For[model.User, int64](u)
	for _, id := range []int64{m.SenderID, m.ReceiverID} {
		usr, err := users.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if usr == nil {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
	}

	msg := &model.Message{
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Body:       m.Body,
		SentAt:     s.now(),
	}
	repository.For[model.Message, string](u).Add(msg)
	if _, err := u.Complete(ctx); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return msg, nil
}

func (s *messagingService) MarkConversationRead(ctx context.Context, userID, peerID int64) (int, error) {
	u := s.uow.New()
	defer u.Rollback()
	if err := u.Begin(ctx); err != nil {
		return 0, err
	}

	repo := repository.For[model.Message, string](u)
	unread, err := repo.Find(ctx, specs.UnreadFrom(userID, peerID))
	if err != nil {
		return 0, err
	}

	readAt := s.now()
	for i := range unread {
		unread[i].ReadAt = &readAt
		repo.Update(&unread[i])
	}
	if _, err := u.Complete(ctx); err != nil {
		return 0, fmt.Errorf("mark conversation read: %w", err)
	}
	return len(unread), nil
}

func (s *messagingService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	repo := repository.For[model.Message, string](s.uow.New())
	return repo.GetCount(ctx, specs.NewUnreadCountSpec(userID))
}
