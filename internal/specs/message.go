package specs

import (
	"marketplace/internal/model"
	"marketplace/internal/specification"
)

type ConversationParams struct {
	UserID     int64
	PeerID     int64
	UnreadOnly bool
	Paging
}

func between(a, b int64) specification.Criterion {
	return specification.AnyOf(
		specification.All(specification.Eq("sender_id", a), specification.Eq("receiver_id", b)),
		specification.All(specification.Eq("sender_id", b), specification.Eq("receiver_id", a)),
	)
}

func conversationCriteria(p ConversationParams) specification.Criterion {
	terms := []specification.Criterion{between(p.UserID, p.PeerID)}
	if p.UnreadOnly {
		terms = append(terms, specification.IsNull("read_at"))
	}
	return specification.All(terms...)
}

// NewConversationSpec pages the messages exchanged by two users, newest first.
func NewConversationSpec(p ConversationParams) specification.Specification[model.Message] {
	pg := p.Paging.Normalize()
	return specification.New[model.Message](conversationCriteria(p)).
		OrderByDescending("sent_at").
		Page(pg.PageIndex, pg.PageSize).
		Build()
}

func NewConversationCountSpec(p ConversationParams) specification.Specification[model.Message] {
	return specification.New[model.Message](conversationCriteria(p)).Build()
}

// UnreadFrom matches messages from peer to user that user has not read.
func UnreadFrom(userID, peerID int64) specification.Criterion {
	return specification.All(
		specification.Eq("receiver_id", userID),
		specification.Eq("sender_id", peerID),
		specification.IsNull("read_at"),
	)
}

// NewUnreadCountSpec counts every unread message addressed to user.
func NewUnreadCountSpec(userID int64) specification.Specification[model.Message] {
	return specification.New[model.Message](specification.All(
		specification.Eq("receiver_id", userID),
		specification.IsNull("read_at"),
	)).Build()
}
