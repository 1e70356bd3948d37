package handler

import (
	"github.com/gofiber/fiber/v2"

	"marketplace/internal/model"
	"marketplace/internal/repository"
	"marketplace/internal/service"
	"marketplace/internal/specs"
)

// messageView is a message as seen by one side of the conversation.
type messageView struct {
	model.Message
	Direction string `json:"direction"`
}

func viewFor(userID int64) func(model.Message) messageView {
	return func(m model.Message) messageView {
		dir := "received"
		if m.SenderID == userID {
			dir = "sent"
		}
		return messageView{Message: m, Direction: dir}
	}
}

type conversationQuery struct {
	PageQuery
	UserID     int64 `query:"userId"`
	PeerID     int64 `query:"peerId"`
	UnreadOnly bool  `query:"unreadOnly"`
}

// ListMessages pages the conversation between userId and peerId, newest first.
// Each message carries its direction relative to userId.
//
// @Summary Conversation
// @Tags messaging
// @Param userId query int true "user id"
// @Param peerId query int true "peer id"
// @Success 200 {object} map[string]any
// @Router /messages [get]
func ListMessages(svc service.MessagingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q conversationQuery
		if ok, err := parseQuery(c, &q); !ok {
			return err
		}
		if q.UserID == 0 || q.PeerID == 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", "userId and peerId are required")
		}
		res, err := svc.Conversation(c.UserContext(), specs.ConversationParams{
			UserID:     q.UserID,
			PeerID:     q.PeerID,
			UnreadOnly: q.UnreadOnly,
			Paging:     q.paging(),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(repository.MapPage(res, viewFor(q.UserID)))
	}
}

func SendMessage(svc service.MessagingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.NewMessage
		if ok, err := parseBody(c, &req); !ok {
			return err
		}
		msg, err := svc.Send(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(msg)
	}
}

type markReadRequest struct {
	UserID int64 `json:"user_id"`
	PeerID int64 `json:"peer_id"`
}

func MarkConversationRead(svc service.MessagingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req markReadRequest
		if ok, err := parseBody(c, &req); !ok {
			return err
		}
		n, err := svc.MarkConversationRead(c.UserContext(), req.UserID, req.PeerID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"marked": n})
	}
}

func UnreadCount(svc service.MessagingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := int64(c.QueryInt("userId"))
		if userID < 1 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", "userId is required")
		}
		n, err := svc.UnreadCount(c.UserContext(), userID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"unread": n})
	}
}
