package handler

import (
	"github.com/gofiber/fiber/v2"

	"marketplace/internal/service"
	"marketplace/internal/specs"
)

type postQuery struct {
	PageQuery
	Search   string `query:"search"`
	Category string `query:"category"`
	AuthorID int64  `query:"authorId"`
	Sort     string `query:"sort"`
}

func ListPosts(svc service.CommunityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q postQuery
		if ok, err := parseQuery(c, &q); !ok {
			return err
		}
		res, err := svc.ListPosts(c.UserContext(), specs.PostParams{
			Search:   q.Search,
			Category: q.Category,
			AuthorID: q.AuthorID,
			Sort:     q.Sort,
			Paging:   q.paging(),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

func GetPost(svc service.CommunityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		post, err := svc.GetPost(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(post)
	}
}

func DeletePost(svc service.CommunityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		if err := svc.DeletePost(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListComments pages the top-level comments of a post with their reply trees.
//
// @Summary List comments
// @Tags community
// @Param id path int true "post id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} errorPayload
// @Router /posts/{id}/comments [get]
func ListComments(svc service.CommunityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		var q PageQuery
		if ok, err := parseQuery(c, &q); !ok {
			return err
		}
		res, err := svc.ListComments(c.UserContext(), specs.CommentParams{PostID: id, Paging: q.paging()})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

func AddComment(svc service.CommunityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		var req service.NewComment
		if ok, err := parseBody(c, &req); !ok {
			return err
		}
		req.PostID = id
		comment, err := svc.AddComment(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(comment)
	}
}
