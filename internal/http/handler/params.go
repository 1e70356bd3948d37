package handler

import (
	"github.com/gofiber/fiber/v2"

	"marketplace/internal/specs"
)

// PageQuery is embedded in every list query. Out-of-range values are
// normalized by the specs package, not rejected.
type PageQuery struct {
	PageIndex int `query:"pageIndex"`
	PageSize  int `query:"pageSize"`
}

func (q PageQuery) paging() specs.Paging {
	return specs.Paging{PageIndex: q.PageIndex, PageSize: q.PageSize}
}

// parseQuery fills q from the query string. On failure it has already written
// the 400 response and returns false.
func parseQuery(c *fiber.Ctx, q any) (bool, error) {
	if err := c.QueryParser(q); err != nil {
		return false, writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", "invalid query parameters")
	}
	return true, nil
}

func parseBody(c *fiber.Ctx, v any) (bool, error) {
	if err := c.BodyParser(v); err != nil {
		return false, writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	return true, nil
}

// pathID reads a positive integer :id route parameter.
func pathID(c *fiber.Ctx) (int64, bool, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	return int64(id), true, nil
}
