package handler

import (
	"github.com/gofiber/fiber/v2"

	"marketplace/internal/service"
	"marketplace/internal/specs"
)

type orderQuery struct {
	PageQuery
	BuyerID int64  `query:"buyerId"`
	Status  string `query:"status"`
	Sort    string `query:"sort"`
}

func ListOrders(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q orderQuery
		if ok, err := parseQuery(c, &q); !ok {
			return err
		}
		res, err := svc.ListOrders(c.UserContext(), specs.OrderParams{
			BuyerID: q.BuyerID,
			Status:  q.Status,
			Sort:    q.Sort,
			Paging:  q.paging(),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// PlaceOrder reserves stock and creates a pending order.
//
// @Summary Place order
// @Tags orders
// @Accept json
// @Success 201 {object} model.Order
// @Failure 409 {object} errorPayload
// @Router /orders [post]
func PlaceOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.PlaceOrderRequest
		if ok, err := parseBody(c, &req); !ok {
			return err
		}
		order, err := svc.PlaceOrder(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(order)
	}
}

func CancelOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathID(c)
		if !ok {
			return err
		}
		buyerID := int64(c.QueryInt("buyerId"))
		if buyerID < 1 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", "buyerId is required")
		}
		order, err := svc.CancelOrder(c.UserContext(), buyerID, id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(order)
	}
}
