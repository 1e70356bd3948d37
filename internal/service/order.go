package service

import (
	"context"
	"fmt"
	"sort"

	"marketplace/internal/model"
	"marketplace/internal/repository"
	"marketplace/internal/specs"
)

type OrderLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type PlaceOrderRequest struct {
	BuyerID int64       `json:"buyer_id"`
	Lines   []OrderLine `json:"items"`
}

// OrderService places and manages pharmacy product orders.
type OrderService interface {
	// PlaceOrder checks and decrements stock for every line and stores the
	// order with its items, all in one transaction. Concurrent orders for the
	// same product are serialized; the loser sees ErrOutOfStock.
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*model.Order, error)

	ListOrders(ctx context.Context, p specs.OrderParams) (*repository.PaginationResponse[model.Order], error)

	// CancelOrder cancels a pending or confirmed order of buyerID and puts its
	// quantities back in stock.
	CancelOrder(ctx context.Context, buyerID, orderID int64) (*model.Order, error)
}

type orderService struct {
	uow *repository.Factory
}

var _ OrderService = (*orderService)(nil)

func NewOrderService(uow *repository.Factory) OrderService {
	return &orderService{uow: uow}
}

// quantities merges lines by product and returns the product ids in ascending
// order, which is also the order rows are locked in.
func quantities(lines []OrderLine) (map[int64]int, []int64, error) {
	if len(lines) == 0 {
		return nil, nil, ErrEmptyOrder
	}
	qty := make(map[int64]int, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, nil, fmt.Errorf("product %d: %w", l.ProductID, ErrInvalidQuantity)
		}
		qty[l.ProductID] += l.Quantity
	}
	ids := make([]int64, 0, len(qty))
	for id := range qty {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return qty, ids, nil
}

func (s *orderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*model.Order, error) {
	qty, ids, err := quantities(req.Lines)
	if err != nil {
		return nil, err
	}

	u := s.uow.New()
	defer u.Rollback()
	if err := u.Begin(ctx); err != nil {
		return nil, err
	}

	buyer, err := repository.For[model.User, int64](u).GetByID(ctx, req.BuyerID)
	if err != nil {
		return nil, err
	}
	if buyer == nil {
		return nil, fmt.Errorf("buyer %d: %w", req.BuyerID, ErrNotFound)
	}

	products := repository.For[model.Product, int64](u)
	found, err := products.GetAllWithSpecification(ctx, specs.NewProductsForOrderSpec(ids))
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, fmt.Errorf("product: %w", ErrNotFound)
	}

	order := &model.Order{BuyerID: req.BuyerID, Status: model.OrderPending}
	for i := range found {
		p := &found[i]
		n := qty[p.ID]
		if p.Stock < n {
			return nil, fmt.Errorf("product %d has %d, wants %d: %w", p.ID, p.Stock, n, ErrOutOfStock)
		}
		p.Stock -= n
		products.Update(p)

		item := model.OrderItem{ProductID: p.ID, Quantity: n, UnitPrice: p.Price}
		order.Items = append(order.Items, item)
		order.Total += item.Subtotal()
	}
	repository.For[model.Order, int64](u).Add(order)

	if _, err := u.Complete(ctx); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, p specs.OrderParams) (*repository.PaginationResponse[model.Order], error) {
	repo := repository.For[model.Order, int64](s.uow.New())
	return page(ctx, repo, specs.NewOrderFilterSpec(p), specs.NewOrderCountSpec(p), p.Paging)
}

func (s *orderService) CancelOrder(ctx context.Context, buyerID, orderID int64) (*model.Order, error) {
	u := s.uow.New()
	defer u.Rollback()
	if err := u.Begin(ctx); err != nil {
		return nil, err
	}

	orders := repository.For[model.Order, int64](u)
	order, err := orders.GetWithSpecification(ctx, specs.NewOrderForBuyerSpec(orderID, buyerID))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if !order.Status.Cancellable() {
		return nil, fmt.Errorf("order %d is %s: %w", orderID, order.Status, ErrInvalidOrderState)
	}

	lines := make([]OrderLine, len(order.Items))
	for i, it := range order.Items {
		lines[i] = OrderLine{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	qty, ids, err := quantities(lines)
	if err != nil {
		return nil, err
	}

	products := repository.For[model.Product, int64](u)
	found, err := products.GetAllWithSpecification(ctx, specs.NewProductsForOrderSpec(ids))
	if err != nil {
		return nil, err
	}
	for i := range found {
		found[i].Stock += qty[found[i].ID]
		products.Update(&found[i])
	}

	order.Status = model.OrderCancelled
	orders.Update(order)

	if _, err := u.Complete(ctx); err != nil {
		return nil, fmt.Errorf("cancel order %d: %w", orderID, err)
	}
	return order, nil
}
