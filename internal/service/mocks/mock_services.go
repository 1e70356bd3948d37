package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketplace/internal/model"
	"marketplace/internal/repository"
	"marketplace/internal/service"
	"marketplace/internal/specs"
)

// ret unpacks a (*T, error) mock return.
func ret[T any](args mock.Arguments) (*T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

var _ service.CatalogService = (*MockCatalogService)(nil)

func (m *MockCatalogService) ListAnimals(ctx context.Context, p specs.AnimalParams) (*repository.PaginationResponse[model.Animal], error) {
	return ret[repository.PaginationResponse[model.Animal]](m.Called(ctx, p))
}

func (m *MockCatalogService) GetAnimal(ctx context.Context, id int64) (*model.Animal, error) {
	return ret[model.Animal](m.Called(ctx, id))
}

func (m *MockCatalogService) ListAccessories(ctx context.Context, p specs.AccessoryParams) (*repository.PaginationResponse[model.Accessory], error) {
	return ret[repository.PaginationResponse[model.Accessory]](m.Called(ctx, p))
}

func (m *MockCatalogService) ListDoctors(ctx context.Context, p specs.DoctorParams) (*repository.PaginationResponse[model.Doctor], error) {
	return ret[repository.PaginationResponse[model.Doctor]](m.Called(ctx, p))
}

func (m *MockCatalogService) ListPharmacies(ctx context.Context, p specs.PharmacyParams) (*repository.PaginationResponse[model.Pharmacy], error) {
	return ret[repository.PaginationResponse[model.Pharmacy]](m.Called(ctx, p))
}

func (m *MockCatalogService) ListProducts(ctx context.Context, p specs.ProductParams) (*repository.PaginationResponse[model.Product], error) {
	return ret[repository.PaginationResponse[model.Product]](m.Called(ctx, p))
}

func (m *MockCatalogService) ListSpecies(ctx context.Context, search string) ([]model.Species, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Species), args.Error(1)
}

type MockCommunityService struct {
	mock.Mock
}

var _ service.CommunityService = (*MockCommunityService)(nil)

func (m *MockCommunityService) ListPosts(ctx context.Context, p specs.PostParams) (*repository.PaginationResponse[model.Post], error) {
	return ret[repository.PaginationResponse[model.Post]](m.Called(ctx, p))
}

func (m *MockCommunityService) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	return ret[model.Post](m.Called(ctx, id))
}

func (m *MockCommunityService) ListComments(ctx context.Context, p specs.CommentParams) (*repository.PaginationResponse[model.Comment], error) {
	return ret[repository.PaginationResponse[model.Comment]](m.Called(ctx, p))
}

func (m *MockCommunityService) AddComment(ctx context.Context, c service.NewComment) (*model.Comment, error) {
	return ret[model.Comment](m.Called(ctx, c))
}

func (m *MockCommunityService) DeletePost(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockMessagingService struct {
	mock.Mock
}

var _ service.MessagingService = (*MockMessagingService)(nil)

func (m *MockMessagingService) Conversation(ctx context.Context, p specs.ConversationParams) (*repository.PaginationResponse[model.Message], error) {
	return ret[repository.PaginationResponse[model.Message]](m.Called(ctx, p))
}

func (m *MockMessagingService) Send(ctx context.Context, msg service.NewMessage) (*model.Message, error) {
	return ret[model.Message](m.Called(ctx, msg))
}

func (m *MockMessagingService) MarkConversationRead(ctx context.Context, userID, peerID int64) (int, error) {
	args := m.Called(ctx, userID, peerID)
	return args.Int(0), args.Error(1)
}

func (m *MockMessagingService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

var _ service.OrderService = (*MockOrderService)(nil)

func (m *MockOrderService) PlaceOrder(ctx context.Context, req service.PlaceOrderRequest) (*model.Order, error) {
	return ret[model.Order](m.Called(ctx, req))
}

func (m *MockOrderService) ListOrders(ctx context.Context, p specs.OrderParams) (*repository.PaginationResponse[model.Order], error) {
	return ret[repository.PaginationResponse[model.Order]](m.Called(ctx, p))
}

func (m *MockOrderService) CancelOrder(ctx context.Context, buyerID, orderID int64) (*model.Order, error) {
	return ret[model.Order](m.Called(ctx, buyerID, orderID))
}
