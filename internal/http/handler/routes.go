package handler

import (
	"github.com/gofiber/fiber/v2"

	"marketplace/internal/service"
)

// Services groups what the routes depend on.
type Services struct {
	DB        Pinger
	Catalog   service.CatalogService
	Community service.CommunityService
	Messaging service.MessagingService
	Orders    service.OrderService
}

// RegisterRoutes attaches the API routes to the provided Fiber app.
// Handlers only translate HTTP to service calls.
func RegisterRoutes(app *fiber.App, s Services) {
	app.Get("/health", HealthCheck(s.DB))
	app.Get("/healthz", LivenessProbe())

	app.Get("/species", ListSpecies(s.Catalog))
	app.Get("/animals", ListAnimals(s.Catalog))
	app.Get("/animals/:id", GetAnimal(s.Catalog))
	app.Get("/accessories", ListAccessories(s.Catalog))
	app.Get("/doctors", ListDoctors(s.Catalog))
	app.Get("/pharmacies", ListPharmacies(s.Catalog))
	app.Get("/products", ListProducts(s.Catalog))

	app.Get("/posts", ListPosts(s.Community))
	app.Get("/posts/:id", GetPost(s.Community))
	app.Delete("/posts/:id", DeletePost(s.Community))
	app.Get("/posts/:id/comments", ListComments(s.Community))
	app.Post("/posts/:id/comments", AddComment(s.Community))

	app.Get("/messages", ListMessages(s.Messaging))
	app.Post("/messages", SendMessage(s.Messaging))
	app.Get("/messages/unread", UnreadCount(s.Messaging))
	app.Post("/messages/read", MarkConversationRead(s.Messaging))

	app.Get("/orders", ListOrders(s.Orders))
	app.Post("/orders", PlaceOrder(s.Orders))
	app.Post("/orders/:id/cancel", CancelOrder(s.Orders))
}
