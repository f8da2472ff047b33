package router

import (
	"github.com/ALuiell/Cinema/handler"
	"github.com/ALuiell/Cinema/middleware"
	"github.com/ALuiell/Cinema/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	movie := v1.Group("/movie")
	movie.Get("/", validate.FilterMovies(), handler.GetMovies)
	movie.Get("/:slug", handler.GetMovieBySlug)
	movie.Post("/", middleware.Protected(), validate.CreateMovie(), handler.CreateMovie)

	session := v1.Group("/session")
	session.Get("/", validate.FilterSessions(), handler.GetSessions)
	session.Get("/:slug", handler.GetSessionBySlug)
	session.Get("/:slug/seats", handler.GetSessionSeats)
	session.Post("/", middleware.Protected(), validate.CreateSession(), handler.CreateSession)

	v1.Post("/booking", middleware.Protected(), validate.CreateBooking(), handler.PurchaseTickets)

	orders := v1.Group("/orders", middleware.Protected())
	orders.Get("/", handler.GetMyOrders)
	orders.Get("/:code", handler.GetOrderDetail)
	orders.Post("/:code/cancel", handler.CancelOrder)
	orders.Post("/:code/retry-payment", handler.RetryPayment)

	ticket := v1.Group("/ticket", middleware.Protected())
	ticket.Get("/:code/qrcode", handler.GetTicketQRCode)
	ticket.Post("/:code/cancel", handler.CancelTicketHandler)

	v1.Post("/webhook/checkout", handler.CheckoutWebhook)
}
