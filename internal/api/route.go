package api

import (
	"github.com/gofiber/fiber/v2"
	v1 "github.com/leeyanqing2004/loyalty-platform/internal/api/v1"
)

const prefixV1 = "api/v1/"

func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Get("/ping", handler.Pong)

	app.Post(prefixV1+"auth/login", handler.Login)
	app.Post(prefixV1+"auth/resets", handler.RequestPasswordReset)
	app.Post(prefixV1+"auth/resets/:utorid", handler.SetPassword)

	app.Post(prefixV1+"users", handler.RegisterUser)
	app.Patch(prefixV1+"users/:id", handler.UpdateUser)
	app.Get(prefixV1+"users/me/transactions", handler.ListMyTransactions)
	app.Get(prefixV1+"users/:utorid/transactions", handler.ListUserTransactions)
	app.Get(prefixV1+"users/:utorid/balance", handler.GetUserBalance)
	app.Post(prefixV1+"users/:user/transfers", handler.CreateTransfer)

	app.Get(prefixV1+"transactions", handler.ListTransactions)
	app.Post(prefixV1+"transactions", handler.CreatePurchase)
	app.Post(prefixV1+"transactions/adjustments", handler.CreateAdjustment)
	app.Post(prefixV1+"transactions/redemptions", handler.CreateRedemption)
	app.Get(prefixV1+"transactions/:id", handler.GetTransaction)
	app.Patch(prefixV1+"transactions/:id/processed", handler.ProcessRedemption)
	app.Patch(prefixV1+"transactions/:id/suspicious", handler.SetSuspicious)

	app.Post(prefixV1+"events", handler.CreateEvent)
	app.Get(prefixV1+"events/:id", handler.GetEvent)
	app.Patch(prefixV1+"events/:id", handler.UpdateEvent)
	app.Post(prefixV1+"events/:id/transactions", handler.CreateEventAward)

	app.Post(prefixV1+"promotions", handler.CreatePromotion)
	app.Get(prefixV1+"promotions/:id", handler.GetPromotion)
	app.Patch(prefixV1+"promotions/:id", handler.UpdatePromotion)
	app.Delete(prefixV1+"promotions/:id", handler.DeletePromotion)

	app.Post(prefixV1+"raffles", handler.CreateRaffle)
	app.Get(prefixV1+"raffles/:id", handler.GetRaffle)
	app.Post(prefixV1+"raffles/:id/entries", handler.EnterRaffle)
	app.Post(prefixV1+"raffles/:id/draw", handler.DrawRaffle)
}
