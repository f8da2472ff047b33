package main

import (
	"log"

	"github.com/ALuiell/Cinema/config"
	"github.com/ALuiell/Cinema/database"
	"github.com/ALuiell/Cinema/handler"
	"github.com/ALuiell/Cinema/helper"
	"github.com/ALuiell/Cinema/router"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.Config("CORS_ORIGINS"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		MaxAge:           600,
	}))

	database.ConnectDB()
	database.ConnectRedis()

	helper.StartMovieStatusScheduler()
	defer helper.StopMovieStatusScheduler()
	handler.StartOrderSweeper()
	defer handler.StopOrderSweeper()

	router.SetupRoutes(app)

	port := config.Config("PORT")
	if port == "" {
		port = "8002"
	}
	log.Fatal(app.Listen(":" + port))
}
