package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"github.com/freelahub/api/internal/config"
	"github.com/freelahub/api/internal/db"
	"github.com/freelahub/api/internal/handlers"
	"github.com/freelahub/api/internal/middleware"
	"github.com/freelahub/api/internal/models"
	"github.com/freelahub/api/internal/realtime"
	"github.com/freelahub/api/internal/services"
	"github.com/freelahub/api/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis unavailable, notifications degraded: %v", err)
	}

	hub := realtime.NewHub()
	go hub.Run()
	notifier := realtime.NewNotifier(hub, rdb)

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Proposal{},
		&models.Contract{},
		&models.Message{},
		&models.Attachment{},
		&models.Review{},
	); err != nil {
		log.Fatal(err)
	}

	files := storage.New(cfg.UploadDir)

	userSvc := services.NewUserService(gdb)
	projectSvc := services.NewProjectService(gdb)
	proposalSvc := services.NewProposalService(gdb)
	contractSvc := services.NewContractService(gdb)
	messageSvc := services.NewMessageService(gdb, files)
	reviewSvc := services.NewReviewService(gdb)

	authH := handlers.NewAuthHandler(userSvc, cfg.JWTSecret, cfg.JWTExpiresMin)
	projectH := handlers.NewProjectHandler(projectSvc)
	proposalH := handlers.NewProposalHandler(proposalSvc, notifier)
	contractH := handlers.NewContractHandler(contractSvc, notifier)
	messageH := handlers.NewMessageHandler(gdb, messageSvc, files, notifier, hub, cfg.JWTSecret)
	reviewH := handlers.NewReviewHandler(reviewSvc)

	googleH := &handlers.GoogleOAuthHandler{
		Users:           userSvc,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.FrontendBaseURL,
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Content-Length",
	}))

	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/projects", projectH.List)
	api.Get("/projects/:id", projectH.Get)

	// protected (JWT bearer)
	protected := api.Group("/",
		middleware.JWTFromHeader(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/me", authH.Me)

	// projects
	protected.Post("/projects",
		middleware.RequireRoles("company"),
		projectH.Create,
	)
	protected.Get("/company/projects",
		middleware.RequireRoles("company"),
		projectH.ListMine,
	)
	protected.Put("/projects/:id",
		middleware.RequireRoles("company"),
		projectH.Update,
	)
	protected.Delete("/projects/:id",
		middleware.RequireRoles("company"),
		projectH.Delete,
	)

	// proposals
	protected.Post("/proposals",
		middleware.RequireRoles("freelancer"),
		proposalH.Create,
	)
	protected.Get("/projects/:projectId/proposals", proposalH.ListByProject)
	protected.Get("/freelancers/:freelancerId/proposals", proposalH.ListByFreelancer)
	protected.Get("/proposals/:id", proposalH.Get)
	protected.Patch("/proposals/:id/status",
		middleware.RequireRoles("company"),
		proposalH.UpdateStatus,
	)
	protected.Delete("/proposals/:id",
		middleware.RequireRoles("freelancer"),
		proposalH.Delete,
	)

	// contracts
	protected.Post("/contracts",
		middleware.RequireRoles("company"),
		contractH.Create,
	)
	protected.Get("/contracts", contractH.ListMine)
	protected.Get("/contracts/:id", contractH.Get)
	protected.Patch("/contracts/:id/status", contractH.UpdateStatus)
	protected.Delete("/contracts/:id",
		middleware.RequireRoles("admin"),
		contractH.Delete,
	)

	// messages
	protected.Post("/messages", messageH.Send)
	protected.Get("/projects/:projectId/messages", messageH.ListByProject)
	protected.Delete("/messages/:id", messageH.Delete)

	// reviews
	protected.Post("/reviews", reviewH.Create)
	protected.Get("/users/:userId/reviews/received", reviewH.ListByReviewee)
	protected.Get("/users/:userId/reviews/given", reviewH.ListByReviewer)
	protected.Get("/reviews/:id", reviewH.Get)
	protected.Put("/reviews/:id", reviewH.Update)
	protected.Delete("/reviews/:id", reviewH.Delete)

	// WebSocket feed (authenticated via query param)
	app.Get("/ws/messages", websocket.New(messageH.WebSocketHandler))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
