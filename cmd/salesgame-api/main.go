package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/salesgame/salesgame-api/internal/config"
	"github.com/salesgame/salesgame-api/internal/database"
	"github.com/salesgame/salesgame-api/internal/handlers"
	authmw "github.com/salesgame/salesgame-api/internal/middleware"
	"github.com/salesgame/salesgame-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	tokenService := services.NewTokenService(db)
	phaseService := services.NewPhaseService(db)
	userService := services.NewUserService(db, phaseService)
	teamService := services.NewTeamService(db, phaseService)
	rankingService := services.NewRankingService(db)
	scoringService := services.NewScoringService(db, rankingService)
	proposalService := services.NewProposalService(db, rankingService)
	saleService := services.NewSaleService(db, rankingService)
	dashboardService := services.NewDashboardService(db, rankingService)

	authHandler := handlers.NewAuthHandler(userService, tokenService, jwtService)
	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService, proposalService)
	proposalHandler := handlers.NewProposalHandler(proposalService)
	saleHandler := handlers.NewSaleHandler(saleService)
	rankingHandler := handlers.NewRankingHandler(rankingService, phaseService)
	phaseHandler := handlers.NewPhaseHandler(phaseService)
	scoringHandler := handlers.NewScoringHandler(scoringService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	protected.Get("/users/me", userHandler.GetMe)
	protected.Get("/users", userHandler.List)
	protected.Post("/users", userHandler.Create)

	protected.Get("/teams", teamHandler.List)
	protected.Post("/teams", teamHandler.Create)
	protected.Get("/teams/:id", teamHandler.Get)
	protected.Patch("/teams/:id", teamHandler.Update)
	protected.Get("/teams/:id/dashboard", teamHandler.Dashboard)

	protected.Get("/proposals", proposalHandler.ListAll)
	protected.Post("/proposals", proposalHandler.Submit)
	protected.Get("/proposals/mine", proposalHandler.ListMine)
	protected.Get("/proposals/:id", proposalHandler.Get)
	protected.Post("/proposals/:id/validate", proposalHandler.Validate)
	protected.Post("/proposals/:id/resend", proposalHandler.Resend)
	protected.Post("/proposals/:id/sale", proposalHandler.MarkSale)
	protected.Delete("/proposals/:id", proposalHandler.Delete)

	protected.Get("/sales/pending", saleHandler.ListPending)
	protected.Post("/sales/:id/validate", saleHandler.Validate)

	protected.Get("/rankings", rankingHandler.Get)

	protected.Get("/phase", phaseHandler.Current)
	protected.Post("/phase", phaseHandler.Change)

	protected.Get("/scoring/config", scoringHandler.GetConfig)
	protected.Put("/scoring/config", scoringHandler.UpdateConfig)

	protected.Get("/dashboard", dashboardHandler.General)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
