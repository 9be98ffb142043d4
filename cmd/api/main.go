package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/quickdesk/quickdesk/internal/api/http"
	"github.com/quickdesk/quickdesk/internal/api/http/handlers"
	"github.com/quickdesk/quickdesk/internal/auth"
	"github.com/quickdesk/quickdesk/internal/config"
	"github.com/quickdesk/quickdesk/internal/gateway"
	"github.com/quickdesk/quickdesk/internal/gateway/hosted"
	"github.com/quickdesk/quickdesk/internal/gateway/postgres"
	"github.com/quickdesk/quickdesk/internal/notify"
	"github.com/quickdesk/quickdesk/internal/observability"
	"github.com/quickdesk/quickdesk/internal/persistence"
	"github.com/quickdesk/quickdesk/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		gateways gateway.Gateways
		checks   = map[string]handlers.Pinger{}
	)
	switch cfg.Gateway.Driver {
	case config.GatewayDriverPostgres:
		store, err := postgres.Open(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer store.Close()
		if cfg.Postgres.RunMigrations {
			if err := store.RunMigrations(ctx); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		gateways = store.Gateways()
		checks["postgres"] = store
	default:
		client := hosted.NewClient(cfg.Gateway, logger)
		gateways = client.Gateways()
		checks["gateway"] = client
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	checks["redis"] = redis

	sessions := auth.NewSessionCache(redis.Client, cfg.Auth.SessionCacheTTL())
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret)
	authMiddleware := auth.NewMiddleware(tokens, gateways.Users, sessions)

	sender := notify.NewHTTPSender(cfg.Mail, logger)
	callTimeout := cfg.Gateway.Timeout()

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketGateway:   gateways.Tickets,
		CategoryGateway: gateways.Categories,
		Sender:          sender,
		Logger:          logger,
		CallTimeout:     callTimeout,
	})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		TicketGateway: gateways.Tickets,
		UserGateway:   gateways.Users,
		Sender:        sender,
		Logger:        logger,
		CallTimeout:   callTimeout,
	})
	categoryService := service.NewCategoryService(service.CategoryDependencies{
		CategoryGateway: gateways.Categories,
		Logger:          logger,
		CallTimeout:     callTimeout,
	})
	userService := service.NewUserService(service.UserDependencies{
		UserGateway:  gateways.Users,
		SessionCache: sessions,
		Logger:       logger,
		CallTimeout:  callTimeout,
	})
	invitationService := service.NewInvitationService(service.InvitationDependencies{
		InvitationGateway: gateways.Invitations,
		Sender:            sender,
		AppURL:            cfg.App.BaseURL,
		Logger:            logger,
		CallTimeout:       callTimeout,
	})
	overviewService := service.NewOverviewService(service.OverviewDependencies{
		TicketGateway:   gateways.Tickets,
		CategoryGateway: gateways.Categories,
		UserGateway:     gateways.Users,
		Logger:          logger,
		CallTimeout:     callTimeout,
	})

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks),
		Tickets:        handlers.NewTicketsHandler(ticketService, assignmentService),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		Users:          handlers.NewUsersHandler(userService),
		Invitations:    handlers.NewInvitationsHandler(invitationService),
		Overview:       handlers.NewOverviewHandler(overviewService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
