package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"quotely/internal/config"
	"quotely/internal/email/noop"
	"quotely/internal/email/ses"
	"quotely/internal/handler"
	"quotely/internal/parser"
	_ "quotely/internal/parser/claude"
	_ "quotely/internal/parser/gemini"
	_ "quotely/internal/parser/openai"
	"quotely/internal/port"
	"quotely/internal/repository/postgres"
	"quotely/internal/router"
	"quotely/internal/service"
	s3storage "quotely/internal/storage/s3"
)

// @title Quotely API
// @version 1.0
// @description Quotations, invoices and catalog for small service businesses.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	inventoryRepo := postgres.NewInventoryRepo(db)
	quotationRepo := postgres.NewQuotationRepo(db, cfg.Numbering)
	invoiceRepo := postgres.NewInvoiceRepo(db, cfg.Numbering)
	dashboardRepo := postgres.NewDashboardRepo(db)

	// Optional integrations; each degrades to a disabled feature
	draftParser, err := parser.NewFromConfig(&cfg.Parser)
	if err != nil {
		return fmt.Errorf("failed to initialize AI parser: %w", err)
	}
	if draftParser == nil {
		log.Printf("AI drafting disabled: no parser API key configured")
	}

	var archive port.ObjectStorage
	if cfg.S3.Bucket != "" {
		archive, err = s3storage.NewDocumentArchive(ctx, &cfg.S3)
		if err != nil {
			log.Printf("document archive disabled: %v", err)
			archive = nil
		}
	} else {
		log.Printf("document archive disabled: no S3 bucket configured")
	}

	sender, err := newEmailSender(ctx, &cfg.Email)
	if err != nil {
		log.Printf("email delivery disabled: %v", err)
		sender = nil
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	inventorySvc := service.NewInventoryService(inventoryRepo)
	quotationSvc := service.NewQuotationService(quotationRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, quotationRepo)
	dashboardSvc := service.NewDashboardService(dashboardRepo)
	draftSvc := service.NewDraftService(draftParser, inventoryRepo)
	renderSvc := service.NewRenderService(quotationRepo, invoiceRepo, userRepo, cfg.Business)
	deliverySvc := service.NewDeliveryService(renderSvc, archive, sender, cfg.S3)
	exportSvc := service.NewExportService(quotationRepo, invoiceRepo)

	// Setup router
	r := router.Setup(authSvc, router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc, userSvc),
		User:      handler.NewUserHandler(userSvc),
		Inventory: handler.NewInventoryHandler(inventorySvc),
		Quotation: handler.NewQuotationHandler(quotationSvc, invoiceSvc),
		Invoice:   handler.NewInvoiceHandler(invoiceSvc),
		Document:  handler.NewDocumentHandler(renderSvc, deliverySvc),
		Draft:     handler.NewDraftHandler(draftSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Export:    handler.NewExportHandler(exportSvc),
		Health:    handler.NewHealthHandler(db),
	}, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-quit:
		log.Printf("received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func newEmailSender(ctx context.Context, cfg *config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESSender(ctx, cfg)
	case "", "noop":
		return noop.NewNoopSender(), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
