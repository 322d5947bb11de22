package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Elmerluis0129/WanMarKay-sub000/internal/auth"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/config"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/database"
	apihttp "github.com/Elmerluis0129/WanMarKay-sub000/internal/http"
	authHandler "github.com/Elmerluis0129/WanMarKay-sub000/internal/http/auth"
	invoiceHandler "github.com/Elmerluis0129/WanMarKay-sub000/internal/http/invoice"
	reportHandler "github.com/Elmerluis0129/WanMarKay-sub000/internal/http/report"
	userHandler "github.com/Elmerluis0129/WanMarKay-sub000/internal/http/user"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/importer"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice"
	invoiceStore "github.com/Elmerluis0129/WanMarKay-sub000/internal/invoice/store"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/notify"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/report"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/scheduler"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/user"
	userStore "github.com/Elmerluis0129/WanMarKay-sub000/internal/user/store"
	"github.com/Elmerluis0129/WanMarKay-sub000/internal/voucher"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(cfg.ConnectionString(), cfg.Migrations.Path); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	voucherService, err := voucher.NewService(cfg.Vouchers.Dir)
	if err != nil {
		slog.Error("failed to prepare voucher storage", "error", err)
		os.Exit(1)
	}

	var (
		invoiceService = invoice.NewService(invoiceStore.New(db))
		userService    = user.NewService(userStore.New(db))
		authService    = auth.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)
		reportService  = report.NewService(invoiceService)
		importService  = importer.NewService()
	)

	schedulerOpts := []scheduler.Option{}
	if cfg.SMTP.Username != "" {
		mailer := notify.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
		schedulerOpts = append(schedulerOpts, scheduler.WithNotifier(mailer, userService))
	}

	refresher := scheduler.New(invoiceService, cfg.Scheduler.RefreshInterval, schedulerOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go refresher.Run(ctx)

	var (
		authH    = authHandler.NewHandler(userService, authService)
		invoiceH = invoiceHandler.NewHandler(invoiceService, voucherService)
		userH    = userHandler.NewHandler(userService, importService)
		reportH  = reportHandler.NewHandler(reportService)
	)

	router := apihttp.New(authService, authH, invoiceH, userH, reportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	server := &http.Server{Addr: port, Handler: router}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
