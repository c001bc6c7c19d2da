package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Kraftvoll1/lojinha/pkg/config"
	"github.com/Kraftvoll1/lojinha/pkg/domain/model"
	domain "github.com/Kraftvoll1/lojinha/pkg/domain/service"
	"github.com/Kraftvoll1/lojinha/pkg/service"
	httphandler "github.com/Kraftvoll1/lojinha/pkg/service/transport"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	app := &cli.App{
		Name:  "lojinha",
		Usage: "Storefront backend: UI, product catalog and order API",
		Flags: cfg.Flags(),
		Action: func(*cli.Context) error {
			return serve(cfg)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP server",
				Action: func(*cli.Context) error {
					return serve(cfg)
				},
			},
			{
				Name:  "catalog",
				Usage: "Validate the product catalog and print a summary",
				Action: func(c *cli.Context) error {
					return printCatalogSummary(c, cfg)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(cfg *config.Config) error {
	handler, ledger, cleanup, err := prepare(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	log.WithFields(log.Fields{
		"address": cfg.ListenAddr,
		"public":  cfg.PublicDir,
		"catalog": cfg.CatalogPath,
	}).Info("Server starts...")

	srv := startServer(cfg.ListenAddr, handler)

	killSignalChan := getKillSignalChan()
	waitForKillSignalChan(killSignalChan)

	log.Info("Server stops...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error while stopping server: %w", err)
	}

	count, revenue := summarizeOrders(ledger.List())
	log.WithFields(log.Fields{
		"orders":  count,
		"revenue": revenue,
	}).Info("Server gracefully stopped.")
	return nil
}

// prepare sets up logging, creates the public directory tree and wires the handler.
// The returned cleanup closes the log file.
func prepare(cfg *config.Config) (*httphandler.Handler, *service.MemoryLedger, func(), error) {
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := os.MkdirAll(filepath.Join(cfg.PublicDir, "static"), 0755); err != nil {
		closeLog()
		return nil, nil, nil, fmt.Errorf("cannot create public directory %s: %w", cfg.PublicDir, err)
	}

	catalog := service.NewFileCatalog(cfg.CatalogPath)
	ledger := service.NewMemoryLedger()
	orderService := domain.NewOrderService(catalog, ledger, service.NewLogDispatcher(log.StandardLogger()))
	handler := httphandler.NewHandler(catalog, orderService, cfg.PublicDir)

	return handler, ledger, closeLog, nil
}

func summarizeOrders(orders []model.Order) (int, float64) {
	var revenue float64
	for i := range orders {
		revenue += orders[i].Totals().Total
	}
	return len(orders), revenue
}

func setupLogging(cfg *config.Config) (func(), error) {
	log.SetFormatter(&log.JSONFormatter{})

	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	if cfg.LogFile == "" {
		return func() {}, nil
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Info("Cannot log to file, using default stderr")
		return func() {}, nil
	}
	log.SetOutput(file)

	return func() {
		if err := file.Close(); err != nil {
			log.SetOutput(os.Stderr)
			log.Error(err)
		}
	}, nil
}

func printCatalogSummary(c *cli.Context, cfg *config.Config) error {
	catalog := service.NewFileCatalog(cfg.CatalogPath)
	summary, err := catalog.Summary()
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "Catalog:    %s\n", catalog.Path())
	fmt.Fprintf(out, "Products:   %d\n", summary.Products)
	fmt.Fprintf(out, "Categories: %s\n", strings.Join(summary.Categories, ", "))
	if len(summary.Unpriced) > 0 {
		fmt.Fprintf(out, "Without price: %s\n", strings.Join(summary.Unpriced, ", "))
	}
	if len(summary.Duplicates) > 0 {
		fmt.Fprintf(out, "Duplicate ids (last entry wins): %s\n", strings.Join(summary.Duplicates, ", "))
	}

	return nil
}

func startServer(serverUrl string, router http.Handler) *http.Server {
	srv := &http.Server{
		Addr:              serverUrl,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error listening port: %s\n", err)
		}
	}()

	return srv
}

func getKillSignalChan() chan os.Signal {
	osKillSignalChan := make(chan os.Signal, 1)
	signal.Notify(osKillSignalChan, os.Interrupt, syscall.SIGTERM)
	return osKillSignalChan
}

func waitForKillSignalChan(killSignalChan <-chan os.Signal) {
	killSignal := <-killSignalChan
	switch killSignal {
	case os.Interrupt:
		log.Info("Got SIGINT...")
	case syscall.SIGTERM:
		log.Info("Got SIGTERM...")
	}
}
