package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"stock-sync/core/loader"
	"stock-sync/core/logger"
	"stock-sync/core/middleware/auth"
	"stock-sync/core/middleware/rayid"
	"stock-sync/core/odoo"
	"stock-sync/core/woocommerce"
	"stock-sync/feature/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the stock sync server",
	Long:  `Starts the HTTP server exposing on-demand sync, last run status and the product mapping.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		logg := a.logger
		zap.ReplaceGlobals(logg)

		source := odoo.NewClient(a.cfg.Odoo, logg)
		defer source.Close()
		sink := woocommerce.NewClient(a.cfg.WooCommerce, logg)

		svc := stock.NewService(a.mappingLoader(), source, sink, logg, a.cfg.Server.SyncTimeout())

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(stock.NewFeature(svc))

		// RayID first so every later log line carries it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		if !a.cfg.Server.IsAuthEnabled() {
			logg.Warn("SERVER_API_KEY is empty, the API is unprotected")
		}
		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			errCh <- app.Listen(":" + a.cfg.Server.Port)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-quit:
		}

		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
