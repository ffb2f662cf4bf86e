package stock

import (
	"errors"

	"stock-sync/core/logger"
	"stock-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for stock synchronization.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the stock routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/stock")
	group.Post("/sync", h.HandleSync)
	group.Get("/status", h.HandleStatus)
	group.Get("/mapping", h.HandleMapping)
}

// HandleSync runs one synchronization and returns its report.
// Query parameter dry_run=true fetches without updating the store.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	opts := reconcile.Options{DryRun: c.QueryBool("dry_run", false)}
	l.Info("Triggering stock sync", zap.Bool("dry_run", opts.DryRun))

	report, err := h.service.RunSync(c.UserContext(), opts)
	switch {
	case errors.Is(err, ErrRunInProgress):
		l.Warn("Stock sync rejected", zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, reconcile.ErrConnectFailed):
		l.Error("Stock sync failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":  err.Error(),
			"report": report,
		})
	case err != nil:
		l.Error("Stock sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Stock sync completed",
		zap.Int("updated", report.Summary.TotalUpdated),
		zap.Int("errors", report.Summary.TotalErrors))

	return c.JSON(report)
}

// HandleStatus returns the last run report.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	status, ok := h.service.LastStatus()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "no sync has run yet",
			"running": h.service.IsRunning(),
		})
	}
	return c.JSON(fiber.Map{
		"running":     h.service.IsRunning(),
		"started_at":  status.StartedAt,
		"finished_at": status.FinishedAt,
		"report":      status.Report,
	})
}

// HandleMapping returns the configured product mapping.
func (h *Handler) HandleMapping(c *fiber.Ctx) error {
	entries := h.service.Mapping(c.UserContext())
	return c.JSON(fiber.Map{
		"count":   len(entries),
		"entries": entries,
	})
}
