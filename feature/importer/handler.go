package importer

import (
	"context"
	"strconv"

	"dtl-import/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Handler handles HTTP requests for import runs.
type Handler struct {
	service *Service
	runs    singleflight.Group
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the import routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/sync", h.HandleSync)
	app.Get("/check", h.HandleCheck)
	app.Get("/archive", h.HandleArchive)
}

// HandleSync runs an import and returns its summary.
// Requests arriving while a run of the same mode is in flight share its result.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	dryRun := c.QueryBool("dry_run", false)

	key := "sync"
	if dryRun {
		key = "dry-run"
	}

	// The run outlives the request that started it.
	v, err, shared := h.runs.Do(key, func() (any, error) {
		return h.service.Run(context.Background(), RunOptions{DryRun: dryRun})
	})
	if err != nil {
		l.Error("Import run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	summary := v.(*Summary)
	l.Info("Import run finished", zap.String("run_id", summary.ID), zap.Bool("shared", shared))
	return c.JSON(summary)
}

// HandleCheck reports whether the checkout and NetBox are ready for an import.
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	report := h.service.Check(c.Context())
	if !report.OK() {
		logger.WithRayID(h.service.logger, c).Warn("Pre-flight check failed",
			zap.Strings("missing", report.Layout.Missing), zap.String("netbox_error", report.NetBoxError))
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

// HandleArchive lists the newest archived summaries.
func (h *Handler) HandleArchive(c *fiber.Ctx) error {
	if h.service.archive == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "archive is not enabled",
		})
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid limit",
		})
	}

	names, err := h.service.archive.List(c.Context(), limit)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to list archive", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"objects": names,
	})
}
