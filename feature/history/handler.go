package history

import (
	"errors"
	"strconv"

	"dtl-import/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for the run history.
type Handler struct {
	repo *Repository
}

// NewHandler creates a new HTTP handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/runs")
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
}

// HandleList returns the newest runs, 20 unless ?limit is given.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid limit",
		})
	}

	runs, err := h.repo.List(c.Context(), limit)
	if err != nil {
		logger.WithRayID(h.repo.logger, c).Error("Failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"runs": runs,
	})
}

// HandleGet returns one run including its tallies.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	run, err := h.repo.Get(c.Context(), c.Params("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "run not found",
		})
	}
	if err != nil {
		logger.WithRayID(h.repo.logger, c).Error("Failed to load run", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	tallies, err := run.DecodeTallies()
	if err != nil {
		logger.WithRayID(h.repo.logger, c).Warn("Run has unreadable tallies", zap.String("run_id", run.ID), zap.Error(err))
	}
	return c.JSON(fiber.Map{
		"run":     run,
		"tallies": tallies,
	})
}
