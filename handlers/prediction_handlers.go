package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"salestrend/insights"
	"salestrend/models"
	"salestrend/repository"
	"salestrend/service"
	"salestrend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// StoreAnalytics is the read side behind GET /api/v1/predictions.
type StoreAnalytics interface {
	ProductAnalytics(ctx context.Context, limit, offset int) ([]models.ProductAnalytics, int, error)
	StoreAnalytics(ctx context.Context) (models.StoreAnalytics, error)
}

// PredictionHandlers serves the prediction endpoints.
type PredictionHandlers struct {
	Predictions   *service.PredictionService
	Analytics     StoreAnalytics
	Insights      insights.Generator
	DefaultPeriod int
	MaxPeriod     int
}

// parseRun validates a prediction request body into run options. A
// non-empty message describes why the request was rejected.
func (h *PredictionHandlers) parseRun(c *fiber.Ctx) (models.PredictionRequest, service.RunOptions, string) {
	var req models.PredictionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return req, service.RunOptions{}, "Invalid request body"
		}
	}

	if req.Period <= 0 {
		req.Period = h.DefaultPeriod
	}
	if req.Period > h.MaxPeriod {
		return req, service.RunOptions{}, "Period exceeds the maximum allowed"
	}
	for _, id := range req.ProductIDs {
		if id <= 0 {
			return req, service.RunOptions{}, "Product ids must be positive"
		}
	}

	return req, service.RunOptions{
		PeriodDays: req.Period,
		ProductIDs: req.ProductIDs,
		Advanced:   req.Advanced,
	}, ""
}

func predictionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrTablesMissing) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Required tables missing. Please initialize the database first.",
		})
	}
	log.Printf("❌ [PREDICTIONS] Error executing prediction: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Error executing prediction algorithm",
	})
}

// HandlePredictSales runs the trend estimator over the stored sales history.
// POST /api/v1/predictions
func (h *PredictionHandlers) HandlePredictSales(c *fiber.Ctx) error {
	req, opts, msg := h.parseRun(c)
	if msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": msg})
	}

	start := time.Now()
	predictions, err := h.Predictions.Run(c.UserContext(), opts)
	if err != nil {
		return predictionError(c, err)
	}
	elapsed := time.Since(start)

	metadata := models.PredictionMetadata{
		RunID:        uuid.NewString(),
		Period:       req.Period,
		ProductCount: len(req.ProductIDs),
		AdvancedMode: req.Advanced,
	}
	log.Printf("📊 [PREDICTIONS] Run %s produced %d predictions in %s", metadata.RunID, len(predictions), elapsed)

	return c.JSON(fiber.Map{
		"success":       true,
		"predictions":   predictions,
		"executionTime": elapsed.Milliseconds(),
		"metadata":      metadata,
	})
}

// HandleGetProductAnalytics lists per-product sales totals and store totals.
// GET /api/v1/predictions?page=1&pageSize=20
func (h *PredictionHandlers) HandleGetProductAnalytics(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if pageSize > 100 {
		pageSize = 100
	}
	pagination := utils.CreatePagination(0, page, pageSize)

	products, total, err := h.Analytics.ProductAnalytics(ctx, pagination.PageSize, pagination.Offset())
	if err != nil {
		log.Printf("❌ [PREDICTIONS] Error loading product analytics: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error loading data"})
	}

	analytics, err := h.Analytics.StoreAnalytics(ctx)
	if err != nil {
		log.Printf("❌ [PREDICTIONS] Error loading store analytics: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error loading data"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"products":   products,
		"analytics":  analytics,
		"pagination": utils.CreatePagination(total, pagination.CurrentPage, pagination.PageSize),
	})
}

// HandlePredictionInsights runs a prediction and asks the language model for
// a written analysis of it.
// POST /api/v1/predictions/insights
func (h *PredictionHandlers) HandlePredictionInsights(c *fiber.Ctx) error {
	if h.Insights == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "message": "AI insights are not configured"})
	}

	_, opts, msg := h.parseRun(c)
	if msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": msg})
	}

	predictions, err := h.Predictions.Run(c.UserContext(), opts)
	if err != nil {
		return predictionError(c, err)
	}

	analysis := ""
	if len(predictions) > 0 {
		analysis, err = h.Insights.Summarize(c.UserContext(), predictions)
		if err != nil {
			log.Printf("❌ [PREDICTIONS] Error generating insights: %v", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "message": "Failed to generate analysis"})
		}
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"predictions": predictions,
		"analysis":    analysis,
	})
}
