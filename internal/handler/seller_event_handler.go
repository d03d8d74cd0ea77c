package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/subhadipbhunia9332-sketch/nexora-backend/internal/model"
	"github.com/subhadipbhunia9332-sketch/nexora-backend/internal/repository"
	"github.com/subhadipbhunia9332-sketch/nexora-backend/pkg/logger"
	"github.com/subhadipbhunia9332-sketch/nexora-backend/prometheus"
)

// SellerEventHandler ingests order, payment, review and product events
// reported by the surrounding services into seller statistics
type SellerEventHandler struct {
	repo *repository.SellerRepository
}

// NewSellerEventHandler creates a new seller event handler
func NewSellerEventHandler(repo *repository.SellerRepository) *SellerEventHandler {
	return &SellerEventHandler{repo: repo}
}

func (h *SellerEventHandler) loadSeller(c echo.Context) (*model.Seller, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid seller ID")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	seller, err := h.repo.ByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "seller not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to load seller")
	}
	return seller, nil
}

func (h *SellerEventHandler) save(seller *model.Seller) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.repo.Save(seller); err != nil {
		prometheus.RecordSellerError("db_error")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save seller")
	}
	return nil
}

// RecordOrder counts an order reported by the order layer
func (h *SellerEventHandler) RecordOrder(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordSellerEvent("order")

	var req struct {
		Amount    float64 `json:"amount"`
		Completed bool    `json:"completed"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordSellerError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	seller, err := h.loadSeller(c)
	if err != nil {
		return err
	}

	seller.RecordOrder(req.Amount, req.Completed)
	if err := h.save(seller); err != nil {
		return err
	}

	log.Info("Seller order recorded",
		zap.Uint("id", seller.ID),
		zap.Bool("completed", req.Completed))

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Order recorded",
		"statistics": seller.Statistics,
	})
}

// AddEarnings credits earnings reported by the payment layer
func (h *SellerEventHandler) AddEarnings(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordSellerEvent("earnings")

	var req struct {
		Amount  float64 `json:"amount"`
		Pending *bool   `json:"pending,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordSellerError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	// Earnings land in the pending bucket unless stated otherwise
	pending := true
	if req.Pending != nil {
		pending = *req.Pending
	}

	seller, err := h.loadSeller(c)
	if err != nil {
		return err
	}

	if err := seller.AddEarnings(req.Amount, pending); err != nil {
		log.Error("Invalid earnings amount", zap.Float64("amount", req.Amount), zap.Error(err))
		prometheus.RecordSellerError("invalid_argument")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must not be negative"})
	}
	if err := h.save(seller); err != nil {
		return err
	}

	log.Info("Seller earnings added",
		zap.Uint("id", seller.ID),
		zap.Float64("amount", req.Amount),
		zap.Bool("pending", pending))

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Earnings added",
		"statistics": seller.Statistics,
	})
}

// RecordWithdrawal debits a payout reported by the payment layer
func (h *SellerEventHandler) RecordWithdrawal(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordSellerEvent("withdrawal")

	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordSellerError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	seller, err := h.loadSeller(c)
	if err != nil {
		return err
	}

	if err := seller.RecordWithdrawal(req.Amount); err != nil {
		log.Error("Withdrawal rejected",
			zap.Uint("id", seller.ID),
			zap.Float64("amount", req.Amount),
			zap.Error(err))
		prometheus.RecordSellerError("invalid_argument")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.save(seller); err != nil {
		return err
	}

	log.Info("Seller withdrawal recorded",
		zap.Uint("id", seller.ID),
		zap.Float64("amount", req.Amount))

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Withdrawal recorded",
		"statistics": seller.Statistics,
	})
}

// RecordRating folds a rating reported by the review layer into the
// seller's running average
func (h *SellerEventHandler) RecordRating(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordSellerEvent("rating")

	var req struct {
		Rating float64 `json:"rating"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordSellerError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	seller, err := h.loadSeller(c)
	if err != nil {
		return err
	}

	if err := seller.UpdateRating(req.Rating); err != nil {
		log.Error("Invalid rating", zap.Float64("rating", req.Rating), zap.Error(err))
		prometheus.RecordSellerError("invalid_argument")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be within [0,5]"})
	}
	if err := h.save(seller); err != nil {
		return err
	}

	log.Info("Seller rating recorded",
		zap.Uint("id", seller.ID),
		zap.Float64("rating", req.Rating),
		zap.Float64("average_rating", seller.Statistics.AverageRating))

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Rating recorded",
		"statistics": seller.Statistics,
	})
}

// AdjustProductCount increments or decrements the seller's product
// counters as the catalog changes
func (h *SellerEventHandler) AdjustProductCount(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordSellerEvent("products")

	var req struct {
		Count     *int `json:"count,omitempty"`
		Decrement bool `json:"decrement"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordSellerError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	count := 1
	if req.Count != nil {
		count = *req.Count
	}
	if count < 0 {
		prometheus.RecordSellerError("invalid_argument")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "count must not be negative"})
	}

	seller, err := h.loadSeller(c)
	if err != nil {
		return err
	}

	if req.Decrement {
		seller.DecrementProductCount(count)
	} else {
		seller.IncrementProductCount(count)
	}
	if err := h.save(seller); err != nil {
		return err
	}

	log.Info("Seller product count adjusted",
		zap.Uint("id", seller.ID),
		zap.Int("count", count),
		zap.Bool("decrement", req.Decrement))

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Product count adjusted",
		"statistics": seller.Statistics,
	})
}
