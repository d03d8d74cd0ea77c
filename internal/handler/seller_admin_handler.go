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

// SellerAdminHandler handles admin lifecycle and query operations on sellers
type SellerAdminHandler struct {
	repo *repository.SellerRepository
}

// NewSellerAdminHandler creates a new seller admin handler
func NewSellerAdminHandler(repo *repository.SellerRepository) *SellerAdminHandler {
	return &SellerAdminHandler{repo: repo}
}

// loadSeller resolves the :id path parameter into a seller record
func (h *SellerAdminHandler) loadSeller(c echo.Context) (*model.Seller, error) {
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

// save persists the seller and maps failures to a 500 response
func (h *SellerAdminHandler) save(seller *model.Seller) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.repo.Save(seller); err != nil {
		prometheus.RecordSellerError("db_error")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save seller")
	}
	return nil
}

// Approve transitions a seller to approved
func (h *SellerAdminHandler) Approve(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := currentClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordSellerError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	seller, err := h.loadSeller(c)
	if err != nil {
		return err
	}

	from := string(seller.Status)
	seller.Approve(claims.UserID, req.Reason)
	if err := h.save(seller); err != nil {
		return err
	}

	prometheus.RecordStatusTransition(from, string(seller.Status))
	log.Info("Seller approved",
		zap.Uint("id", seller.ID),
		zap.Uint("actor_id", claims.UserID),
		zap.String("from", from))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Seller approved",
		"seller":  seller,
	})
}

// Block transitions a seller to blocked. A reason is required.
func (h *SellerAdminHandler) Block(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := currentClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordSellerError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	seller, err := h.loadSeller(c)
	if err != nil {
		return err
	}

	from := string(seller.Status)
	if err := seller.Block(claims.UserID, req.Reason); err != nil {
		log.Error("Block rejected", zap.Uint("id", seller.ID), zap.Error(err))
		prometheus.RecordSellerError("invalid_argument")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reason is required"})
	}
	if err := h.save(seller); err != nil {
		return err
	}

	prometheus.RecordStatusTransition(from, string(seller.Status))
	log.Info("Seller blocked",
		zap.Uint("id", seller.ID),
		zap.Uint("actor_id", claims.UserID),
		zap.String("reason", req.Reason))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Seller blocked",
		"seller":  seller,
	})
}

// Suspend transitions a seller to suspended for the given number of days
func (h *SellerAdminHandler) Suspend(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := currentClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		Days   int    `json:"days"`
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordSellerError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	seller, err := h.loadSeller(c)
	if err != nil {
		return err
	}

	from := string(seller.Status)
	seller.Suspend(claims.UserID, req.Days, req.Reason)
	if err := h.save(seller); err != nil {
		return err
	}

	prometheus.RecordStatusTransition(from, string(seller.Status))
	log.Info("Seller suspended",
		zap.Uint("id", seller.ID),
		zap.Uint("actor_id", claims.UserID),
		zap.Int("days", req.Days))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Seller suspended",
		"seller":  seller,
	})
}

// Unsuspend lifts a suspension and returns the seller to approved
func (h *SellerAdminHandler) Unsuspend(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := currentClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	seller, err := h.loadSeller(c)
	if err != nil {
		return err
	}

	from := string(seller.Status)
	seller.Unsuspend(claims.UserID)
	if err := h.save(seller); err != nil {
		return err
	}

	prometheus.RecordStatusTransition(from, string(seller.Status))
	log.Info("Seller unsuspended",
		zap.Uint("id", seller.ID),
		zap.Uint("actor_id", claims.UserID))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Seller unsuspended",
		"seller":  seller,
	})
}

// UpdateCommissionRate sets a seller's commission rate
func (h *SellerAdminHandler) UpdateCommissionRate(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := currentClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		Rate float64 `json:"rate"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordSellerError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	seller, err := h.loadSeller(c)
	if err != nil {
		return err
	}

	if err := seller.UpdateCommissionRate(req.Rate, claims.UserID); err != nil {
		log.Error("Invalid commission rate", zap.Float64("rate", req.Rate), zap.Error(err))
		prometheus.RecordSellerError("invalid_argument")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rate must be within [0,100]"})
	}
	if err := h.save(seller); err != nil {
		return err
	}

	log.Info("Seller commission rate updated",
		zap.Uint("id", seller.ID),
		zap.Float64("rate", req.Rate),
		zap.Uint("actor_id", claims.UserID))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Commission rate updated",
		"seller":  seller,
	})
}

// VerifyDocument records a KYC verification confirmation for a seller.
// Kind must be one of gst, pan, bank, address.
func (h *SellerAdminHandler) VerifyDocument(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Kind string `json:"kind"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordSellerError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	seller, err := h.loadSeller(c)
	if err != nil {
		return err
	}

	if err := seller.MarkDocumentVerified(req.Kind); err != nil {
		log.Error("Invalid document kind", zap.String("kind", req.Kind), zap.Error(err))
		prometheus.RecordSellerError("invalid_argument")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kind must be one of gst, pan, bank, address"})
	}
	if err := h.save(seller); err != nil {
		return err
	}

	prometheus.DocumentVerificationCounter.WithLabelValues(req.Kind).Inc()
	log.Info("Seller document verified",
		zap.Uint("id", seller.ID),
		zap.String("kind", req.Kind))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Document verified",
		"seller":  seller,
	})
}

// List lists sellers, optionally filtered by status
func (h *SellerAdminHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)

	status := c.QueryParam("status")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var sellers []model.Seller
	var err error
	if status != "" {
		sellers, err = h.repo.ByStatus(model.SellerStatus(status))
	} else {
		sellers, err = h.repo.ActiveApproved()
	}
	if err != nil {
		log.Error("Failed to list sellers", zap.String("status", status), zap.Error(err))
		prometheus.RecordSellerError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list sellers"})
	}

	return c.JSON(http.StatusOK, sellers)
}

// TopRated lists approved, active sellers by rating descending
func (h *SellerAdminHandler) TopRated(c echo.Context) error {
	log := logger.FromEcho(c)

	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			prometheus.RecordSellerError("invalid_argument")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be a positive integer"})
		}
		limit = parsed
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	sellers, err := h.repo.TopRated(limit)
	if err != nil {
		log.Error("Failed to list top rated sellers", zap.Error(err))
		prometheus.RecordSellerError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list sellers"})
	}

	return c.JSON(http.StatusOK, sellers)
}

// Search searches approved, active sellers by shop name
func (h *SellerAdminHandler) Search(c echo.Context) error {
	log := logger.FromEcho(c)

	query := c.QueryParam("q")
	if query == "" {
		prometheus.RecordSellerError("invalid_argument")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	sellers, err := h.repo.SearchByShopName(query)
	if err != nil {
		log.Error("Failed to search sellers", zap.String("q", query), zap.Error(err))
		prometheus.RecordSellerError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to search sellers"})
	}

	return c.JSON(http.StatusOK, sellers)
}

// Summary aggregates approved, active sellers
func (h *SellerAdminHandler) Summary(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	summary, err := h.repo.Summary()
	if err != nil {
		log.Error("Failed to aggregate seller summary", zap.Error(err))
		prometheus.RecordSellerError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to aggregate summary"})
	}

	if count, err := h.repo.CountActiveApproved(); err == nil {
		prometheus.UpdateActiveSellers(count)
	}

	return c.JSON(http.StatusOK, summary)
}

// UpdateStatistics overwrites statistics fields directly. This is the
// admin correction path, distinct from the event ingest increments.
func (h *SellerAdminHandler) UpdateStatistics(c echo.Context) error {
	log := logger.FromEcho(c)

	var req model.SellerStatisticsUpdate
	if err := c.Bind(&req); err != nil {
		prometheus.RecordSellerError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	seller, err := h.loadSeller(c)
	if err != nil {
		return err
	}

	seller.UpdateStatistics(req)
	if err := h.save(seller); err != nil {
		return err
	}

	log.Info("Seller statistics overwritten", zap.Uint("id", seller.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Statistics updated",
		"statistics": seller.Statistics,
	})
}
