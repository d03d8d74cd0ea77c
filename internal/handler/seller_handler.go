package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/subhadipbhunia9332-sketch/nexora-backend/internal/model"
	"github.com/subhadipbhunia9332-sketch/nexora-backend/internal/repository"
	"github.com/subhadipbhunia9332-sketch/nexora-backend/pkg/jwtutil"
	"github.com/subhadipbhunia9332-sketch/nexora-backend/pkg/logger"
	"github.com/subhadipbhunia9332-sketch/nexora-backend/prometheus"
)

// SellerHandler handles seller self-service operations
type SellerHandler struct {
	repo *repository.SellerRepository
}

// NewSellerHandler creates a new seller handler
func NewSellerHandler(repo *repository.SellerRepository) *SellerHandler {
	return &SellerHandler{repo: repo}
}

// currentClaims extracts the authenticated user claims set by the auth middleware
func currentClaims(c echo.Context) (*jwtutil.UserClaims, bool) {
	claims, ok := c.Get("user").(*jwtutil.UserClaims)
	return claims, ok
}

// Onboard creates a seller account for the authenticated user.
// New accounts start in pending status.
func (h *SellerHandler) Onboard(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.SellerOnboardCounter.Inc()

	claims, ok := currentClaims(c)
	if !ok {
		log.Error("Failed to get user claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	// Parse request
	var req struct {
		ShopName        string  `json:"shop_name"`
		ShopDescription string  `json:"shop_description"`
		ShopImage       string  `json:"shop_image"`
		BusinessType    string  `json:"business_type"`
		CommissionRate  float64 `json:"commission_rate"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse seller onboarding request", zap.Error(err))
		prometheus.RecordSellerError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.ShopName == "" {
		log.Error("Invalid seller data", zap.String("shop_name", req.ShopName))
		prometheus.RecordSellerError("invalid_argument")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "shop_name is required"})
	}

	businessType := model.BusinessType(req.BusinessType)
	if businessType == "" {
		businessType = model.BusinessTypeLocal
	}
	if businessType != model.BusinessTypeLocal && businessType != model.BusinessTypeDropship {
		log.Error("Invalid business type", zap.String("business_type", req.BusinessType))
		prometheus.RecordSellerError("invalid_argument")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "business_type must be local or dropship"})
	}

	if req.CommissionRate < 0 || req.CommissionRate > 100 {
		log.Error("Invalid commission rate", zap.Float64("commission_rate", req.CommissionRate))
		prometheus.RecordSellerError("invalid_argument")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "commission_rate must be within [0,100]"})
	}

	// One seller account per user
	defer prometheus.TrackDBOperation("query")(time.Now())
	if _, err := h.repo.ByUserID(claims.UserID); err == nil {
		log.Error("Seller account already exists", zap.Uint("user_id", claims.UserID))
		prometheus.RecordSellerError("already_exists")
		return c.JSON(http.StatusConflict, echo.Map{"error": "seller account already exists"})
	}

	seller := model.Seller{
		UserID:          claims.UserID,
		ShopName:        req.ShopName,
		ShopDescription: req.ShopDescription,
		ShopImage:       req.ShopImage,
		BusinessType:    businessType,
		CommissionRate:  req.CommissionRate,
		Status:          model.SellerStatusPending,
		IsActive:        true,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.repo.Create(&seller); err != nil {
		log.Error("Failed to create seller", zap.Error(err))
		prometheus.RecordSellerError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seller creation failed"})
	}

	log.Info("Seller onboarded",
		zap.String("shop_name", seller.ShopName),
		zap.Uint("id", seller.ID),
		zap.Uint("user_id", seller.UserID))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Seller account created successfully",
		"seller":  seller,
	})
}

// GetMe returns the authenticated user's seller account
func (h *SellerHandler) GetMe(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := currentClaims(c)
	if !ok {
		log.Error("Failed to get user claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	seller, err := h.repo.ByUserID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seller account not found"})
		}
		log.Error("Failed to load seller", zap.Uint("user_id", claims.UserID), zap.Error(err))
		prometheus.RecordSellerError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seller"})
	}

	return c.JSON(http.StatusOK, seller)
}

// GetEligibility returns the derived eligibility flags for the
// authenticated user's seller account
func (h *SellerHandler) GetEligibility(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := currentClaims(c)
	if !ok {
		log.Error("Failed to get user claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	seller, err := h.repo.ByUserID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seller account not found"})
		}
		log.Error("Failed to load seller", zap.Uint("user_id", claims.UserID), zap.Error(err))
		prometheus.RecordSellerError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seller"})
	}

	return c.JSON(http.StatusOK, seller.Eligibility())
}

// UpdateBankDetails merges a partial bank details update into the
// seller's bank sub-record. The update invalidates bank verification.
func (h *SellerHandler) UpdateBankDetails(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := currentClaims(c)
	if !ok {
		log.Error("Failed to get user claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req model.BankDetailsUpdate
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse bank details update", zap.Error(err))
		prometheus.RecordSellerError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	seller, err := h.repo.ByUserID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seller account not found"})
		}
		log.Error("Failed to load seller", zap.Uint("user_id", claims.UserID), zap.Error(err))
		prometheus.RecordSellerError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seller"})
	}

	seller.UpdateBankDetails(req)

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.repo.Save(seller); err != nil {
		prometheus.RecordSellerError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save seller"})
	}

	log.Info("Seller bank details updated", zap.Uint("id", seller.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Bank details updated, verification reset",
		"bank_details": seller.BankDetails,
	})
}

// UpdateAddress merges a partial address update into the seller's
// address sub-record. The update invalidates address verification.
func (h *SellerHandler) UpdateAddress(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := currentClaims(c)
	if !ok {
		log.Error("Failed to get user claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req model.SellerAddressUpdate
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse address update", zap.Error(err))
		prometheus.RecordSellerError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	seller, err := h.repo.ByUserID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seller account not found"})
		}
		log.Error("Failed to load seller", zap.Uint("user_id", claims.UserID), zap.Error(err))
		prometheus.RecordSellerError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seller"})
	}

	seller.UpdateAddress(req)

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.repo.Save(seller); err != nil {
		prometheus.RecordSellerError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save seller"})
	}

	log.Info("Seller address updated", zap.Uint("id", seller.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Address updated, verification reset",
		"address": seller.Address,
	})
}

// UpdateCODSettings toggles cash-on-delivery for the seller
func (h *SellerHandler) UpdateCODSettings(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := currentClaims(c)
	if !ok {
		log.Error("Failed to get user claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		Enabled bool     `json:"enabled"`
		Rate    *float64 `json:"rate,omitempty"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse COD settings update", zap.Error(err))
		prometheus.RecordSellerError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	seller, err := h.repo.ByUserID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seller account not found"})
		}
		log.Error("Failed to load seller", zap.Uint("user_id", claims.UserID), zap.Error(err))
		prometheus.RecordSellerError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seller"})
	}

	if err := seller.UpdateCODSettings(req.Enabled, req.Rate); err != nil {
		log.Error("Invalid COD settings", zap.Error(err))
		prometheus.RecordSellerError("invalid_argument")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.repo.Save(seller); err != nil {
		prometheus.RecordSellerError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save seller"})
	}

	log.Info("Seller COD settings updated",
		zap.Uint("id", seller.ID),
		zap.Bool("cod_enabled", seller.CODEnabled))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "COD settings updated",
		"seller":  seller,
	})
}
