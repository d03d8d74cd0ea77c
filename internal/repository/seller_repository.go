package repository

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/subhadipbhunia9332-sketch/nexora-backend/internal/model"
)

// SellerRepository is the read/write access layer for seller accounts
type SellerRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSellerRepository creates a new seller repository
func NewSellerRepository(db *gorm.DB, logger *zap.Logger) *SellerRepository {
	return &SellerRepository{
		db:     db,
		logger: logger,
	}
}

// SellerSummary aggregates approved, active sellers
type SellerSummary struct {
	TotalSellers  int64   `json:"total_sellers"`
	AverageRating float64 `json:"average_rating"`
	TotalEarnings float64 `json:"total_earnings"`
	TotalOrders   int64   `json:"total_orders"`
}

// ByID loads a seller by primary key
func (r *SellerRepository) ByID(id uint) (*model.Seller, error) {
	var seller model.Seller
	if result := r.db.First(&seller, id); result.Error != nil {
		return nil, result.Error
	}
	return &seller, nil
}

// ByUserID loads the seller account belonging to a user
func (r *SellerRepository) ByUserID(userID uint) (*model.Seller, error) {
	var seller model.Seller
	if result := r.db.Where("user_id = ?", userID).First(&seller); result.Error != nil {
		return nil, result.Error
	}
	return &seller, nil
}

// Create inserts a new seller account
func (r *SellerRepository) Create(seller *model.Seller) error {
	if result := r.db.Create(seller); result.Error != nil {
		r.logger.Error("Failed to create seller", zap.Uint("user_id", seller.UserID), zap.Error(result.Error))
		return result.Error
	}
	return nil
}

// Save persists the whole seller record (last writer wins)
func (r *SellerRepository) Save(seller *model.Seller) error {
	if result := r.db.Save(seller); result.Error != nil {
		r.logger.Error("Failed to save seller", zap.Uint("id", seller.ID), zap.Error(result.Error))
		return result.Error
	}
	return nil
}

// ByStatus lists sellers in the given lifecycle status
func (r *SellerRepository) ByStatus(status model.SellerStatus) ([]model.Seller, error) {
	var sellers []model.Seller
	if result := r.db.Where("status = ?", status).Find(&sellers); result.Error != nil {
		return nil, result.Error
	}
	return sellers, nil
}

// ActiveApproved lists sellers that are approved and active
func (r *SellerRepository) ActiveApproved() ([]model.Seller, error) {
	var sellers []model.Seller
	if result := r.db.Where("status = ? AND is_active = ?", model.SellerStatusApproved, true).Find(&sellers); result.Error != nil {
		return nil, result.Error
	}
	return sellers, nil
}

// TopRated lists approved, active sellers ordered by rating descending
func (r *SellerRepository) TopRated(limit int) ([]model.Seller, error) {
	var sellers []model.Seller
	result := r.db.
		Where("status = ? AND is_active = ?", model.SellerStatusApproved, true).
		Order("stats_average_rating DESC").
		Limit(limit).
		Find(&sellers)
	if result.Error != nil {
		return nil, result.Error
	}
	return sellers, nil
}

// SearchByShopName searches approved, active sellers by shop name
func (r *SellerRepository) SearchByShopName(query string) ([]model.Seller, error) {
	var sellers []model.Seller
	result := r.db.
		Where("status = ? AND is_active = ?", model.SellerStatusApproved, true).
		Where("shop_name ILIKE ?", "%"+query+"%").
		Find(&sellers)
	if result.Error != nil {
		return nil, result.Error
	}
	return sellers, nil
}

// Summary aggregates count, average rating, earnings and orders over
// approved, active sellers
func (r *SellerRepository) Summary() (*SellerSummary, error) {
	var summary SellerSummary
	result := r.db.
		Model(&model.Seller{}).
		Select("COUNT(*) AS total_sellers, " +
			"COALESCE(AVG(stats_average_rating), 0) AS average_rating, " +
			"COALESCE(SUM(stats_total_earnings), 0) AS total_earnings, " +
			"COALESCE(SUM(stats_total_orders), 0) AS total_orders").
		Where("status = ? AND is_active = ?", model.SellerStatusApproved, true).
		Scan(&summary)
	if result.Error != nil {
		r.logger.Error("Failed to aggregate seller summary", zap.Error(result.Error))
		return nil, result.Error
	}
	return &summary, nil
}

// CountActiveApproved counts approved, active sellers
func (r *SellerRepository) CountActiveApproved() (int64, error) {
	var count int64
	result := r.db.
		Model(&model.Seller{}).
		Where("status = ? AND is_active = ?", model.SellerStatusApproved, true).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
