package model

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
)

// SellerStatus represents the lifecycle status of a seller account
type SellerStatus string

const (
	// SellerStatusPending is the initial status after onboarding
	SellerStatusPending SellerStatus = "pending"
	// SellerStatusApproved means the seller may trade
	SellerStatusApproved SellerStatus = "approved"
	// SellerStatusBlocked means the seller was blocked by an admin
	SellerStatusBlocked SellerStatus = "blocked"
	// SellerStatusSuspended means the seller is suspended until SuspendedUntil
	SellerStatusSuspended SellerStatus = "suspended"
)

// BusinessType represents the seller's business category
type BusinessType string

const (
	BusinessTypeLocal    BusinessType = "local"
	BusinessTypeDropship BusinessType = "dropship"
)

// BankDetails holds the seller's payout bank account.
// Mutating any field invalidates the verification.
type BankDetails struct {
	AccountHolder string     `json:"account_holder" gorm:"type:varchar(100)"`
	AccountNumber string     `json:"account_number" gorm:"type:varchar(34)"`
	RoutingCode   string     `json:"routing_code" gorm:"type:varchar(20)"`
	BankName      string     `json:"bank_name" gorm:"type:varchar(100)"`
	BranchName    string     `json:"branch_name" gorm:"type:varchar(100)"`
	PaymentHandle string     `json:"payment_handle" gorm:"type:varchar(100)"`
	IsVerified    bool       `json:"is_verified" gorm:"default:false"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`
}

// SellerAddress holds the seller's registered business address and tax IDs
type SellerAddress struct {
	Street    string `json:"street" gorm:"type:varchar(200)"`
	City      string `json:"city" gorm:"type:varchar(50)"`
	State     string `json:"state" gorm:"type:varchar(50)"`
	Country   string `json:"country" gorm:"type:varchar(50)"`
	ZipCode   string `json:"zip_code" gorm:"type:varchar(20)"`
	GSTNumber string `json:"gst_number" gorm:"type:varchar(20)"`
	PANNumber string `json:"pan_number" gorm:"type:varchar(20)"`
}

// SellerStatistics holds derived bookkeeping for a seller.
// Counters never go below zero.
type SellerStatistics struct {
	TotalProducts    int     `json:"total_products" gorm:"default:0"`
	ActiveProducts   int     `json:"active_products" gorm:"default:0"`
	TotalOrders      int     `json:"total_orders" gorm:"default:0"`
	CompletedOrders  int     `json:"completed_orders" gorm:"default:0"`
	CancelledOrders  int     `json:"cancelled_orders" gorm:"default:0"`
	TotalEarnings    float64 `json:"total_earnings" gorm:"default:0"`
	PendingEarnings  float64 `json:"pending_earnings" gorm:"default:0"`
	WithdrawnAmount  float64 `json:"withdrawn_amount" gorm:"default:0"`
	AverageRating    float64 `json:"average_rating" gorm:"default:0"`
	TotalRatings     int     `json:"total_ratings" gorm:"default:0"`
	ResponseRate     float64 `json:"response_rate" gorm:"default:0"`
	ShippingAccuracy float64 `json:"shipping_accuracy" gorm:"default:0"`
}

// SellerEligibility is the derived view of what a seller is allowed to do
type SellerEligibility struct {
	CanListProducts     bool `json:"can_list_products"`
	CanAcceptOrders     bool `json:"can_accept_orders"`
	CanWithdrawEarnings bool `json:"can_withdraw_earnings"`
	CanUseCOD           bool `json:"can_use_cod"`
	CanAcceptDropship   bool `json:"can_accept_dropship"`
}

// Seller represents the seller account stored in the database.
// One seller account per user.
type Seller struct {
	ID              uint         `json:"id" gorm:"primaryKey"`
	UserID          uint         `json:"user_id" gorm:"uniqueIndex;not null"`
	ShopName        string       `json:"shop_name" gorm:"type:varchar(100);index;not null"`
	ShopDescription string       `json:"shop_description" gorm:"type:text"`
	ShopImage       string       `json:"shop_image,omitempty" gorm:"type:varchar(255)"`
	BusinessType    BusinessType `json:"business_type" gorm:"type:varchar(20);not null;default:'local'"`

	CommissionRate    float64 `json:"commission_rate" gorm:"default:0"`
	CODEnabled        bool    `json:"cod_enabled" gorm:"default:false"`
	CODCommissionRate float64 `json:"cod_commission_rate" gorm:"default:0"`

	Status          SellerStatus `json:"status" gorm:"type:varchar(20);index;not null;default:'pending'"`
	StatusReason    string       `json:"status_reason" gorm:"type:text"`
	StatusChangedAt *time.Time   `json:"status_changed_at,omitempty"`
	StatusChangedBy *uint        `json:"status_changed_by,omitempty"`
	ApprovedAt      *time.Time   `json:"approved_at,omitempty"`
	SuspendedUntil  *time.Time   `json:"suspended_until,omitempty"`

	BankDetails BankDetails      `json:"bank_details" gorm:"embedded;embeddedPrefix:bank_"`
	Address     SellerAddress    `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Statistics  SellerStatistics `json:"statistics" gorm:"embedded;embeddedPrefix:stats_"`

	GSTVerified         bool       `json:"gst_verified" gorm:"default:false"`
	PANVerified         bool       `json:"pan_verified" gorm:"default:false"`
	BankVerified        bool       `json:"bank_verified" gorm:"default:false"`
	AddressVerified     bool       `json:"address_verified" gorm:"default:false"`
	DocumentSubmittedAt *time.Time `json:"document_submitted_at,omitempty"`
	DocumentVerifiedAt  *time.Time `json:"document_verified_at,omitempty"`

	IsActive       bool       `json:"is_active" gorm:"default:true"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
	Notes          string     `json:"notes" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Document kinds accepted by MarkDocumentVerified
const (
	DocumentKindGST     = "gst"
	DocumentKindPAN     = "pan"
	DocumentKindBank    = "bank"
	DocumentKindAddress = "address"
)

func (s *Seller) touch() {
	now := time.Now()
	s.LastActivityAt = &now
}

func (s *Seller) setStatus(status SellerStatus, actorID uint, reason string) {
	now := time.Now()
	s.Status = status
	s.StatusReason = reason
	s.StatusChangedAt = &now
	s.StatusChangedBy = &actorID
	s.touch()
}

// Approve transitions the seller to approved. Any state may be re-approved.
func (s *Seller) Approve(actorID uint, reason string) {
	if reason == "" {
		reason = "Seller account approved"
	}
	now := time.Now()
	s.setStatus(SellerStatusApproved, actorID, reason)
	s.ApprovedAt = &now
	s.IsActive = true
}

// Block transitions the seller to blocked. A reason is required.
func (s *Seller) Block(actorID uint, reason string) error {
	if reason == "" {
		return fmt.Errorf("block reason is required: %w", ErrInvalidArgument)
	}
	s.setStatus(SellerStatusBlocked, actorID, reason)
	s.IsActive = false
	return nil
}

// Suspend transitions the seller to suspended until now + days.
// The sign of days is not validated; a non-positive value yields a
// deadline in the past.
func (s *Seller) Suspend(actorID uint, days int, reason string) {
	until := time.Now().Add(time.Duration(days) * 24 * time.Hour)
	s.setStatus(SellerStatusSuspended, actorID, reason)
	s.SuspendedUntil = &until
}

// Unsuspend lifts a suspension and returns the seller to approved
func (s *Seller) Unsuspend(actorID uint) {
	s.setStatus(SellerStatusApproved, actorID, "Suspension lifted")
	s.SuspendedUntil = nil
	s.IsActive = true
}

// Eligibility computes what the seller may currently do. No side effects.
func (s *Seller) Eligibility() SellerEligibility {
	approved := s.Status == SellerStatusApproved
	return SellerEligibility{
		CanListProducts:     approved,
		CanAcceptOrders:     approved,
		CanWithdrawEarnings: approved && s.IsActive && s.BankVerified && s.Statistics.TotalEarnings > 0,
		CanUseCOD:           approved && s.CODEnabled,
		CanAcceptDropship:   approved && s.BusinessType == BusinessTypeDropship,
	}
}

// UpdateCommissionRate sets the commission rate. Rate must be within [0,100].
func (s *Seller) UpdateCommissionRate(rate float64, actorID uint) error {
	if rate < 0 || rate > 100 {
		return fmt.Errorf("commission rate %v out of range [0,100]: %w", rate, ErrInvalidArgument)
	}
	s.CommissionRate = rate
	s.StatusChangedBy = &actorID
	s.touch()
	return nil
}

// UpdateCODSettings toggles cash-on-delivery and optionally sets its commission rate
func (s *Seller) UpdateCODSettings(enabled bool, rate *float64) error {
	if rate != nil && (*rate < 0 || *rate > 100) {
		return fmt.Errorf("COD commission rate %v out of range [0,100]: %w", *rate, ErrInvalidArgument)
	}
	s.CODEnabled = enabled
	if rate != nil {
		s.CODCommissionRate = *rate
	}
	s.touch()
	return nil
}

// BankDetailsUpdate carries a partial bank details update; nil fields are left unchanged
type BankDetailsUpdate struct {
	AccountHolder *string `json:"account_holder,omitempty"`
	AccountNumber *string `json:"account_number,omitempty"`
	RoutingCode   *string `json:"routing_code,omitempty"`
	BankName      *string `json:"bank_name,omitempty"`
	BranchName    *string `json:"branch_name,omitempty"`
	PaymentHandle *string `json:"payment_handle,omitempty"`
}

// UpdateBankDetails merges the update into the bank sub-record and
// invalidates its verification.
func (s *Seller) UpdateBankDetails(update BankDetailsUpdate) {
	if update.AccountHolder != nil {
		s.BankDetails.AccountHolder = *update.AccountHolder
	}
	if update.AccountNumber != nil {
		s.BankDetails.AccountNumber = *update.AccountNumber
	}
	if update.RoutingCode != nil {
		s.BankDetails.RoutingCode = *update.RoutingCode
	}
	if update.BankName != nil {
		s.BankDetails.BankName = *update.BankName
	}
	if update.BranchName != nil {
		s.BankDetails.BranchName = *update.BranchName
	}
	if update.PaymentHandle != nil {
		s.BankDetails.PaymentHandle = *update.PaymentHandle
	}
	s.BankDetails.IsVerified = false
	s.BankDetails.VerifiedAt = nil
	s.touch()
}

// SellerAddressUpdate carries a partial address update; nil fields are left unchanged
type SellerAddressUpdate struct {
	Street    *string `json:"street,omitempty"`
	City      *string `json:"city,omitempty"`
	State     *string `json:"state,omitempty"`
	Country   *string `json:"country,omitempty"`
	ZipCode   *string `json:"zip_code,omitempty"`
	GSTNumber *string `json:"gst_number,omitempty"`
	PANNumber *string `json:"pan_number,omitempty"`
}

// UpdateAddress merges the update into the address sub-record and
// invalidates the address verification.
func (s *Seller) UpdateAddress(update SellerAddressUpdate) {
	if update.Street != nil {
		s.Address.Street = *update.Street
	}
	if update.City != nil {
		s.Address.City = *update.City
	}
	if update.State != nil {
		s.Address.State = *update.State
	}
	if update.Country != nil {
		s.Address.Country = *update.Country
	}
	if update.ZipCode != nil {
		s.Address.ZipCode = *update.ZipCode
	}
	if update.GSTNumber != nil {
		s.Address.GSTNumber = *update.GSTNumber
	}
	if update.PANNumber != nil {
		s.Address.PANNumber = *update.PANNumber
	}
	s.AddressVerified = false
	s.touch()
}

// SellerStatisticsUpdate carries a partial statistics overwrite; nil fields are left unchanged
type SellerStatisticsUpdate struct {
	TotalProducts    *int     `json:"total_products,omitempty"`
	ActiveProducts   *int     `json:"active_products,omitempty"`
	TotalOrders      *int     `json:"total_orders,omitempty"`
	CompletedOrders  *int     `json:"completed_orders,omitempty"`
	CancelledOrders  *int     `json:"cancelled_orders,omitempty"`
	TotalEarnings    *float64 `json:"total_earnings,omitempty"`
	PendingEarnings  *float64 `json:"pending_earnings,omitempty"`
	WithdrawnAmount  *float64 `json:"withdrawn_amount,omitempty"`
	AverageRating    *float64 `json:"average_rating,omitempty"`
	TotalRatings     *int     `json:"total_ratings,omitempty"`
	ResponseRate     *float64 `json:"response_rate,omitempty"`
	ShippingAccuracy *float64 `json:"shipping_accuracy,omitempty"`
}

// UpdateStatistics shallow-merges the given fields into the statistics
// sub-record. Supplied values overwrite; this is the direct overwrite
// path, distinct from the increment methods.
func (s *Seller) UpdateStatistics(update SellerStatisticsUpdate) {
	if update.TotalProducts != nil {
		s.Statistics.TotalProducts = *update.TotalProducts
	}
	if update.ActiveProducts != nil {
		s.Statistics.ActiveProducts = *update.ActiveProducts
	}
	if update.TotalOrders != nil {
		s.Statistics.TotalOrders = *update.TotalOrders
	}
	if update.CompletedOrders != nil {
		s.Statistics.CompletedOrders = *update.CompletedOrders
	}
	if update.CancelledOrders != nil {
		s.Statistics.CancelledOrders = *update.CancelledOrders
	}
	if update.TotalEarnings != nil {
		s.Statistics.TotalEarnings = *update.TotalEarnings
	}
	if update.PendingEarnings != nil {
		s.Statistics.PendingEarnings = *update.PendingEarnings
	}
	if update.WithdrawnAmount != nil {
		s.Statistics.WithdrawnAmount = *update.WithdrawnAmount
	}
	if update.AverageRating != nil {
		s.Statistics.AverageRating = *update.AverageRating
	}
	if update.TotalRatings != nil {
		s.Statistics.TotalRatings = *update.TotalRatings
	}
	if update.ResponseRate != nil {
		s.Statistics.ResponseRate = *update.ResponseRate
	}
	if update.ShippingAccuracy != nil {
		s.Statistics.ShippingAccuracy = *update.ShippingAccuracy
	}
	s.touch()
}

// IncrementProductCount adjusts the product counters up by n
func (s *Seller) IncrementProductCount(n int) {
	s.Statistics.TotalProducts += n
	s.Statistics.ActiveProducts += n
	s.touch()
}

// DecrementProductCount adjusts the product counters down by n,
// clamped at zero.
func (s *Seller) DecrementProductCount(n int) {
	s.Statistics.TotalProducts = max(0, s.Statistics.TotalProducts-n)
	s.Statistics.ActiveProducts = max(0, s.Statistics.ActiveProducts-n)
	s.touch()
}

// RecordOrder counts an order against the seller. The amount is reported
// by the order layer but earnings flow only through AddEarnings.
func (s *Seller) RecordOrder(amount float64, completed bool) {
	_ = amount
	s.Statistics.TotalOrders++
	if completed {
		s.Statistics.CompletedOrders++
	}
	s.touch()
}

// UpdateRating folds one new rating into the running mean, rounded to
// two decimal places. Rating must be within [0,5].
func (s *Seller) UpdateRating(rating float64) error {
	if rating < 0 || rating > 5 {
		return fmt.Errorf("rating %v out of range [0,5]: %w", rating, ErrInvalidArgument)
	}
	total := float64(s.Statistics.TotalRatings)
	s.Statistics.AverageRating = round2((s.Statistics.AverageRating*total + rating) / (total + 1))
	s.Statistics.TotalRatings++
	s.touch()
	return nil
}

// AddEarnings credits the seller. Pending earnings are held back until
// the payment layer releases them into total earnings.
func (s *Seller) AddEarnings(amount float64, pending bool) error {
	if amount < 0 {
		return fmt.Errorf("earnings amount %v must not be negative: %w", amount, ErrInvalidArgument)
	}
	if pending {
		s.Statistics.PendingEarnings += amount
	} else {
		s.Statistics.TotalEarnings += amount
	}
	s.touch()
	return nil
}

// RecordWithdrawal moves amount from total earnings to the withdrawn
// total. The amount must not exceed current total earnings.
func (s *Seller) RecordWithdrawal(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("withdrawal amount %v must not be negative: %w", amount, ErrInvalidArgument)
	}
	if amount > s.Statistics.TotalEarnings {
		return fmt.Errorf("withdrawal amount %v exceeds total earnings %v: %w",
			amount, s.Statistics.TotalEarnings, ErrInvalidArgument)
	}
	s.Statistics.TotalEarnings -= amount
	s.Statistics.WithdrawnAmount += amount
	s.touch()
	return nil
}

// MarkDocumentVerified records a verification confirmation from the KYC
// workflow. Verifying "bank" also verifies the bank sub-record.
func (s *Seller) MarkDocumentVerified(kind string) error {
	now := time.Now()
	switch kind {
	case DocumentKindGST:
		s.GSTVerified = true
	case DocumentKindPAN:
		s.PANVerified = true
	case DocumentKindBank:
		s.BankVerified = true
		s.BankDetails.IsVerified = true
		s.BankDetails.VerifiedAt = &now
	case DocumentKindAddress:
		s.AddressVerified = true
	default:
		return fmt.Errorf("unrecognized document kind %q: %w", kind, ErrInvalidArgument)
	}
	s.DocumentVerifiedAt = &now
	s.touch()
	return nil
}

// round2 rounds to two decimal places, half away from zero
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
