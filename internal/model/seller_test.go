package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingSeller() *Seller {
	return &Seller{
		UserID:       42,
		ShopName:     "Acme Outlet",
		BusinessType: BusinessTypeLocal,
		Status:       SellerStatusPending,
		IsActive:     true,
	}
}

func TestApprove(t *testing.T) {
	s := newPendingSeller()
	s.IsActive = false

	s.Approve(7, "")

	assert.Equal(t, SellerStatusApproved, s.Status)
	assert.Equal(t, "Seller account approved", s.StatusReason)
	assert.True(t, s.IsActive)
	require.NotNil(t, s.ApprovedAt)
	require.NotNil(t, s.StatusChangedAt)
	require.NotNil(t, s.StatusChangedBy)
	assert.Equal(t, uint(7), *s.StatusChangedBy)
	assert.NotNil(t, s.LastActivityAt)
}

func TestApproveCustomReason(t *testing.T) {
	s := newPendingSeller()
	s.Approve(7, "documents checked")
	assert.Equal(t, "documents checked", s.StatusReason)
}

func TestBlockRequiresReason(t *testing.T) {
	s := newPendingSeller()
	s.Approve(7, "")

	err := s.Block(7, "")

	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, SellerStatusApproved, s.Status)
	assert.True(t, s.IsActive)
}

func TestBlock(t *testing.T) {
	s := newPendingSeller()
	s.Approve(7, "")

	err := s.Block(9, "fraud report")

	require.NoError(t, err)
	assert.Equal(t, SellerStatusBlocked, s.Status)
	assert.Equal(t, "fraud report", s.StatusReason)
	assert.False(t, s.IsActive)
	assert.Equal(t, uint(9), *s.StatusChangedBy)
}

func TestSuspendUnsuspendSequence(t *testing.T) {
	s := newPendingSeller()

	s.Approve(7, "")
	s.Suspend(7, 7, "policy")

	assert.Equal(t, SellerStatusSuspended, s.Status)
	require.NotNil(t, s.SuspendedUntil)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), *s.SuspendedUntil, time.Minute)

	s.Unsuspend(7)

	assert.Equal(t, SellerStatusApproved, s.Status)
	assert.Nil(t, s.SuspendedUntil)
	assert.True(t, s.IsActive)
	assert.Equal(t, "Suspension lifted", s.StatusReason)
}

func TestSuspendNonPositiveDays(t *testing.T) {
	// Days are not validated; a non-positive value yields a deadline in
	// the past.
	s := newPendingSeller()
	s.Approve(7, "")
	s.Suspend(7, -1, "backdated")

	assert.Equal(t, SellerStatusSuspended, s.Status)
	require.NotNil(t, s.SuspendedUntil)
	assert.True(t, s.SuspendedUntil.Before(time.Now()))
}

func TestUpdateCommissionRate(t *testing.T) {
	testCases := []struct {
		name    string
		rate    float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"mid", 12.5, false},
		{"max", 100, false},
		{"negative", -0.01, true},
		{"over", 100.01, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newPendingSeller()
			s.CommissionRate = 5

			err := s.UpdateCommissionRate(tc.rate, 7)

			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				assert.Equal(t, 5.0, s.CommissionRate)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.rate, s.CommissionRate)
			}
			assert.GreaterOrEqual(t, s.CommissionRate, 0.0)
			assert.LessOrEqual(t, s.CommissionRate, 100.0)
		})
	}
}

func TestUpdateCODSettings(t *testing.T) {
	s := newPendingSeller()

	require.NoError(t, s.UpdateCODSettings(true, nil))
	assert.True(t, s.CODEnabled)
	assert.Equal(t, 0.0, s.CODCommissionRate)

	rate := 3.5
	require.NoError(t, s.UpdateCODSettings(true, &rate))
	assert.Equal(t, 3.5, s.CODCommissionRate)

	bad := 101.0
	err := s.UpdateCODSettings(false, &bad)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.True(t, s.CODEnabled)
	assert.Equal(t, 3.5, s.CODCommissionRate)
}

func TestUpdateBankDetailsResetsVerification(t *testing.T) {
	s := newPendingSeller()
	now := time.Now()
	s.BankDetails = BankDetails{
		AccountHolder: "Old Holder",
		AccountNumber: "0001",
		IsVerified:    true,
		VerifiedAt:    &now,
	}

	holder := "New Holder"
	s.UpdateBankDetails(BankDetailsUpdate{AccountHolder: &holder})

	assert.Equal(t, "New Holder", s.BankDetails.AccountHolder)
	assert.Equal(t, "0001", s.BankDetails.AccountNumber)
	assert.False(t, s.BankDetails.IsVerified)
	assert.Nil(t, s.BankDetails.VerifiedAt)

	// An empty update still resets verification
	s.BankDetails.IsVerified = true
	s.UpdateBankDetails(BankDetailsUpdate{})
	assert.False(t, s.BankDetails.IsVerified)
}

func TestUpdateAddressResetsVerification(t *testing.T) {
	s := newPendingSeller()
	s.AddressVerified = true
	s.Address.City = "Pune"

	city := "Mumbai"
	s.UpdateAddress(SellerAddressUpdate{City: &city})

	assert.Equal(t, "Mumbai", s.Address.City)
	assert.False(t, s.AddressVerified)
}

func TestMarkDocumentVerified(t *testing.T) {
	s := newPendingSeller()

	require.NoError(t, s.MarkDocumentVerified(DocumentKindGST))
	assert.True(t, s.GSTVerified)

	require.NoError(t, s.MarkDocumentVerified(DocumentKindPAN))
	assert.True(t, s.PANVerified)

	require.NoError(t, s.MarkDocumentVerified(DocumentKindAddress))
	assert.True(t, s.AddressVerified)
	require.NotNil(t, s.DocumentVerifiedAt)

	err := s.MarkDocumentVerified("aadhaar")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMarkBankVerifiedAlsoVerifiesBankDetails(t *testing.T) {
	s := newPendingSeller()

	holder := "Holder"
	s.UpdateBankDetails(BankDetailsUpdate{AccountHolder: &holder})
	assert.False(t, s.BankDetails.IsVerified)

	require.NoError(t, s.MarkDocumentVerified(DocumentKindBank))

	assert.True(t, s.BankVerified)
	assert.True(t, s.BankDetails.IsVerified)
	require.NotNil(t, s.BankDetails.VerifiedAt)
}

func TestUpdateStatisticsOverwrites(t *testing.T) {
	s := newPendingSeller()
	s.Statistics.TotalOrders = 10
	s.Statistics.TotalEarnings = 500

	orders := 3
	rate := 80.0
	s.UpdateStatistics(SellerStatisticsUpdate{
		TotalOrders:  &orders,
		ResponseRate: &rate,
	})

	assert.Equal(t, 3, s.Statistics.TotalOrders)
	assert.Equal(t, 80.0, s.Statistics.ResponseRate)
	// Untouched fields keep their values
	assert.Equal(t, 500.0, s.Statistics.TotalEarnings)
}

func TestProductCountClampedAtZero(t *testing.T) {
	s := newPendingSeller()

	s.IncrementProductCount(3)
	assert.Equal(t, 3, s.Statistics.TotalProducts)
	assert.Equal(t, 3, s.Statistics.ActiveProducts)

	s.DecrementProductCount(5)
	assert.Equal(t, 0, s.Statistics.TotalProducts)
	assert.Equal(t, 0, s.Statistics.ActiveProducts)

	for _, prior := range []int{0, 1, 4, 100} {
		for _, n := range []int{0, 1, 5, 1000} {
			s.Statistics.TotalProducts = prior
			s.Statistics.ActiveProducts = prior
			s.DecrementProductCount(n)
			assert.GreaterOrEqual(t, s.Statistics.TotalProducts, 0)
			assert.GreaterOrEqual(t, s.Statistics.ActiveProducts, 0)
		}
	}
}

func TestRecordOrder(t *testing.T) {
	s := newPendingSeller()

	s.RecordOrder(199.99, false)
	s.RecordOrder(49.50, true)

	assert.Equal(t, 2, s.Statistics.TotalOrders)
	assert.Equal(t, 1, s.Statistics.CompletedOrders)
	// Order amounts do not move earnings; those flow through AddEarnings
	assert.Equal(t, 0.0, s.Statistics.TotalEarnings)
	assert.Equal(t, 0.0, s.Statistics.PendingEarnings)
}

func TestUpdateRatingRunningMean(t *testing.T) {
	s := newPendingSeller()

	require.NoError(t, s.UpdateRating(4))
	assert.Equal(t, 4.00, s.Statistics.AverageRating)
	assert.Equal(t, 1, s.Statistics.TotalRatings)

	require.NoError(t, s.UpdateRating(5))
	assert.Equal(t, 4.50, s.Statistics.AverageRating)
	assert.Equal(t, 2, s.Statistics.TotalRatings)

	require.NoError(t, s.UpdateRating(3))
	assert.InDelta(t, 4.0, s.Statistics.AverageRating, 0.005)
	assert.Equal(t, 3, s.Statistics.TotalRatings)
}

func TestUpdateRatingRounding(t *testing.T) {
	s := newPendingSeller()

	require.NoError(t, s.UpdateRating(5))
	require.NoError(t, s.UpdateRating(4))
	require.NoError(t, s.UpdateRating(4))

	// Mean of 5, 4, 4 is 4.333..., rounded to two decimals
	assert.Equal(t, 4.33, s.Statistics.AverageRating)
}

func TestUpdateRatingRange(t *testing.T) {
	s := newPendingSeller()

	require.ErrorIs(t, s.UpdateRating(-0.1), ErrInvalidArgument)
	require.ErrorIs(t, s.UpdateRating(5.1), ErrInvalidArgument)
	assert.Equal(t, 0, s.Statistics.TotalRatings)
	assert.Equal(t, 0.0, s.Statistics.AverageRating)

	require.NoError(t, s.UpdateRating(0))
	require.NoError(t, s.UpdateRating(5))
	assert.GreaterOrEqual(t, s.Statistics.AverageRating, 0.0)
	assert.LessOrEqual(t, s.Statistics.AverageRating, 5.0)
}

func TestAddEarnings(t *testing.T) {
	s := newPendingSeller()

	require.NoError(t, s.AddEarnings(100, true))
	assert.Equal(t, 100.0, s.Statistics.PendingEarnings)
	assert.Equal(t, 0.0, s.Statistics.TotalEarnings)

	require.NoError(t, s.AddEarnings(250, false))
	assert.Equal(t, 250.0, s.Statistics.TotalEarnings)

	require.ErrorIs(t, s.AddEarnings(-1, false), ErrInvalidArgument)
	assert.Equal(t, 250.0, s.Statistics.TotalEarnings)
	assert.Equal(t, 100.0, s.Statistics.PendingEarnings)
}

func TestRecordWithdrawal(t *testing.T) {
	s := newPendingSeller()
	require.NoError(t, s.AddEarnings(200, false))

	require.ErrorIs(t, s.RecordWithdrawal(-5), ErrInvalidArgument)
	require.ErrorIs(t, s.RecordWithdrawal(200.01), ErrInvalidArgument)
	assert.Equal(t, 200.0, s.Statistics.TotalEarnings)
	assert.Equal(t, 0.0, s.Statistics.WithdrawnAmount)

	for _, amount := range []float64{0, 50, 150} {
		before := s.Statistics.TotalEarnings
		require.NoError(t, s.RecordWithdrawal(amount))
		assert.Equal(t, before-amount, s.Statistics.TotalEarnings)
	}
	assert.Equal(t, 0.0, s.Statistics.TotalEarnings)
	assert.Equal(t, 200.0, s.Statistics.WithdrawnAmount)
}

func TestEligibilityWithdrawCrossProduct(t *testing.T) {
	statuses := []SellerStatus{
		SellerStatusPending,
		SellerStatusApproved,
		SellerStatusBlocked,
		SellerStatusSuspended,
	}
	bools := []bool{false, true}
	earnings := []float64{0, 150}

	for _, status := range statuses {
		for _, active := range bools {
			for _, bankVerified := range bools {
				for _, total := range earnings {
					s := newPendingSeller()
					s.Status = status
					s.IsActive = active
					s.BankVerified = bankVerified
					s.Statistics.TotalEarnings = total

					want := status == SellerStatusApproved && active && bankVerified && total > 0
					got := s.Eligibility().CanWithdrawEarnings

					assert.Equal(t, want, got,
						"status=%s active=%v bankVerified=%v earnings=%v",
						status, active, bankVerified, total)
				}
			}
		}
	}
}

func TestEligibilityFlags(t *testing.T) {
	s := newPendingSeller()

	e := s.Eligibility()
	assert.False(t, e.CanListProducts)
	assert.False(t, e.CanAcceptOrders)
	assert.False(t, e.CanUseCOD)
	assert.False(t, e.CanAcceptDropship)

	s.Approve(7, "")
	s.CODEnabled = true

	e = s.Eligibility()
	assert.True(t, e.CanListProducts)
	assert.True(t, e.CanAcceptOrders)
	assert.True(t, e.CanUseCOD)
	assert.False(t, e.CanAcceptDropship)

	s.BusinessType = BusinessTypeDropship
	assert.True(t, s.Eligibility().CanAcceptDropship)
}

func TestMutatorsTouchLastActivity(t *testing.T) {
	s := newPendingSeller()
	require.Nil(t, s.LastActivityAt)

	require.NoError(t, s.AddEarnings(10, true))
	require.NotNil(t, s.LastActivityAt)
	assert.WithinDuration(t, time.Now(), *s.LastActivityAt, time.Minute)
}
