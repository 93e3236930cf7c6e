package services

import (
	"testing"
	"time"

	"ecorecycle-server/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPointsTransactionBootstrapsProfile(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	userID := uuid.New()

	// No profile exists yet; the ledger must create one rather than fail
	txID, err := ledger.AddPointsTransaction(userID, 25, models.TransactionEarnedWaste, "first earn", nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, txID)

	assert.Equal(t, int64(25), ledger.GetUserPoints(userID))
}

func TestBalanceNeverNegative(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	userID := uuid.New()

	_, err := ledger.AddPointsTransaction(userID, 10, models.TransactionEarnedWaste, "earn", nil)
	require.NoError(t, err)

	// Debit larger than the balance clamps the cache at zero
	_, err = ledger.AddPointsTransaction(userID, -15, models.TransactionSpentDiscount, "overspend", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ledger.GetUserPoints(userID))

	// The log still records the full signed change
	history, err := ledger.GetUserPointsHistory(userID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	changes := []int64{history[0].PointsChange, history[1].PointsChange}
	assert.Contains(t, changes, int64(-15))
	assert.Contains(t, changes, int64(10))
}

func TestBalanceAccumulates(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	userID := uuid.New()

	changes := []int64{12, 37, -20, 5}
	for _, change := range changes {
		txType := models.TransactionEarnedRecycle
		if change < 0 {
			txType = models.TransactionSpentDiscount
		}
		_, err := ledger.AddPointsTransaction(userID, change, txType, "seq", nil)
		require.NoError(t, err)
	}

	assert.Equal(t, int64(34), ledger.GetUserPoints(userID))
}

func TestGetUserPointsMissingProfile(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)

	// "no profile yet" reads as zero points, never an error
	assert.Equal(t, int64(0), ledger.GetUserPoints(uuid.New()))
}

func TestPointsHistoryNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	userID := uuid.New()

	for i, change := range []int64{10, 20, 30} {
		_, err := ledger.AddPointsTransaction(userID, change, models.TransactionEarnedWaste, "entry", nil)
		require.NoError(t, err, "entry %d", i)
		time.Sleep(2 * time.Millisecond)
	}

	history, err := ledger.GetUserPointsHistory(userID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, int64(30), history[0].PointsChange)
	assert.Equal(t, int64(10), history[2].PointsChange)
}

func TestRelatedIDRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	userID := uuid.New()
	wasteID := uuid.New()

	points := ledger.AwardWastePoints(userID, wasteID, "plastic", 2.5)
	assert.Equal(t, int64(25), points)

	history, err := ledger.GetUserPointsHistory(userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.TransactionEarnedWaste, history[0].Type)
	require.NotNil(t, history[0].RelatedID)
	assert.Equal(t, wasteID, *history[0].RelatedID)
}

func TestAwardPickupPointsIncludesBonus(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	userID := uuid.New()

	points := ledger.AwardPickupPoints(userID, uuid.New(),
		[]string{"plastic", "glass"},
		map[string]float64{"plastic": 2.5, "glass": 1})
	assert.Equal(t, int64(44), points)
	assert.Equal(t, int64(44), ledger.GetUserPoints(userID))

	history, err := ledger.GetUserPointsHistory(userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.TransactionEarnedRecycle, history[0].Type)
}

func TestZeroPointAwardWritesNothing(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)
	userID := uuid.New()

	points := ledger.AwardWastePoints(userID, uuid.New(), "plastic", 0)
	assert.Equal(t, int64(0), points)

	history, err := ledger.GetUserPointsHistory(userID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestInvalidTransactionTypeRejected(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)

	_, err := ledger.AddPointsTransaction(uuid.New(), 10, models.TransactionType("bogus"), "nope", nil)
	assert.Error(t, err)
}

func TestUnauthenticatedLedgerCalls(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerService(db)

	_, err := ledger.AddPointsTransaction(uuid.Nil, 10, models.TransactionEarnedWaste, "x", nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = ledger.GetUserPointsHistory(uuid.Nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
