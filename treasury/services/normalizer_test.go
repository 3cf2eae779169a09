package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFeeLine(t *testing.T) {
	line := NormalizeFeeLine(map[string]interface{}{"amount": float64(100), "penalty": float64(20)})
	assert.True(t, line.Total.Equal(decimal.NewFromInt(120)))

	line = NormalizeFeeLine(map[string]interface{}{"amount": float64(100), "penalty": float64(20), "total": float64(999)})
	assert.True(t, line.Total.Equal(decimal.NewFromInt(999)), "explicit total wins")

	line = NormalizeFeeLine(map[string]interface{}{"amount": "1,500.50"})
	assert.True(t, line.Total.Equal(decimal.NewFromFloat(1500.50)))

	line = NormalizeFeeLine(map[string]interface{}{"amount": "garbage", "total": "also garbage"})
	assert.True(t, line.Total.IsZero())
}

func TestNormalizeAssessmentResolvesLegacyKeys(t *testing.T) {
	record := NormalizeAssessment(map[string]interface{}{
		"client_uid":      "app-7",
		"cedula":          "CC-2026-0001",
		"officialReceipt": "OR-555",
		"additionalFees": []interface{}{
			map[string]interface{}{"name": "Delivery Truck Fee", "amount": float64(150)},
			map[string]interface{}{}, // fully empty row is dropped
		},
		"fees": map[string]interface{}{
			"mayorsPermit": map[string]interface{}{"amount": float64(500)},
		},
	})
	require.NotNil(t, record)
	assert.Equal(t, "app-7", record.ApplicationUID)
	assert.Equal(t, "CC-2026-0001", record.CedulaNo)
	assert.Equal(t, "OR-555", record.ORNo)
	require.Len(t, record.AdditionalFees, 1)
	assert.Equal(t, "Delivery Truck Fee", record.AdditionalFees[0].Name)
	assert.True(t, record.Fees["mayors_permit"].Total.Equal(decimal.NewFromInt(500)))
}

func TestNormalizeAssessmentWithoutIdentifier(t *testing.T) {
	assert.Nil(t, NormalizeAssessment(map[string]interface{}{"fees": map[string]interface{}{}}))
	assert.Nil(t, NormalizeAssessment(nil))
}

func TestNormalizeAssessmentZeroAmountRowSurvivesFilter(t *testing.T) {
	record := NormalizeAssessment(map[string]interface{}{
		"application_uid": "app-8",
		"additional_fees": []interface{}{
			map[string]interface{}{"amount": float64(0)},
		},
	})
	require.NotNil(t, record)
	// Explicit zero is an amount, not an empty cell.
	require.Len(t, record.AdditionalFees, 1)
}

func TestPreserveIssuedAt(t *testing.T) {
	const issued = int64(1700000000000)
	const now = int64(1800000000000)

	assert.Equal(t, issued, PreserveIssuedAt("CC-1", issued, "CC-1", now), "unchanged number keeps original stamp")
	assert.Equal(t, now, PreserveIssuedAt("CC-1", issued, "CC-2", now), "changed number stamps now")
	assert.Equal(t, now, PreserveIssuedAt("", 0, "CC-1", now), "first issue stamps now")
	assert.Equal(t, int64(0), PreserveIssuedAt("CC-1", issued, "", now), "cleared number clears stamp")
}

func TestMostRecent(t *testing.T) {
	older := &TreasuryAssessmentRecord{ApplicationUID: "a", UpdatedAt: 100}
	newer := &TreasuryAssessmentRecord{ApplicationUID: "a", UpdatedAt: 200}
	createdOnly := &TreasuryAssessmentRecord{ApplicationUID: "a", CreatedAt: 300}

	assert.Same(t, newer, MostRecent([]*TreasuryAssessmentRecord{older, newer}))
	assert.Same(t, createdOnly, MostRecent([]*TreasuryAssessmentRecord{older, newer, createdOnly}))
	assert.Nil(t, MostRecent(nil))
}
