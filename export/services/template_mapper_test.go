package services

import (
	"testing"

	app_services "business-permits-backend/applications/services"
	treasury_services "business-permits-backend/treasury/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTemplateTreasuryFieldsNilAssessment(t *testing.T) {
	data := BuildTemplateTreasuryFields(nil)

	for _, key := range treasury_services.FeeKeys {
		for _, placeholder := range []string{
			key,
			key + "_amount",
			key + "_penalty",
			key + "_total",
			"treasury_" + key + "_amount",
			"treasury_" + key + "_penalty",
			"treasury_" + key + "_total",
		} {
			value, ok := data[placeholder]
			require.True(t, ok, "placeholder %s must be present", placeholder)
			assert.Equal(t, "", value, placeholder)
		}
	}

	assert.Equal(t, "", data["grand_total"])
	assert.Equal(t, "", data["others_label"])
	assert.Equal(t, "", data["others_total"])
	assert.Equal(t, "", data["lgu_total"])
	assert.Equal(t, "", data["cedula_no"])
	assert.Equal(t, "", data["or_no"])
}

func TestBuildTemplateTreasuryFieldsRecomputesGrandTotal(t *testing.T) {
	assessment := treasury_services.NormalizeAssessment(map[string]interface{}{
		"application_uid": "app-1",
		// Stored grand total is stale on purpose; the rendered one must come
		// from the line items.
		"grand_total": float64(9999),
		"fees": map[string]interface{}{
			"mayors_permit": map[string]interface{}{"amount": float64(100), "penalty": float64(20)},
			"garbage_fee":   map[string]interface{}{"amount": float64(300)},
		},
		"additional_fees": []interface{}{
			map[string]interface{}{"name": "delivery truck fee", "amount": float64(50)},
			map[string]interface{}{"name": "delivery truck fee", "amount": float64(30)},
		},
	})
	require.NotNil(t, assessment)

	data := BuildTemplateTreasuryFields(assessment)

	assert.Equal(t, "120", data["mayors_permit_total"])
	assert.Equal(t, "100", data["mayors_permit_amount"])
	assert.Equal(t, "20", data["mayors_permit_penalty"])
	assert.Equal(t, "300", data["garbage_fee"])
	assert.Equal(t, "", data["business_tax"])

	assert.Equal(t, "80", data["others_total"])
	assert.Equal(t, "Delivery Truck Fee", data["others_label"])
	// 120 + 300 + 80, never the stored 9999.
	assert.Equal(t, "500", data["grand_total"])
}

func TestBuildTemplateDataRenewalCheckboxes(t *testing.T) {
	record := app_services.NormalizeApplication("app-1", map[string]interface{}{
		"form": map[string]interface{}{
			"applicationType": "Renewal",
			"businessName":    "Sari-Sari Store",
			"gender":          "Female",
			"ownershipType":   "Sole Proprietorship",
			"paymentMode":     "Quarterly",
		},
	})

	data := BuildTemplateData(record, nil)

	assert.Equal(t, Checked, data["appRenewalBox"])
	assert.Equal(t, Unchecked, data["appNewBox"])
	assert.Equal(t, Checked, data["genderFemaleBox"])
	assert.Equal(t, Unchecked, data["genderMaleBox"])
	assert.Equal(t, Checked, data["ownSoleBox"])
	assert.Equal(t, Unchecked, data["ownCorpBox"])
	assert.Equal(t, Checked, data["payQuarterlyBox"])
	assert.Equal(t, Unchecked, data["payAnnuallyBox"])
}

func TestBuildTemplateDataActivityTotals(t *testing.T) {
	record := app_services.NormalizeApplication("app-2", map[string]interface{}{
		"form": map[string]interface{}{
			"businessName": "Tricycle Ops",
			"activities": []interface{}{
				map[string]interface{}{
					"lineOfBusiness":     "Tricycle Operation",
					"tricycleUnits":      "3",
					"noOfUnits":          "99",
					"capitalization":     "1,000,000",
					"grossSalesReceipts": float64(250000),
				},
				map[string]interface{}{
					"lineOfBusiness": "Retail",
					"capitalization": "500000",
				},
			},
		},
	})

	data := BuildTemplateData(record, nil)

	rows, ok := data["activities"].([]ActivityRow)
	require.True(t, ok)
	require.Len(t, rows, 2)
	assert.Equal(t, "3", rows[0].NoOfUnits)
	assert.Equal(t, "1,000,000", rows[0].Capitalization)
	assert.Equal(t, "", rows[1].NoOfUnits)

	assert.Equal(t, "1,500,000", data["capitalInvestment"])
	assert.Equal(t, "One Million Five Hundred Thousand", data["capitalInvestmentWords"])
	assert.Equal(t, "250,000", data["grossSalesReceipts"])
}

func TestBuildTemplateDataAddressNormalization(t *testing.T) {
	record := app_services.NormalizeApplication("app-3", map[string]interface{}{
		"form": map[string]interface{}{
			"businessName":    "Addr Co",
			"businessAddress": "123 Rizal St/Brgy. Poblacion/Some City",
		},
	})

	data := BuildTemplateData(record, nil)
	assert.Equal(t, "123 Rizal St, Brgy. Poblacion, Some City", data["businessAddress"])
}
