package services

import (
	"strings"
	"time"

	app_services "business-permits-backend/applications/services"
	treasury_services "business-permits-backend/treasury/services"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Checkbox glyphs substituted into document templates.
const (
	Checked   = "☑"
	Unchecked = "☐"
)

// TemplateData is the flat placeholder-name to value mapping consumed by the
// document renderer. Derived per render, never persisted.
type TemplateData map[string]interface{}

// ActivityRow is one line-of-business row on the application form.
type ActivityRow struct {
	LineOfBusiness     string `json:"lineOfBusiness"`
	NoOfUnits          string `json:"noOfUnits"`
	Capitalization     string `json:"capitalization"`
	GrossSalesReceipts string `json:"grossSalesReceipts"`
}

// checkbox renders a checked glyph when the raw value matches the expected
// vocabulary entry, comparing case-insensitively. Groups are driven by
// independent comparisons; malformed source data can check more than one box
// in a group.
func checkbox(value, expected string) string {
	if strings.EqualFold(strings.TrimSpace(value), expected) {
		return Checked
	}
	return Unchecked
}

// BuildTemplateData flattens a normalized application (and optionally its
// treasury assessment) into the placeholder map for document rendering.
// It never fails; absent or malformed inputs degrade to empty strings.
func BuildTemplateData(record app_services.BusinessApplicationRecord, assessment *treasury_services.TreasuryAssessmentRecord) TemplateData {
	form := record.Form
	str := func(key string) string { return strings.TrimSpace(app_services.AsString(form[key])) }

	data := TemplateData{
		"applicationId": record.ID,
		"applicantName": record.ApplicantName,
		"businessName":  record.BusinessName,
		"tradeName":     str("tradeName"),
		"tinNo":         str("tin"),
		"dtiSecRegNo":   str("dtiSecRegNo"),
		"telephoneNo":   str("telephoneNo"),
		"mobileNo":      str("mobileNo"),
		"emailAddress":  str("email"),

		"businessAddress": NormalizeAddress(str("businessAddress")),
		"ownerAddress":    NormalizeAddress(str("ownerAddress")),

		"applicationDate": millisToDate(record.SubmittedAt),
		"approvalDate":    millisToDate(record.ApprovedAt),
		"overallStatus":   record.OverallStatus,
	}

	data["appNewBox"] = checkbox(record.ApplicationType, "new")
	data["appRenewalBox"] = checkbox(record.ApplicationType, "renewal")

	ownership := str("ownershipType")
	data["ownSoleBox"] = checkbox(ownership, "sole proprietorship")
	data["ownPartnershipBox"] = checkbox(ownership, "partnership")
	data["ownCorpBox"] = checkbox(ownership, "corporation")
	data["ownCoopBox"] = checkbox(ownership, "cooperative")

	gender := str("gender")
	data["genderMaleBox"] = checkbox(gender, "male")
	data["genderFemaleBox"] = checkbox(gender, "female")

	payment := str("paymentMode")
	data["payAnnuallyBox"] = checkbox(payment, "annually")
	data["paySemiAnnuallyBox"] = checkbox(payment, "semi-annually")
	data["payQuarterlyBox"] = checkbox(payment, "quarterly")

	activities, capitalTotal, grossTotal := mapActivities(form["activities"])
	data["activities"] = activities
	data["capitalInvestment"] = FormatInteger(capitalTotal)
	data["capitalInvestmentWords"] = ConvertAmountToWords(capitalTotal.InexactFloat64())
	data["grossSalesReceipts"] = FormatInteger(grossTotal)
	data["grossSalesReceiptsWords"] = ConvertAmountToWords(grossTotal.InexactFloat64())

	for key, value := range BuildTemplateTreasuryFields(assessment) {
		data[key] = value
	}

	return data
}

// mapActivities converts the raw activities array 1:1 into template rows and
// sums capitalization and gross sales across all rows (commas stripped,
// unparseable cells counted as zero).
func mapActivities(raw interface{}) ([]ActivityRow, decimal.Decimal, decimal.Decimal) {
	entries := app_services.AsSlice(raw)
	rows := make([]ActivityRow, 0, len(entries))
	capitalTotal := decimal.Zero
	grossTotal := decimal.Zero

	for _, entry := range entries {
		activity := app_services.AsMap(entry)
		if activity == nil {
			continue
		}

		units := app_services.AsString(activity["tricycleUnits"])
		if units == "" {
			units = app_services.AsString(activity["noOfUnits"])
		}

		capital := treasury_services.ParseAmount(activity["capitalization"])
		gross := treasury_services.ParseAmount(activity["grossSalesReceipts"])
		capitalTotal = capitalTotal.Add(capital)
		grossTotal = grossTotal.Add(gross)

		rows = append(rows, ActivityRow{
			LineOfBusiness:     app_services.AsString(activity["lineOfBusiness"]),
			NoOfUnits:          units,
			Capitalization:     FormatInteger(capital),
			GrossSalesReceipts: FormatInteger(gross),
		})
	}

	return rows, capitalTotal, grossTotal
}

// moneyOrEmpty formats a fee figure for document display. Zero means "no
// value" on the printed assessment, not a literal zero.
func moneyOrEmpty(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return FormatMoney(d)
}

// BuildTemplateTreasuryFields flattens the assessment's fee lines into the
// aliased placeholder keys the assessment form uses. Every known key is
// always present: a nil assessment yields empty strings, never missing
// placeholders. The grand total is always recomputed from the line totals so
// the rendered document cannot drift from its own line items.
func BuildTemplateTreasuryFields(assessment *treasury_services.TreasuryAssessmentRecord) TemplateData {
	data := TemplateData{}

	grandTotal := decimal.Zero
	for _, key := range treasury_services.FeeKeys {
		var line treasury_services.FeeLine
		if assessment != nil {
			line = assessment.Fees[key]
		}
		grandTotal = grandTotal.Add(line.Total)

		data[key] = moneyOrEmpty(line.Total)
		data[key+"_amount"] = moneyOrEmpty(line.Amount)
		data[key+"_penalty"] = moneyOrEmpty(line.Penalty)
		data[key+"_total"] = moneyOrEmpty(line.Total)
		data["treasury_"+key+"_amount"] = moneyOrEmpty(line.Amount)
		data["treasury_"+key+"_penalty"] = moneyOrEmpty(line.Penalty)
		data["treasury_"+key+"_total"] = moneyOrEmpty(line.Total)
	}

	othersTotal := decimal.Zero
	othersNames := []string{}
	if assessment != nil {
		seen := map[string]bool{}
		titleCaser := cases.Title(language.English)
		for _, fee := range assessment.AdditionalFees {
			othersTotal = othersTotal.Add(fee.Total)
			name := titleCaser.String(strings.ToLower(fee.Name))
			if name != "" && !seen[name] {
				seen[name] = true
				othersNames = append(othersNames, name)
			}
		}
	}
	grandTotal = grandTotal.Add(othersTotal)

	data["others_label"] = strings.Join(othersNames, ", ")
	data["others_total"] = moneyOrEmpty(othersTotal)
	data["grand_total"] = moneyOrEmpty(grandTotal)

	if assessment != nil {
		data["lgu_total"] = moneyOrEmpty(assessment.LGUTotal)
		data["cedula_no"] = assessment.CedulaNo
		data["cedula_issued_at"] = millisToDate(assessment.CedulaIssuedAt)
		data["or_no"] = assessment.ORNo
		data["or_issued_at"] = millisToDate(assessment.ORIssuedAt)
	} else {
		data["lgu_total"] = ""
		data["cedula_no"] = ""
		data["cedula_issued_at"] = ""
		data["or_no"] = ""
		data["or_issued_at"] = ""
	}

	return data
}

func millisToDate(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).Format("January 2, 2006")
}
