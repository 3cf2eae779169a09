package services

import (
	"strings"

	app_services "business-permits-backend/applications/services"

	"github.com/shopspring/decimal"
)

// FeeKeys is the closed set of named fee lines an assessment carries. Fee
// lines outside this set live in the additional-fees list.
var FeeKeys = []string{
	"mayors_permit",
	"business_tax",
	"garbage_fee",
	"sanitary_inspection",
	"health_certificate",
	"building_inspection",
	"electrical_inspection",
	"mechanical_inspection",
	"plumbing_inspection",
	"signage_fee",
	"zoning_clearance",
	"sticker_fee",
	"occupational_tax",
	"fire_safety_inspection",
	"cedula",
	"police_clearance",
}

// FeeLine is one normalized named fee: amount, penalty and total.
type FeeLine struct {
	Amount  decimal.Decimal `json:"amount"`
	Penalty decimal.Decimal `json:"penalty"`
	Total   decimal.Decimal `json:"total"`
}

// AdditionalFee is a free-form fee line outside the fixed vocabulary.
type AdditionalFee struct {
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	Penalty decimal.Decimal `json:"penalty"`
	Total   decimal.Decimal `json:"total"`
}

// TreasuryAssessmentRecord is the canonical shape of a treasury assessment.
// Like the application record it is a read-time projection, never stored.
type TreasuryAssessmentRecord struct {
	ApplicationUID string                 `json:"application_uid"`
	Fees           map[string]FeeLine     `json:"fees"`
	AdditionalFees []AdditionalFee        `json:"additional_fees"`
	LGUTotal       decimal.Decimal        `json:"lgu_total"`
	GrandTotal     decimal.Decimal        `json:"grand_total"`
	CedulaNo       string                 `json:"cedula_no"`
	CedulaIssuedAt int64                  `json:"cedula_issued_at"`
	ORNo           string                 `json:"or_no"`
	ORIssuedAt     int64                  `json:"or_issued_at"`
	CreatedAt      int64                  `json:"created_at"`
	UpdatedAt      int64                  `json:"updated_at"`
	Raw            map[string]interface{} `json:"-"`
}

// ParseAmount converts a loosely-typed value to a decimal, stripping comma
// separators from strings. Anything unparseable is zero.
func ParseAmount(v interface{}) decimal.Decimal {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t)
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if cleaned == "" {
			return decimal.Zero
		}
		if d, err := decimal.NewFromString(cleaned); err == nil {
			return d
		}
	}
	return decimal.Zero
}

// hasAmount reports whether the raw value holds an explicit numeric amount,
// as opposed to being absent or junk.
func hasAmount(v interface{}) bool {
	switch t := v.(type) {
	case float64:
		return true
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if cleaned == "" {
			return false
		}
		_, err := decimal.NewFromString(cleaned)
		return err == nil
	}
	return false
}

// firstOf returns the first present key's value from the raw record; old
// records use inconsistent field names so every read goes through an alias
// list.
func firstOf(raw map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// NormalizeFeeLine converts one raw fee entry. An explicit numeric total
// wins; otherwise total = amount + penalty with missing parts as zero.
func NormalizeFeeLine(raw map[string]interface{}) FeeLine {
	line := FeeLine{
		Amount:  ParseAmount(raw["amount"]),
		Penalty: ParseAmount(raw["penalty"]),
	}
	if hasAmount(raw["total"]) {
		line.Total = ParseAmount(raw["total"])
	} else {
		line.Total = line.Amount.Add(line.Penalty)
	}
	return line
}

// NormalizeAssessment converts a raw treasury record into the canonical
// shape. Returns nil when no application identifier can be resolved
// (application_uid, then the legacy client_uid). Never errors: numeric
// parses fail soft to zero.
func NormalizeAssessment(raw map[string]interface{}) *TreasuryAssessmentRecord {
	if raw == nil {
		return nil
	}
	appUID := app_services.AsString(firstOf(raw, "application_uid", "client_uid"))
	if appUID == "" {
		return nil
	}

	record := &TreasuryAssessmentRecord{
		ApplicationUID: appUID,
		Fees:           make(map[string]FeeLine, len(FeeKeys)),
		LGUTotal:       ParseAmount(firstOf(raw, "lgu_total", "lguTotal")),
		GrandTotal:     ParseAmount(firstOf(raw, "grand_total", "grandTotal")),
		CedulaNo:       app_services.AsString(firstOf(raw, "cedula_no", "cedula")),
		CedulaIssuedAt: app_services.AsMillis(firstOf(raw, "cedula_issued_at", "cedulaIssuedAt")),
		ORNo:           app_services.AsString(firstOf(raw, "or_no", "officialReceipt")),
		ORIssuedAt:     app_services.AsMillis(firstOf(raw, "or_issued_at", "orIssuedAt")),
		CreatedAt:      app_services.AsMillis(firstOf(raw, "created_at", "createdAt")),
		UpdatedAt:      app_services.AsMillis(firstOf(raw, "updated_at", "updatedAt")),
		Raw:            raw,
	}

	fees := app_services.AsMap(firstOf(raw, "fees"))
	for _, key := range FeeKeys {
		entry := app_services.AsMap(firstOf(fees, key, snakeToCamel(key)))
		if entry == nil {
			record.Fees[key] = FeeLine{}
			continue
		}
		record.Fees[key] = NormalizeFeeLine(entry)
	}

	record.AdditionalFees = normalizeAdditionalFees(firstOf(raw, "additional_fees", "additionalFees"))

	return record
}

func normalizeAdditionalFees(raw interface{}) []AdditionalFee {
	entries := app_services.EntriesInOrder(raw)
	fees := make([]AdditionalFee, 0, len(entries))
	for _, entry := range entries {
		feeMap := app_services.AsMap(entry)
		if feeMap == nil {
			continue
		}
		name := strings.TrimSpace(app_services.AsString(firstOf(feeMap, "name", "label")))
		// Drop fully empty rows: no name and no amounts.
		if name == "" && !hasAmount(feeMap["amount"]) && !hasAmount(feeMap["penalty"]) {
			continue
		}
		line := NormalizeFeeLine(feeMap)
		fees = append(fees, AdditionalFee{
			Name:    name,
			Amount:  line.Amount,
			Penalty: line.Penalty,
			Total:   line.Total,
		})
	}
	return fees
}

// PreserveIssuedAt applies the first-issued rule on re-save: when a document
// number is unchanged from the previous record the original issued-at stays;
// a changed (or newly set) number stamps now. Clearing the number clears the
// timestamp.
func PreserveIssuedAt(previousNo string, previousIssuedAt int64, newNo string, now int64) int64 {
	if newNo == "" {
		return 0
	}
	if newNo == previousNo && previousIssuedAt != 0 {
		return previousIssuedAt
	}
	return now
}

// MostRecent picks the winner among duplicate assessment records for the
// same application: highest UpdatedAt, falling back to CreatedAt. Duplicates
// are a data-repair concern, not designed multiplicity.
func MostRecent(records []*TreasuryAssessmentRecord) *TreasuryAssessmentRecord {
	var winner *TreasuryAssessmentRecord
	for _, record := range records {
		if record == nil {
			continue
		}
		if winner == nil || sortStamp(record) > sortStamp(winner) {
			winner = record
		}
	}
	return winner
}

func sortStamp(record *TreasuryAssessmentRecord) int64 {
	if record.UpdatedAt != 0 {
		return record.UpdatedAt
	}
	return record.CreatedAt
}

func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}
