package services

import (
	"bytes"
	"fmt"
	"strings"

	treasury_services "business-permits-backend/treasury/services"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BuildAssessmentWorkbook writes a treasury assessment into an XLSX workbook:
// one row per named fee, the additional fees, then the recomputed grand
// total. Returns the serialized workbook bytes.
func BuildAssessmentWorkbook(applicationID string, assessment *treasury_services.TreasuryAssessmentRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Assessment"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Fee", "Amount", "Penalty", "Total"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("error setting header %s: %v", header, err)
		}
	}

	titleCaser := cases.Title(language.English)
	row := 2
	writeRow := func(name string, amount, penalty, total string) error {
		values := []interface{}{name, amount, penalty, total}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("error writing row %d: %v", row, err)
			}
		}
		row++
		return nil
	}

	fields := BuildTemplateTreasuryFields(assessment)
	for _, key := range treasury_services.FeeKeys {
		label := titleCaser.String(strings.ReplaceAll(key, "_", " "))
		err := writeRow(label,
			stringField(fields, key+"_amount"),
			stringField(fields, key+"_penalty"),
			stringField(fields, key+"_total"),
		)
		if err != nil {
			return nil, err
		}
	}

	if assessment != nil {
		for _, fee := range assessment.AdditionalFees {
			name := fee.Name
			if name == "" {
				name = "Others"
			}
			err := writeRow(titleCaser.String(strings.ToLower(name)),
				moneyOrEmpty(fee.Amount),
				moneyOrEmpty(fee.Penalty),
				moneyOrEmpty(fee.Total),
			)
			if err != nil {
				return nil, err
			}
		}
	}

	if err := writeRow("Grand Total", "", "", stringField(fields, "grand_total")); err != nil {
		return nil, err
	}

	footer := []struct{ label, value string }{
		{"Application", applicationID},
		{"Cedula No.", stringField(fields, "cedula_no")},
		{"O.R. No.", stringField(fields, "or_no")},
	}
	row++ // blank spacer row
	for _, item := range footer {
		if err := writeRow(item.label, "", "", item.value); err != nil {
			return nil, err
		}
	}

	var out bytes.Buffer
	if err := f.Write(&out); err != nil {
		return nil, fmt.Errorf("error serializing workbook: %v", err)
	}
	return out.Bytes(), nil
}

func stringField(fields TemplateData, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return ""
}
