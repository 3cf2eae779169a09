package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"business-permits-backend/config"
)

// Document template filenames. The sworn declaration differs by application
// type: new businesses swear to their capital, renewals to gross receipts.
const (
	TemplateApplicationForm  = "application-form.docx"
	TemplateStatementCapital = "statement-of-capital.docx"
	TemplateDeclarationGross = "declaration-of-gross-receipts.docx"
	TemplateAssessmentForm   = "assessment-form.docx"
)

// maxActivityRows is the number of line-of-business rows the printed form has
// space for. Extra activities still count toward the totals.
const maxActivityRows = 5

var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// SwornTemplateFor picks the sworn-declaration template for an application
// type.
func SwornTemplateFor(applicationType string) string {
	if strings.EqualFold(applicationType, "Renewal") {
		return TemplateDeclarationGross
	}
	return TemplateStatementCapital
}

// DocxRenderer substitutes ${placeholder} tokens inside DOCX templates.
// Templates must keep each token in a single XML run; re-saving a template
// from a word processor that splits tokens breaks substitution.
type DocxRenderer struct {
	templatesDir string
}

func NewDocxRenderer() *DocxRenderer {
	return &DocxRenderer{
		templatesDir: config.GetEnvOr("TEMPLATES_DIR", "./templates"),
	}
}

// Render loads the named template and substitutes every placeholder with its
// value from data. Placeholders with no value render as empty strings, never
// as the raw token.
func (r *DocxRenderer) Render(templateName string, data TemplateData) ([]byte, error) {
	templateBytes, err := os.ReadFile(filepath.Join(r.templatesDir, templateName))
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", templateName, err)
	}
	return substitutePlaceholders(templateBytes, flattenTemplateData(data))
}

// flattenTemplateData converts the template data to the string-only map the
// substitution pass works with, expanding the activities array into the
// fixed-row placeholders of the printed form.
func flattenTemplateData(data TemplateData) map[string]string {
	flat := make(map[string]string, len(data)+maxActivityRows*4)
	for key, value := range data {
		switch v := value.(type) {
		case string:
			flat[key] = v
		case []ActivityRow:
			for i := 0; i < maxActivityRows; i++ {
				var row ActivityRow
				if i < len(v) {
					row = v[i]
				}
				n := strconv.Itoa(i + 1)
				flat["activity_"+n+"_line_of_business"] = row.LineOfBusiness
				flat["activity_"+n+"_units"] = row.NoOfUnits
				flat["activity_"+n+"_capitalization"] = row.Capitalization
				flat["activity_"+n+"_gross_sales"] = row.GrossSalesReceipts
			}
		default:
			flat[key] = fmt.Sprintf("%v", v)
		}
	}
	return flat
}

// substitutePlaceholders rewrites the docx zip, replacing tokens in the
// document body, headers and footers. All other archive entries are copied
// byte for byte.
func substitutePlaceholders(templateBytes []byte, values map[string]string) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(templateBytes), int64(len(templateBytes)))
	if err != nil {
		return nil, fmt.Errorf("template is not a valid docx archive: %w", err)
	}

	var out bytes.Buffer
	writer := zip.NewWriter(&out)

	for _, entry := range reader.File {
		source, err := entry.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(source)
		source.Close()
		if err != nil {
			return nil, err
		}

		if isSubstitutable(entry.Name) {
			content = placeholderPattern.ReplaceAllFunc(content, func(match []byte) []byte {
				key := placeholderPattern.FindSubmatch(match)[1]
				return []byte(xmlEscaper.Replace(values[string(key)]))
			})
		}

		target, err := writer.CreateHeader(&zip.FileHeader{
			Name:   entry.Name,
			Method: entry.Method,
		})
		if err != nil {
			return nil, err
		}
		if _, err := target.Write(content); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func isSubstitutable(name string) bool {
	if name == "word/document.xml" {
		return true
	}
	base := filepath.Base(name)
	return strings.HasPrefix(name, "word/") &&
		(strings.HasPrefix(base, "header") || strings.HasPrefix(base, "footer")) &&
		strings.HasSuffix(base, ".xml")
}
