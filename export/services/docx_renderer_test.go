package services

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	entries := map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   documentXML,
		"word/header1.xml":    `<hdr>${businessName}</hdr>`,
		"word/styles.xml":     `<styles>${businessName}</styles>`,
	}
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func readDocxEntry(t *testing.T, docx []byte, name string) string {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	require.NoError(t, err)
	for _, entry := range reader.File {
		if entry.Name != name {
			continue
		}
		f, err := entry.Open()
		require.NoError(t, err)
		defer f.Close()
		content, err := io.ReadAll(f)
		require.NoError(t, err)
		return string(content)
	}
	t.Fatalf("entry %s not found", name)
	return ""
}

func TestSubstitutePlaceholders(t *testing.T) {
	template := buildTestDocx(t, `<doc>${businessName} owes ${grand_total}; missing=${unknown}</doc>`)

	data := TemplateData{
		"businessName": "Tindahan & Co <Store>",
		"grand_total":  "1,500.50",
	}
	rendered, err := substitutePlaceholders(template, flattenTemplateData(data))
	require.NoError(t, err)

	body := readDocxEntry(t, rendered, "word/document.xml")
	assert.Equal(t, `<doc>Tindahan &amp; Co &lt;Store&gt; owes 1,500.50; missing=</doc>`, body)

	// Headers are substituted, other parts are untouched.
	assert.Equal(t, `<hdr>Tindahan &amp; Co &lt;Store&gt;</hdr>`, readDocxEntry(t, rendered, "word/header1.xml"))
	assert.Equal(t, `<styles>${businessName}</styles>`, readDocxEntry(t, rendered, "word/styles.xml"))
}

func TestFlattenTemplateDataActivityRows(t *testing.T) {
	data := TemplateData{
		"activities": []ActivityRow{
			{LineOfBusiness: "Retail", NoOfUnits: "2", Capitalization: "10,000", GrossSalesReceipts: "5,000"},
		},
	}
	flat := flattenTemplateData(data)

	assert.Equal(t, "Retail", flat["activity_1_line_of_business"])
	assert.Equal(t, "2", flat["activity_1_units"])
	assert.Equal(t, "10,000", flat["activity_1_capitalization"])
	// Rows beyond the data render empty, not missing.
	assert.Equal(t, "", flat["activity_5_line_of_business"])
}

func TestSwornTemplateFor(t *testing.T) {
	assert.Equal(t, TemplateDeclarationGross, SwornTemplateFor("Renewal"))
	assert.Equal(t, TemplateStatementCapital, SwornTemplateFor("New"))
	assert.Equal(t, TemplateStatementCapital, SwornTemplateFor(""))
}
