package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"

	"business-permits-backend/config"

	"go.uber.org/zap"
)

// RenderApplicationBundle packages every exportable document for an
// application into one zip: the filled DOCX form, the sworn declaration, the
// PDF preview and the assessment workbook. A document that fails to render
// is skipped with a warning rather than sinking the whole bundle; an empty
// bundle is an error.
func (s *ExportService) RenderApplicationBundle(ctx context.Context, id string) (string, []byte, error) {
	record, assessment, err := s.load(ctx, id)
	if err != nil {
		return "", nil, err
	}
	data := BuildTemplateData(record, assessment)

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	added := 0

	addEntry := func(name string, content []byte, renderErr error) {
		if renderErr != nil {
			config.Logger.Warn("Bundle entry skipped",
				zap.String("applicationId", id),
				zap.String("entry", name),
				zap.Error(renderErr),
			)
			return
		}
		entry, err := archive.Create(name)
		if err == nil {
			if _, err = entry.Write(content); err == nil {
				added++
				return
			}
		}
		config.Logger.Warn("Failed to write bundle entry",
			zap.String("entry", name), zap.Error(err))
	}

	docx, err := s.renderer.Render(TemplateApplicationForm, data)
	addEntry("application-form.docx", docx, err)

	swornTemplate := SwornTemplateFor(record.ApplicationType)
	sworn, err := s.renderer.Render(swornTemplate, data)
	addEntry(swornTemplate, sworn, err)

	pdf, err := s.renderPDF(ctx, record, data, false)
	addEntry("application-preview.pdf", pdf, err)

	workbook, err := BuildAssessmentWorkbook(id, assessment)
	addEntry("assessment.xlsx", workbook, err)

	if err := archive.Close(); err != nil {
		return "", nil, err
	}
	if added == 0 {
		return "", nil, fmt.Errorf("no documents could be generated for application %s", id)
	}

	return strings.TrimSuffix(exportFilename(record, "zip"), ".zip") + "-documents.zip", buf.Bytes(), nil
}
