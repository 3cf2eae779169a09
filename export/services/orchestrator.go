package services

import (
	"context"
	"fmt"

	app_services "business-permits-backend/applications/services"
	"business-permits-backend/config"
	treasury_services "business-permits-backend/treasury/services"

	"go.uber.org/zap"
)

// ApplicationSource loads normalized applications for export.
type ApplicationSource interface {
	GetApplication(ctx context.Context, id string) (app_services.BusinessApplicationRecord, error)
}

// AssessmentSource loads the current treasury assessment for an application.
// A missing assessment returns (nil, nil): documents render with empty
// treasury placeholders.
type AssessmentSource interface {
	GetLatestAssessment(ctx context.Context, applicationUID string) (*treasury_services.TreasuryAssessmentRecord, error)
}

// ExportService orchestrates the document pipeline: load the application and
// assessment, flatten them to template data, render DOCX, convert to PDF,
// merge with the sworn declaration and cache the preview.
type ExportService struct {
	apps        ApplicationSource
	assessments AssessmentSource
	renderer    *DocxRenderer
	converter   *ConverterClient
	cache       *PreviewCache
}

func NewExportService(apps ApplicationSource, assessments AssessmentSource, renderer *DocxRenderer, converter *ConverterClient, cache *PreviewCache) *ExportService {
	return &ExportService{
		apps:        apps,
		assessments: assessments,
		renderer:    renderer,
		converter:   converter,
		cache:       cache,
	}
}

// GetApplication exposes the normalized application to callers that already
// hold the export service.
func (s *ExportService) GetApplication(ctx context.Context, id string) (app_services.BusinessApplicationRecord, error) {
	return s.apps.GetApplication(ctx, id)
}

func (s *ExportService) load(ctx context.Context, id string) (app_services.BusinessApplicationRecord, *treasury_services.TreasuryAssessmentRecord, error) {
	record, err := s.apps.GetApplication(ctx, id)
	if err != nil {
		return app_services.BusinessApplicationRecord{}, nil, err
	}

	assessment, err := s.assessments.GetLatestAssessment(ctx, id)
	if err != nil {
		// Treasury data is optional on the printed form; a lookup failure
		// must not block the export.
		config.Logger.Warn("Assessment lookup failed, rendering without treasury fields",
			zap.String("applicationId", id),
			zap.Error(err),
		)
		assessment = nil
	}

	return record, assessment, nil
}

// RenderApplicationDocx renders the filled application form, or the sworn
// declaration alone when swornOnly is set, and returns the download filename
// with the document bytes.
func (s *ExportService) RenderApplicationDocx(ctx context.Context, id string, swornOnly bool) (string, []byte, error) {
	record, assessment, err := s.load(ctx, id)
	if err != nil {
		return "", nil, err
	}

	template := TemplateApplicationForm
	if swornOnly {
		template = SwornTemplateFor(record.ApplicationType)
	}

	data := BuildTemplateData(record, assessment)
	docx, err := s.renderer.Render(template, data)
	if err != nil {
		return "", nil, err
	}

	return exportFilename(record, "docx"), docx, nil
}

// RenderPreviewPDF produces the PDF preview: the application form followed by
// the sworn declaration, or the declaration alone when swornOnly is set.
// It returns the cache status served in the X-Preview-Cache header. A sworn
// rendering failure degrades a full preview to the form alone; it fails a
// swornOnly request outright.
func (s *ExportService) RenderPreviewPDF(ctx context.Context, id string, swornOnly, bypassCache bool) (string, []byte, string, error) {
	record, assessment, err := s.load(ctx, id)
	if err != nil {
		return "", nil, "", err
	}

	data := BuildTemplateData(record, assessment)
	filename := exportFilename(record, "pdf")
	key := PreviewCacheKey(id, swornOnly, data)

	if bypassCache || !s.cache.Enabled() {
		pdf, err := s.renderPDF(ctx, record, data, swornOnly)
		if err != nil {
			return "", nil, "", err
		}
		s.cache.Set(ctx, key, pdf)
		return filename, pdf, CacheBypass, nil
	}

	if cached, found := s.cache.Get(ctx, key); found {
		return filename, cached, CacheHit, nil
	}

	pdf, err := s.renderPDF(ctx, record, data, swornOnly)
	if err != nil {
		return "", nil, "", err
	}
	s.cache.Set(ctx, key, pdf)
	return filename, pdf, CacheMiss, nil
}

func (s *ExportService) renderPDF(ctx context.Context, record app_services.BusinessApplicationRecord, data TemplateData, swornOnly bool) ([]byte, error) {
	swornTemplate := SwornTemplateFor(record.ApplicationType)

	if swornOnly {
		return s.renderTemplatePDF(ctx, record.ID, swornTemplate, data)
	}

	mainPDF, err := s.renderTemplatePDF(ctx, record.ID, TemplateApplicationForm, data)
	if err != nil {
		return nil, err
	}

	swornPDF, err := s.renderTemplatePDF(ctx, record.ID, swornTemplate, data)
	if err != nil {
		config.Logger.Warn("Sworn declaration failed, serving the application form alone",
			zap.String("applicationId", record.ID),
			zap.String("template", swornTemplate),
			zap.Error(err),
		)
		return mainPDF, nil
	}

	return MergePDFs(mainPDF, swornPDF)
}

func (s *ExportService) renderTemplatePDF(ctx context.Context, applicationID, templateName string, data TemplateData) ([]byte, error) {
	docx, err := s.renderer.Render(templateName, data)
	if err != nil {
		return nil, err
	}
	return s.converter.ConvertDocxToPdf(ctx, applicationID+"-"+templateName, docx)
}

// RenderAssessmentSheet exports the treasury assessment as an XLSX workbook.
func (s *ExportService) RenderAssessmentSheet(ctx context.Context, id string) (string, []byte, error) {
	record, assessment, err := s.load(ctx, id)
	if err != nil {
		return "", nil, err
	}

	workbook, err := BuildAssessmentWorkbook(id, assessment)
	if err != nil {
		return "", nil, err
	}
	return exportFilename(record, "xlsx"), workbook, nil
}

// RenderPermitCertificate generates the business-permit certificate for an
// approved application.
func (s *ExportService) RenderPermitCertificate(ctx context.Context, id string) (string, []byte, error) {
	record, assessment, err := s.load(ctx, id)
	if err != nil {
		return "", nil, err
	}
	if record.OverallStatus != app_services.StatusApproved {
		return "", nil, fmt.Errorf("application %s is not approved", id)
	}

	pdf, err := GeneratePermitCertificatePDF(ctx, BuildPermitCertificateData(record, assessment))
	if err != nil {
		return "", nil, err
	}
	return "permit-certificate-" + id + ".pdf", pdf, nil
}

// exportFilename derives the download filename from the business name slug.
func exportFilename(record app_services.BusinessApplicationRecord, extension string) string {
	base := app_services.Slug(record.BusinessName)
	if base == "requirement" {
		base = app_services.Slug(record.ID)
	}
	return "business-permit-" + base + "." + extension
}
