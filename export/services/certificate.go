package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	app_services "business-permits-backend/applications/services"
	treasury_services "business-permits-backend/treasury/services"
	"business-permits-backend/config"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PermitCertificateData holds everything the certificate template renders.
type PermitCertificateData struct {
	PrintDate       string
	PermitNumber    string
	BusinessName    string
	ApplicantName   string
	BusinessAddress string
	ApplicationType string
	ApprovalDate    string
	AmountPaid      string
	ORNumber        string
	MayorName       string
	Municipality    string
}

// BuildPermitCertificateData assembles certificate fields from an approved
// application and its assessment. The caller is responsible for checking the
// application is actually approved.
func BuildPermitCertificateData(record app_services.BusinessApplicationRecord, assessment *treasury_services.TreasuryAssessmentRecord) PermitCertificateData {
	data := PermitCertificateData{
		PrintDate:       time.Now().Format("January 2, 2006"),
		PermitNumber:    fmt.Sprintf("BP-%s-%s", time.Now().Format("2006"), record.ID),
		BusinessName:    record.BusinessName,
		ApplicantName:   record.ApplicantName,
		BusinessAddress: NormalizeAddress(app_services.AsString(record.Form["businessAddress"])),
		ApplicationType: record.ApplicationType,
		ApprovalDate:    millisToDate(record.ApprovedAt),
		MayorName:       config.GetEnvOr("MAYOR_NAME", ""),
		Municipality:    config.GetEnvOr("MUNICIPALITY_NAME", ""),
	}
	if assessment != nil {
		fields := BuildTemplateTreasuryFields(assessment)
		data.AmountPaid = app_services.AsString(fields["grand_total"])
		data.ORNumber = assessment.ORNo
	}
	return data
}

var permitCertificateTemplate = template.Must(template.New("permit-certificate").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
	body { font-family: 'Times New Roman', serif; margin: 48px; color: #1a1a1a; }
	.header { text-align: center; margin-bottom: 32px; }
	.header h1 { font-size: 22px; letter-spacing: 2px; margin: 4px 0; }
	.header p { margin: 2px 0; font-size: 13px; }
	.permit-no { text-align: right; font-size: 13px; margin-bottom: 24px; }
	.body-text { font-size: 14px; line-height: 1.8; text-align: justify; }
	.business-name { text-align: center; font-size: 20px; font-weight: bold; margin: 24px 0 8px; text-transform: uppercase; }
	.detail-table { width: 100%; margin: 24px 0; font-size: 13px; border-collapse: collapse; }
	.detail-table td { padding: 4px 8px; }
	.detail-table td:first-child { width: 35%; font-weight: bold; }
	.signature { margin-top: 64px; text-align: right; font-size: 14px; }
	.signature .name { font-weight: bold; text-decoration: underline; }
	.footnote { margin-top: 48px; font-size: 10px; color: #555; text-align: center; }
</style>
</head>
<body>
	<div class="header">
		<p>Republic of the Philippines</p>
		<p>{{.Municipality}}</p>
		<h1>BUSINESS PERMIT</h1>
	</div>
	<div class="permit-no">Permit No. {{.PermitNumber}}<br>Date Issued: {{.PrintDate}}</div>
	<div class="body-text">
		Pursuant to the provisions of the Local Government Code and applicable
		municipal ordinances, permission is hereby granted to operate the
		business described below, subject to existing laws, rules and
		regulations.
	</div>
	<div class="business-name">{{.BusinessName}}</div>
	<table class="detail-table">
		<tr><td>Owner / Operator</td><td>{{.ApplicantName}}</td></tr>
		<tr><td>Business Address</td><td>{{.BusinessAddress}}</td></tr>
		<tr><td>Application Type</td><td>{{.ApplicationType}}</td></tr>
		<tr><td>Date Approved</td><td>{{.ApprovalDate}}</td></tr>
		{{if .AmountPaid}}<tr><td>Amount Paid</td><td>{{.AmountPaid}}</td></tr>{{end}}
		{{if .ORNumber}}<tr><td>Official Receipt No.</td><td>{{.ORNumber}}</td></tr>{{end}}
	</table>
	<div class="signature">
		<div class="name">{{.MayorName}}</div>
		<div>Municipal Mayor</div>
	</div>
	<div class="footnote">
		This permit is non-transferable and must be displayed conspicuously at
		the place of business. It is revocable at any time for cause.
	</div>
</body>
</html>`))

// GeneratePermitCertificatePDF renders the certificate HTML through headless
// Chrome and writes A4 portrait PDF bytes.
func GeneratePermitCertificatePDF(ctx context.Context, data PermitCertificateData) ([]byte, error) {
	var html bytes.Buffer
	if err := permitCertificateTemplate.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render certificate template: %v", err)
	}

	chromeCtx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	chromeCtx, cancel = context.WithTimeout(chromeCtx, 30*time.Second)
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write(html.Bytes())
	})

	server := &http.Server{Handler: mux}
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return nil, err
	}
	defer listener.Close()

	go server.Serve(listener)
	defer server.Close()

	port := listener.Addr().(*net.TCPAddr).Port
	url := fmt.Sprintf("http://localhost:%d", port)

	var buf []byte
	err = chromedp.Run(chromeCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // A4 Portrait width
				WithPaperHeight(11.69). // A4 Portrait height
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				WithLandscape(false).
				WithPreferCSSPageSize(false).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return buf, nil
}
