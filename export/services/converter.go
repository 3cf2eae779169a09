package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"business-permits-backend/config"

	"go.uber.org/zap"
)

const (
	converterPath = "/convert/docx-to-pdf"

	// A backend that fails this many times in a row is skipped for the
	// cooldown window before being retried.
	breakerThreshold = 3
	breakerCooldown  = 30 * time.Second
)

type converterBackend struct {
	url string

	mu       sync.Mutex
	failures int
	openTil  time.Time
}

func (b *converterBackend) available(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return now.After(b.openTil)
}

func (b *converterBackend) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.openTil = time.Time{}
}

func (b *converterBackend) recordFailure(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	if b.failures >= breakerThreshold {
		b.openTil = now.Add(breakerCooldown)
		b.failures = 0
	}
}

// ConverterClient talks to the external DOCX-to-PDF converter service. It
// tries backends in priority order and returns the first successful
// conversion; backends that keep failing are skipped for a cooldown window.
type ConverterClient struct {
	backends []*converterBackend
	http     *http.Client
}

// NewConverterClient builds the backend list from CONVERTER_SERVICE_URL plus
// any comma-separated CONVERTER_FALLBACK_URLS, with a localhost converter as
// the final fallback.
func NewConverterClient() *ConverterClient {
	urls := []string{}
	if primary := config.GetEnv("CONVERTER_SERVICE_URL"); primary != "" {
		urls = append(urls, primary)
	}
	for _, fallback := range strings.Split(config.GetEnv("CONVERTER_FALLBACK_URLS"), ",") {
		if fallback = strings.TrimSpace(fallback); fallback != "" {
			urls = append(urls, fallback)
		}
	}
	urls = append(urls, "http://localhost:3000")

	backends := make([]*converterBackend, 0, len(urls))
	seen := map[string]bool{}
	for _, url := range urls {
		url = strings.TrimSuffix(url, "/")
		if seen[url] {
			continue
		}
		seen[url] = true
		backends = append(backends, &converterBackend{url: url})
	}

	return &ConverterClient{
		backends: backends,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

// ConvertDocxToPdf uploads the rendered DOCX and returns the converted PDF
// bytes. When every backend fails the error aggregates each backend's
// failure so the caller can see the whole chain.
func (c *ConverterClient) ConvertDocxToPdf(ctx context.Context, filename string, docx []byte) ([]byte, error) {
	failures := []string{}
	now := time.Now()

	for _, backend := range c.backends {
		if !backend.available(now) {
			failures = append(failures, fmt.Sprintf("%s: circuit open", backend.url))
			continue
		}

		pdf, err := c.convertVia(ctx, backend.url, filename, docx)
		if err == nil {
			backend.recordSuccess()
			return pdf, nil
		}

		backend.recordFailure(time.Now())
		config.Logger.Warn("Converter backend failed",
			zap.String("backend", backend.url),
			zap.String("filename", filename),
			zap.Error(err),
		)
		failures = append(failures, fmt.Sprintf("%s: %v", backend.url, err))

		if ctx.Err() != nil {
			break
		}
	}

	return nil, fmt.Errorf("all converter backends failed: %s", strings.Join(failures, "; "))
}

func (c *ConverterClient) convertVia(ctx context.Context, baseURL, filename string, docx []byte) ([]byte, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(docx); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+converterPath, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("converter returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("converter returned an empty document")
	}
	return pdf, nil
}
