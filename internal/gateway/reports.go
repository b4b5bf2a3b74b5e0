package gateway

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
)

// SourceBackend marks documents produced by the backend exporter.
const SourceBackend = "backend"

func (c *Client) GetReport(ctx context.Context, from, to string) (*ReportData, error) {
	query := url.Values{}
	if from != "" {
		query.Set("from", from)
	}
	if to != "" {
		query.Set("to", to)
	}

	var out ReportData
	if err := c.do(ctx, "get_report", http.MethodGet, "/reports", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportReport downloads a rendered report. A JSON body on a 2xx response is
// treated as an error envelope, since the exporter only returns files.
func (c *Client) ExportReport(ctx context.Context, req domain.ExportRequest) (*domain.ExportDocument, error) {
	const op = "export_report"

	query := url.Values{}
	query.Set("type", req.Type)
	query.Set("format", req.Format)
	if req.From != "" {
		query.Set("from", req.From)
	}
	if req.To != "" {
		query.Set("to", req.To)
	}

	status, header, raw, err := c.send(ctx, op, http.MethodGet, "/reports/export", query, nil)
	if err != nil {
		return nil, err
	}

	contentType := header.Get("Content-Type")
	if status < http.StatusOK || status >= http.StatusMultipleChoices || strings.HasPrefix(contentType, "application/json") {
		if err := decodeEnvelope(op, status, raw, nil); err != nil {
			return nil, err
		}
		return nil, newError(KindShape, op, status, "export returned JSON instead of a file", nil)
	}
	if len(raw) == 0 {
		return nil, newError(KindShape, op, status, "export returned an empty file", nil)
	}

	filename := domain.ExportFilename(req.Type, req.Format)
	if _, params, err := mime.ParseMediaType(header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		filename = params["filename"]
	}

	return &domain.ExportDocument{
		Filename:    filename,
		ContentType: contentType,
		Body:        raw,
		Source:      SourceBackend,
	}, nil
}
