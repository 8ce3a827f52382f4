// Package export 提供文档导出能力
// 导出是纯格式化：给定文档与其有序章节，产出字节流，不触碰任何状态
package export

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"docforge-ai-api/internal/domain/entity"
	apperrors "docforge-ai-api/pkg/errors"
	"docforge-ai-api/pkg/metrics"
)

var tracer = otel.Tracer("export")

// Format 导出格式
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// ParseFormat 解析导出格式
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOCX:
		return FormatDOCX, nil
	}
	return "", apperrors.New(apperrors.CodeInvalidParam, fmt.Sprintf("unsupported export format: %s", s))
}

// ContentType 返回格式对应的 MIME 类型
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "application/octet-stream"
}

// Exporter 文档导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export 将文档及其有序章节渲染为指定格式的字节流
func (e *Exporter) Export(ctx context.Context, format Format, doc *entity.Document, sections []*entity.Section) ([]byte, error) {
	_, span := tracer.Start(ctx, "export.Exporter.Export",
		trace.WithAttributes(
			attribute.String("export.format", string(format)),
			attribute.Int("export.section_count", len(sections)),
		))
	defer span.End()

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatPDF:
		data, err = renderPDF(doc, sections)
	case FormatDOCX:
		data, err = renderDOCX(doc, sections)
	default:
		err = apperrors.New(apperrors.CodeInvalidParam, fmt.Sprintf("unsupported export format: %s", format))
	}

	if err != nil {
		span.RecordError(err)
		metrics.DocumentExportTotal.WithLabelValues(string(format), "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeExportFailed, "document export failed")
	}

	metrics.DocumentExportTotal.WithLabelValues(string(format), "success").Inc()
	return data, nil
}
