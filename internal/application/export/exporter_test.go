package export

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docforge-ai-api/internal/domain/entity"
)

func exportFixture() (*entity.Document, []*entity.Section) {
	doc := &entity.Document{
		ID:       "d1",
		TenantID: "t1",
		Title:    "Acme 2026 Business Plan",
		Status:   entity.DocumentStatusDraft,
	}
	sections := []*entity.Section{
		{ID: "s0", DocumentID: "d1", Name: "Executive Summary", Content: "First paragraph.\nSecond paragraph.", OrderIndex: 0},
		{ID: "s1", DocumentID: "d1", Name: "Market & Strategy", Content: "Ampersand & <angle> test", OrderIndex: 1},
	}
	return doc, sections
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = ParseFormat("docx")
	require.NoError(t, err)
	assert.Equal(t, FormatDOCX, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestFormatContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		FormatDOCX.ContentType())
}

func TestExportPDF(t *testing.T) {
	doc, sections := exportFixture()

	data, err := NewExporter().Export(context.Background(), FormatPDF, doc, sections)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// PDF 魔数
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExportDOCX(t *testing.T) {
	doc, sections := exportFixture()

	data, err := NewExporter().Export(context.Background(), FormatDOCX, doc, sections)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var names []string
	var documentXML string
	for _, f := range zr.File {
		names = append(names, f.Name)
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			raw, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			documentXML = string(raw)
		}
	}

	assert.Contains(t, names, "[Content_Types].xml")
	assert.Contains(t, names, "_rels/.rels")
	require.Contains(t, names, "word/document.xml")

	assert.Contains(t, documentXML, "Acme 2026 Business Plan")
	assert.Contains(t, documentXML, "Executive Summary")
	assert.Contains(t, documentXML, "First paragraph.")
	// 特殊字符被转义
	assert.Contains(t, documentXML, "Ampersand &amp; &lt;angle&gt; test")
	assert.NotContains(t, documentXML, "<angle>")
}

func TestExportDOCXSectionOrderPreserved(t *testing.T) {
	doc, sections := exportFixture()

	data, err := NewExporter().Export(context.Background(), FormatDOCX, doc, sections)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		raw, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		xml := string(raw)
		first := strings.Index(xml, "Executive Summary")
		second := strings.Index(xml, "Market")
		require.Greater(t, first, 0)
		assert.Greater(t, second, first)
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	doc, sections := exportFixture()

	_, err := NewExporter().Export(context.Background(), Format("html"), doc, sections)
	assert.Error(t, err)
}
