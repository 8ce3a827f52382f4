package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"

	"docforge-ai-api/internal/domain/entity"
)

// renderPDF 将文档渲染为 PDF 字节流
// 章节按传入顺序渲染，调用方负责保证 order_index 升序
func renderPDF(doc *entity.Document, sections []*entity.Section) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// 标题
	pdf.SetFont("Helvetica", "B", 20)
	pdf.MultiCell(0, 10, doc.Title, "", "C", false)
	pdf.Ln(8)

	for _, section := range sections {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 8, section.Name, "", "L", false)
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "", 11)
		content := section.Content
		if content == "" {
			content = " "
		}
		pdf.MultiCell(0, 6, content, "", "L", false)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
