package docqa

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"

	apperrors "github.com/aihub/docqa-go/internal/errors"
)

// FileParser 文件解析器接口，返回按阅读顺序排列的页级文本
type FileParser interface {
	Parse(reader io.Reader, filename string) ([]string, error)
	Supports(filename string) bool
}

// TextParser 文本文件解析器
type TextParser struct{}

func (p *TextParser) Supports(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".txt" || ext == ".md" || ext == ".markdown"
}

func (p *TextParser) Parse(reader io.Reader, filename string) ([]string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.NewBusinessError(apperrors.ErrCodeExtractionFailed, "读取文件失败").WithCause(err)
	}
	return []string{string(content)}, nil
}

// PDFParser PDF文件解析器
type PDFParser struct{}

func (p *PDFParser) Supports(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".pdf"
}

func (p *PDFParser) Parse(reader io.Reader, filename string) ([]string, error) {
	pdfBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.NewBusinessError(apperrors.ErrCodeExtractionFailed, "读取PDF文件失败").WithCause(err)
	}

	pdfReader, err := model.NewPdfReader(bytes.NewReader(pdfBytes))
	if err != nil {
		return nil, apperrors.NewBusinessError(apperrors.ErrCodeExtractionFailed, "解析PDF失败").WithCause(err)
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return nil, apperrors.NewBusinessError(apperrors.ErrCodeExtractionFailed, "获取PDF页数失败").WithCause(err)
	}

	// 单页提取失败不中断整体解析
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			continue
		}

		ex, err := extractor.New(page)
		if err != nil {
			continue
		}

		text, err := ex.ExtractText()
		if err != nil {
			continue
		}

		pages = append(pages, text)
	}

	return pages, nil
}

// WordParser Word文档解析器
type WordParser struct{}

func (p *WordParser) Supports(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".docx" || ext == ".doc"
}

func (p *WordParser) Parse(reader io.Reader, filename string) ([]string, error) {
	docBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.NewBusinessError(apperrors.ErrCodeExtractionFailed, "读取Word文件失败").WithCause(err)
	}

	// 仅支持.docx格式
	if strings.ToLower(filepath.Ext(filename)) == ".doc" {
		return nil, apperrors.NewBusinessError(apperrors.ErrCodeInvalidFileFormat, "暂不支持.doc格式，请使用.docx格式")
	}

	readerAt := bytes.NewReader(docBytes)
	doc, err := document.Read(readerAt, int64(len(docBytes)))
	if err != nil {
		return nil, apperrors.NewBusinessError(apperrors.ErrCodeExtractionFailed, "解析Word文档失败").WithCause(err)
	}
	defer doc.Close()

	var textBuilder strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			textBuilder.WriteString(run.Text())
		}
		textBuilder.WriteString("\n")
	}

	return []string{textBuilder.String()}, nil
}

// ParserManager 文件解析器管理器
type ParserManager struct {
	parsers []FileParser
}

// NewParserManager 创建文件解析器管理器
func NewParserManager() *ParserManager {
	return &ParserManager{
		parsers: []FileParser{
			&PDFParser{},
			&WordParser{},
			&TextParser{},
		},
	}
}

// Parse 解析文件为页级文本序列
func (m *ParserManager) Parse(reader io.Reader, filename string) ([]string, error) {
	for _, parser := range m.parsers {
		if parser.Supports(filename) {
			return parser.Parse(reader, filename)
		}
	}
	return nil, apperrors.NewBusinessError(apperrors.ErrCodeInvalidFileFormat,
		fmt.Sprintf("不支持的文件格式: %s", filename))
}

// SupportedFormats 获取支持的文件格式
func (m *ParserManager) SupportedFormats() []string {
	return []string{".pdf", ".docx", ".txt", ".md", ".markdown"}
}
