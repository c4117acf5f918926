package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/PDFSummarizer/internal/adapter/utils"
	"github.com/akolanti/PDFSummarizer/internal/config"
	"github.com/akolanti/PDFSummarizer/internal/domain/commonModels"
	"github.com/akolanti/PDFSummarizer/pkg/logger_i"
)

var ErrUnsupportedType = errors.New("unsupported document type")
var ErrNoText = errors.New("document contains no extractable text")

// Loader turns a document on disk into ordered chunks.
type Loader interface {
	Load(ctx context.Context, path string, name string) (commonModels.Document, error)
}

type rawPage struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

type FileLoader struct {
	chunkSize   int
	overlap     int
	pageTimeout time.Duration
	logger      *logger_i.Logger
}

func NewFileLoader(chunkSize int, overlap int) *FileLoader {
	return &FileLoader{
		chunkSize:   chunkSize,
		overlap:     overlap,
		pageTimeout: config.PageExtractTimeout,
		logger:      logger_i.NewLogger("Document Loader"),
	}
}

func (l *FileLoader) Load(ctx context.Context, path string, name string) (commonModels.Document, error) {
	log := l.logger.With("traceId", utils.TraceID(ctx), "filename", name)

	if name == "" {
		name = filepath.Base(path)
	}
	docType := getDocType(name)
	if docType == commonModels.ERR {
		docType = getDocType(path)
	}
	log.Debug("Loading document", "type", docType, "path", path)
	if docType == commonModels.ERR {
		return commonModels.Document{}, fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(name))
	}

	pages, err := l.extractText(ctx, path, docType)
	if err != nil {
		return commonModels.Document{}, err
	}
	log.Debug("Extracted pages", "count", len(pages))

	doc := commonModels.Document{
		Id:          utils.GetNewUUID(),
		Name:        name,
		ContentType: docType,
		PageCount:   len(pages),
	}
	doc.Chunks = prepareChunks(pages, l.chunkSize, l.overlap)
	if len(doc.Chunks) == 0 {
		return commonModels.Document{}, ErrNoText
	}

	log.Debug("Split document", "chunks", len(doc.Chunks))
	return doc, nil
}

func getDocType(docPath string) commonModels.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".odt", ".rtf":
		return commonModels.DOCX
	case ".txt":
		return commonModels.TXT
	default:
		return commonModels.ERR
	}
}

func (l *FileLoader) extractText(ctx context.Context, path string, contentType commonModels.DocType) ([]rawPage, error) {
	switch contentType {
	case commonModels.PDF:
		return l.extractPDF(ctx, path)
	case commonModels.DOCX, commonModels.TXT:
		return l.extractDocxTxtRtf(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
}

func prepareChunks(pages []rawPage, chunkSize int, overlap int) []commonModels.DocChunk {
	var allChunks []commonModels.DocChunk

	for _, page := range pages {
		if strings.TrimSpace(page.Content) == "" {
			continue
		}
		order := 0
		for _, text := range splitTextIntoChunks(page.Content, chunkSize, overlap) {
			if strings.TrimSpace(text) == "" {
				continue
			}
			allChunks = append(allChunks, commonModels.DocChunk{
				Index:          len(allChunks),
				Chunk:          text,
				PageNum:        page.Number,
				ChunkPageOrder: order,
			})
			order++
		}
	}
	return allChunks
}
