package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

var errPageTimeout = errors.New("page extraction timed out")

func (l *FileLoader) extractPDF(ctx context.Context, path string) ([]rawPage, error) {
	f, err := pdf.Open(path)
	if err != nil {
		l.logger.Error("failed opening of pdf file", "path", path, "error", err)
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []rawPage
	numPages := f.NumPage()
	l.logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := f.Page(i)
		if page.V.IsNull() {
			l.logger.Debug("extractPDF", "null page", i)
			continue
		}

		content, err := l.protectExtract(page)
		if err != nil {
			// a broken page should not lose the rest of the document
			l.logger.Warn("Error parsing page content", "page", i, "error", err)
			continue
		}

		pages = append(pages, rawPage{
			Number:  i,
			Content: content,
		})
	}
	return pages, nil
}

// extractDocxTxtRtf reads a .docx, .odt, .rtf or plaintext file as a single page.
func (l *FileLoader) extractDocxTxtRtf(path string) ([]rawPage, error) {
	text, err := cat.File(path)
	if err != nil {
		l.logger.Error("Error extracting content from doc", "path", path, "error", err)
		return nil, fmt.Errorf("failed to extract document text: %w", err)
	}

	return []rawPage{
		{
			Number:  1,
			Content: text,
		},
	}, nil
}

func (l *FileLoader) protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()

	timer := time.NewTimer(l.pageTimeout)
	defer timer.Stop()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-timer.C:
		return "", errPageTimeout
	}
}
