// Package export serializes the final resume into downloadable PDF and
// DOCX documents with a shared canonical section ordering.
package export

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-finalizer/internal/types"
)

// MIME types of the generated documents.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// attribution is stamped on every generated page and footer.
const attribution = "Powered by Resume Finalizer"

// File is a generated document ready for download and persistence.
type File struct {
	Name string
	MIME string
	Data []byte
}

// Error represents a failure while generating a document.
type Error struct {
	Format  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s export failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s export failed: %s", e.Format, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Filename builds "Resume_<timestamp>.<ext>" with an ISO 8601 UTC
// timestamp at seconds precision, colons stripped for filesystem safety.
func Filename(ext string, t time.Time) string {
	return fmt.Sprintf("Resume_%s.%s", t.UTC().Format("20060102T150405Z"), ext)
}

// Both generates the PDF and DOCX documents concurrently. The final
// document is only read, so the two renders never conflict.
func Both(ctx context.Context, doc *types.FinalDocument, enhancedOrder []string) (pdfFile, docxFile *File, err error) {
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var genErr error
		pdfFile, genErr = PDF(doc, enhancedOrder)
		return genErr
	})
	g.Go(func() error {
		var genErr error
		docxFile, genErr = DOCX(doc, enhancedOrder)
		return genErr
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return pdfFile, docxFile, nil
}
