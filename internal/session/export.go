package session

import (
	"context"

	"github.com/jonathan/resume-finalizer/internal/export"
	"github.com/jonathan/resume-finalizer/internal/types"
)

// Export generates the requested document format(s) from the current
// final resume. It rejects the call while unsaved edits exist and when the
// final document is empty; eligibility and persistence are the caller's
// concern. The document is copied under the lock so encoding runs without
// blocking other operations.
func (s *Session) Export(ctx context.Context, format types.ExportFormat) ([]*export.File, error) {
	s.mu.Lock()
	if s.overlay.Dirty() {
		s.mu.Unlock()
		return nil, ErrUnsavedEdits
	}
	result := s.resultLocked()
	if result.Doc.IsEmpty() {
		s.mu.Unlock()
		return nil, ErrNoContent
	}
	doc := result.Doc
	order := make([]string, len(s.enhanced.Order))
	copy(order, s.enhanced.Order)
	s.mu.Unlock()

	switch format {
	case types.FormatPDF:
		file, err := export.PDF(doc, order)
		if err != nil {
			return nil, err
		}
		return []*export.File{file}, nil
	case types.FormatDOCX:
		file, err := export.DOCX(doc, order)
		if err != nil {
			return nil, err
		}
		return []*export.File{file}, nil
	case types.FormatBoth:
		pdfFile, docxFile, err := export.Both(ctx, doc, order)
		if err != nil {
			return nil, err
		}
		return []*export.File{pdfFile, docxFile}, nil
	default:
		return nil, ErrUnknownFormat
	}
}
