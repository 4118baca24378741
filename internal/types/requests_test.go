package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestToggleRequestValidate(t *testing.T) {
	valid := &ToggleRequest{Key: "enhanced.Skills.0", Selected: true}
	assert.NoError(t, valid.Validate())

	missing := &ToggleRequest{Selected: true}
	assert.Error(t, missing.Validate())
}

func TestSelectAllRequestValidate(t *testing.T) {
	assert.NoError(t, (&SelectAllRequest{Side: SideOriginal}).Validate())
	assert.NoError(t, (&SelectAllRequest{Side: SideEnhanced}).Validate())
	assert.Error(t, (&SelectAllRequest{Side: "both"}).Validate())
	assert.Error(t, (&SelectAllRequest{}).Validate())
}

func TestEditContentRequestValidate(t *testing.T) {
	assert.NoError(t, (&EditContentRequest{Section: "Skills", Index: 0, Content: ""}).Validate())
	assert.Error(t, (&EditContentRequest{Index: 0}).Validate())
	assert.Error(t, (&EditContentRequest{Section: "Skills", Index: -1}).Validate())
}

func TestExportRequestValidate(t *testing.T) {
	assert.NoError(t, (&ExportRequest{UserID: uuid.New(), Format: FormatPDF}).Validate())
	assert.NoError(t, (&ExportRequest{UserID: uuid.New(), Format: FormatBoth}).Validate())
	assert.Error(t, (&ExportRequest{Format: FormatPDF}).Validate())
	assert.Error(t, (&ExportRequest{UserID: uuid.New(), Format: "rtf"}).Validate())
	assert.Error(t, (&ExportRequest{UserID: uuid.New()}).Validate())
}
