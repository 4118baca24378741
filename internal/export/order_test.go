package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-finalizer/internal/types"
)

func TestCanonicalOrder(t *testing.T) {
	doc := types.NewFinalDocument()
	doc.Append("Awards", types.FinalItem{Content: "x", Source: types.SourceEnhanced})
	doc.Append("Summary", types.FinalItem{Content: "s", Source: types.SourceEnhanced})
	doc.Append("Skills", types.FinalItem{Content: "Go", Source: types.SourceEnhanced})
	doc.Append("Projects", types.FinalItem{Content: "p", Source: types.SourceUserAdded})

	enhancedOrder := []string{"Summary", "Skills", "Awards"}

	assert.Equal(t, []string{"Summary", "Skills", "Awards", "Projects"},
		CanonicalOrder(doc, enhancedOrder))
}

func TestCanonicalOrderSkipsEmptySections(t *testing.T) {
	doc := types.NewFinalDocument()
	doc.AddSection("Projects")
	doc.Append("Skills", types.FinalItem{Content: "Go", Source: types.SourceEnhanced})

	assert.Equal(t, []string{"Skills"}, CanonicalOrder(doc, []string{"Summary", "Skills"}))
}

func TestCanonicalOrderExtraSectionsKeepInsertionOrder(t *testing.T) {
	doc := types.NewFinalDocument()
	doc.Append("Zeta", types.FinalItem{Content: "z", Source: types.SourceUserAdded})
	doc.Append("Alpha", types.FinalItem{Content: "a", Source: types.SourceUserAdded})

	assert.Equal(t, []string{"Zeta", "Alpha"}, CanonicalOrder(doc, nil))
}

func TestSectionTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"workExperience", "Work Experience"},
		{"work_experience", "Work Experience"},
		{"work-experience", "Work Experience"},
		{"Skills", "Skills"},
		{"contact information", "Contact Information"},
		{"ABOUT", "ABOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SectionTitle(tt.in))
		})
	}
}

func TestIsContactSection(t *testing.T) {
	assert.True(t, isContactSection("Contact Information"))
	assert.True(t, isContactSection("contact"))
	assert.False(t, isContactSection("Skills"))
}
