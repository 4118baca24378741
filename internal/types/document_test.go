package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizedDocumentKeys(t *testing.T) {
	doc := NewNormalizedDocument()
	doc.Add("Summary", []LineItem{{Content: "text", Key: "original.Summary.0"}})
	doc.Add("Skills", []LineItem{
		{Content: "Go", Key: "original.Skills.0"},
		{Content: "SQL", Key: "original.Skills.1"},
	})

	assert.Equal(t, []string{
		"original.Summary.0",
		"original.Skills.0",
		"original.Skills.1",
	}, doc.Keys())
}

func TestNormalizedDocumentNilSafety(t *testing.T) {
	var doc *NormalizedDocument
	assert.True(t, doc.IsEmpty())
	assert.Nil(t, doc.Keys())
	assert.Nil(t, doc.Items("Skills"))
}

func TestFinalDocumentRemoveItemDropsEmptySection(t *testing.T) {
	doc := NewFinalDocument()
	doc.Append("Skills", FinalItem{Content: "Go", Source: SourceEnhanced})
	doc.Append("Skills", FinalItem{Content: "SQL", Source: SourceOriginal})
	doc.Append("Awards", FinalItem{Content: "Dean's List", Source: SourceEnhanced})

	removed, ok := doc.RemoveItem("Skills", 0)
	require.True(t, ok)
	assert.Equal(t, "Go", removed.Content)
	assert.Equal(t, []FinalItem{{Content: "SQL", Source: SourceOriginal}}, doc.Items("Skills"))

	_, ok = doc.RemoveItem("Skills", 0)
	require.True(t, ok)
	assert.False(t, doc.HasSection("Skills"))
	assert.Equal(t, []string{"Awards"}, doc.Order)
}

func TestFinalDocumentRemoveItemOutOfRange(t *testing.T) {
	doc := NewFinalDocument()
	doc.Append("Skills", FinalItem{Content: "Go", Source: SourceEnhanced})

	_, ok := doc.RemoveItem("Skills", 5)
	assert.False(t, ok)
	_, ok = doc.RemoveItem("Missing", 0)
	assert.False(t, ok)
}

func TestFinalDocumentAddSectionIdempotent(t *testing.T) {
	doc := NewFinalDocument()
	doc.AddSection("Projects")
	doc.AddSection("Projects")

	assert.Equal(t, []string{"Projects"}, doc.Order)
	assert.True(t, doc.HasSection("Projects"))
	// Empty user-added sections count as empty content.
	assert.True(t, doc.IsEmpty())
}

func TestFinalDocumentClone(t *testing.T) {
	doc := NewFinalDocument()
	doc.Append("Skills", FinalItem{Content: "Go", Source: SourceEnhanced})

	clone := doc.Clone()
	clone.SetContent("Skills", 0, "Rust")
	clone.Append("Awards", FinalItem{Content: "x", Source: SourceUserAdded})

	assert.Equal(t, "Go", doc.Items("Skills")[0].Content)
	assert.False(t, doc.HasSection("Awards"))
}

func TestSideOpposite(t *testing.T) {
	assert.Equal(t, SideEnhanced, SideOriginal.Opposite())
	assert.Equal(t, SideOriginal, SideEnhanced.Opposite())
	assert.True(t, SideOriginal.Valid())
	assert.False(t, Side("middle").Valid())
}
