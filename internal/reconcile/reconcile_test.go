package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-finalizer/internal/ledger"
	"github.com/jonathan/resume-finalizer/internal/types"
)

func normalized(side types.Side, sections map[string][]string, order ...string) *types.NormalizedDocument {
	doc := types.NewNormalizedDocument()
	for _, name := range order {
		lines := sections[name]
		items := make([]types.LineItem, 0, len(lines))
		for i, line := range lines {
			items = append(items, types.LineItem{
				Content: line,
				Key:     types.ComposeKey(side, name, i),
			})
		}
		doc.Add(name, items)
	}
	return doc
}

func TestReconcileSingleSelection(t *testing.T) {
	original := normalized(types.SideOriginal, nil)
	enhanced := normalized(types.SideEnhanced, map[string][]string{"Skills": {"Go"}}, "Skills")

	led := ledger.New()
	led.Toggle("enhanced.Skills.0", true)

	result := Reconcile(original, enhanced, led, nil, nil)
	assert.Equal(t, ModeDerived, result.Mode)
	assert.Equal(t, []types.FinalItem{{Content: "Go", Source: types.SourceEnhanced}}, result.Doc.Items("Skills"))
}

func TestReconcileNothingSelected(t *testing.T) {
	original := normalized(types.SideOriginal, map[string][]string{"Skills": {"Go"}}, "Skills")
	enhanced := normalized(types.SideEnhanced, map[string][]string{"Skills": {"Go"}}, "Skills")

	result := Reconcile(original, enhanced, ledger.New(), nil, nil)
	assert.Equal(t, ModeDerived, result.Mode)
	assert.True(t, result.Doc.IsEmpty())
}

func TestReconcileOriginalBeforeEnhanced(t *testing.T) {
	original := normalized(types.SideOriginal, map[string][]string{"Skills": {"SQL"}}, "Skills")
	enhanced := normalized(types.SideEnhanced, map[string][]string{"Skills": {"Go", "Kubernetes"}}, "Skills")

	led := ledger.New()
	led.Toggle("enhanced.Skills.0", true)
	led.Toggle("enhanced.Skills.1", true)
	led.Set("original.Skills.0", true)

	result := Reconcile(original, enhanced, led, nil, nil)
	assert.Equal(t, []types.FinalItem{
		{Content: "SQL", Source: types.SourceOriginal},
		{Content: "Go", Source: types.SourceEnhanced},
		{Content: "Kubernetes", Source: types.SourceEnhanced},
	}, result.Doc.Items("Skills"))
}

func TestReconcileSectionOrderFollowsEnhanced(t *testing.T) {
	sections := map[string][]string{
		"Summary": {"s"},
		"Skills":  {"Go"},
		"Awards":  {"x"},
	}
	original := normalized(types.SideOriginal, nil)
	enhanced := normalized(types.SideEnhanced, sections, "Summary", "Skills", "Awards")

	led := ledger.New()
	led.Toggle("enhanced.Awards.0", true)
	led.Toggle("enhanced.Summary.0", true)
	led.Toggle("enhanced.Skills.0", true)

	result := Reconcile(original, enhanced, led, nil, nil)
	assert.Equal(t, []string{"Summary", "Skills", "Awards"}, result.Doc.Order)
}

func TestReconcileOmitsUnselectedSections(t *testing.T) {
	sections := map[string][]string{"Summary": {"s"}, "Skills": {"Go"}}
	enhanced := normalized(types.SideEnhanced, sections, "Summary", "Skills")

	led := ledger.New()
	led.Toggle("enhanced.Skills.0", true)

	result := Reconcile(normalized(types.SideOriginal, nil), enhanced, led, nil, nil)
	assert.Equal(t, []string{"Skills"}, result.Doc.Order)
	assert.False(t, result.Doc.HasSection("Summary"))
}

func TestReconcileDeterministic(t *testing.T) {
	original := normalized(types.SideOriginal, map[string][]string{"Skills": {"SQL"}}, "Skills")
	enhanced := normalized(types.SideEnhanced, map[string][]string{"Skills": {"Go"}}, "Skills")

	led := ledger.New()
	led.Toggle("enhanced.Skills.0", true)
	led.Set("original.Skills.0", true)

	first := Reconcile(original, enhanced, led, nil, nil)
	second := Reconcile(original, enhanced, led, nil, nil)
	assert.Equal(t, first, second)
}

func TestReconcileSavedOverride(t *testing.T) {
	saved := types.NewFinalDocument()
	saved.Append("Skills", types.FinalItem{Content: "Edited", Source: types.SourceEnhanced})

	enhanced := normalized(types.SideEnhanced, map[string][]string{"Skills": {"Go"}}, "Skills")

	led := ledger.New()
	led.Toggle("enhanced.Skills.0", true)

	result := Reconcile(normalized(types.SideOriginal, nil), enhanced, led, saved, nil)
	assert.Equal(t, ModeOverride, result.Mode)
	assert.Same(t, saved, result.Doc)
}

func TestReconcileEmptySavedDoesNotOverride(t *testing.T) {
	result := Reconcile(
		normalized(types.SideOriginal, nil),
		normalized(types.SideEnhanced, map[string][]string{"Skills": {"Go"}}, "Skills"),
		ledger.New(),
		types.NewFinalDocument(),
		nil,
	)
	assert.Equal(t, ModeDerived, result.Mode)
}

func TestReconcilePublishesSummaryWhenEmpty(t *testing.T) {
	enhanced := normalized(types.SideEnhanced, map[string][]string{
		"Professional Summary": {"Line one", "Line two"},
		"Skills":               {"Go"},
	}, "Professional Summary", "Skills")

	store := NewCacheStore(time.Minute)
	Reconcile(normalized(types.SideOriginal, nil), enhanced, ledger.New(), nil, store)

	lines, found := store.Summary()
	require.True(t, found)
	assert.Equal(t, []string{"Line one", "Line two"}, lines)
}

func TestReconcileNoSummaryPublishWhenSelected(t *testing.T) {
	enhanced := normalized(types.SideEnhanced, map[string][]string{"Summary": {"s"}}, "Summary")

	led := ledger.New()
	led.Toggle("enhanced.Summary.0", true)

	store := NewCacheStore(time.Minute)
	Reconcile(normalized(types.SideOriginal, nil), enhanced, led, nil, store)

	_, found := store.Summary()
	assert.False(t, found)
}

func TestFoldSectionName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Summary", "summary"},
		{"Professional Summary", "professionalsummary"},
		{"profile-overview", "profileoverview"},
		{"PROFILE_SUMMARY", "profilesummary"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, foldSectionName(tt.in))
	}
}
