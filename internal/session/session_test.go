package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-finalizer/internal/reconcile"
	"github.com/jonathan/resume-finalizer/internal/types"
)

func testPayload(t *testing.T, raw string) *types.RawPayload {
	t.Helper()
	var payload types.RawPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return &payload
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	payload := testPayload(t, `{
		"parsed_resumes": {
			"current_resumes": {"Summary": "Old summary.", "Skills": ["SQL", "Go"]},
			"enhanced_resume": {"Summary": "New summary.", "Skills": ["Go", "Kubernetes"]}
		}
	}`)
	s, err := New(payload, nil)
	require.NoError(t, err)
	return s
}

func TestNewRejectsEmptyPayload(t *testing.T) {
	payload := testPayload(t, `{
		"parsed_resumes": {"current_resumes": {}, "enhanced_resume": {"Skills": []}}
	}`)
	_, err := New(payload, nil)
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestToggleRecomputesFinal(t *testing.T) {
	s := newTestSession(t)

	result, err := s.Toggle("enhanced.Skills.0", true)
	require.NoError(t, err)
	assert.Equal(t, reconcile.ModeDerived, result.Mode)
	assert.Equal(t, []types.FinalItem{{Content: "Go", Source: types.SourceEnhanced}}, result.Doc.Items("Skills"))

	result, err = s.Toggle("enhanced.Skills.0", false)
	require.NoError(t, err)
	assert.True(t, result.Doc.IsEmpty())
}

func TestToggleUnknownKey(t *testing.T) {
	s := newTestSession(t)

	_, err := s.Toggle("enhanced.Skills.99", true)
	assert.ErrorIs(t, err, ErrUnknownKey)

	_, err = s.Toggle("enhanced.Missing.0", true)
	assert.ErrorIs(t, err, ErrUnknownKey)

	_, err = s.Toggle("not-a-key", true)
	assert.Error(t, err)
}

func TestToggleMirrorDeselectsOpposite(t *testing.T) {
	s := newTestSession(t)

	_, err := s.Toggle("original.Summary.0", true)
	require.NoError(t, err)
	result, err := s.Toggle("enhanced.Summary.0", true)
	require.NoError(t, err)

	assert.Equal(t, []types.FinalItem{
		{Content: "New summary.", Source: types.SourceEnhanced},
	}, result.Doc.Items("Summary"))
}

func TestSelectAllRoundTrip(t *testing.T) {
	s := newTestSession(t)

	result, err := s.SelectAll(types.SideEnhanced)
	require.NoError(t, err)
	assert.True(t, s.AreAllSelected(types.SideEnhanced))
	assert.Len(t, result.Doc.Items("Skills"), 2)

	// Selecting the other side flips everything over.
	result, err = s.SelectAll(types.SideOriginal)
	require.NoError(t, err)
	assert.True(t, s.AreAllSelected(types.SideOriginal))
	assert.False(t, s.AreAllSelected(types.SideEnhanced))
	for _, item := range result.Doc.Items("Skills") {
		assert.Equal(t, types.SourceOriginal, item.Source)
	}

	// Re-selecting a fully selected side clears the board.
	result, err = s.SelectAll(types.SideOriginal)
	require.NoError(t, err)
	assert.True(t, result.Doc.IsEmpty())
}

func TestFinalOrderFollowsEnhancedDocument(t *testing.T) {
	s := newTestSession(t)

	_, err := s.SelectAll(types.SideEnhanced)
	require.NoError(t, err)

	result := s.Final()
	assert.Equal(t, []string{"Summary", "Skills"}, result.Doc.Order)
}

func TestSaveEditEntersOverrideMode(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Toggle("enhanced.Skills.0", true)
	require.NoError(t, err)

	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.EditContent("Skills", 0, "Golang"))
	result, err := s.SaveEdit()
	require.NoError(t, err)

	assert.Equal(t, reconcile.ModeOverride, result.Mode)
	assert.Equal(t, "Golang", result.Doc.Items("Skills")[0].Content)

	// The edited text survives later recomputation triggers.
	result = s.Final()
	assert.Equal(t, reconcile.ModeOverride, result.Mode)
	assert.Equal(t, "Golang", result.Doc.Items("Skills")[0].Content)
}

func TestOverrideStickinessOnToggle(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Toggle("enhanced.Skills.0", true)
	require.NoError(t, err)

	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.EditContent("Skills", 0, "Golang"))
	_, err = s.SaveEdit()
	require.NoError(t, err)

	// A select in override mode appends to the saved resume; the edited
	// line stays put instead of being recomputed away.
	result, err := s.Toggle("enhanced.Skills.1", true)
	require.NoError(t, err)
	assert.Equal(t, reconcile.ModeOverride, result.Mode)
	assert.Equal(t, []types.FinalItem{
		{Content: "Golang", Source: types.SourceEnhanced},
		{Content: "Kubernetes", Source: types.SourceEnhanced},
	}, result.Doc.Items("Skills"))

	// A deselect removes the matching content in place.
	result, err = s.Toggle("enhanced.Skills.1", false)
	require.NoError(t, err)
	assert.Equal(t, reconcile.ModeOverride, result.Mode)
	assert.Equal(t, []types.FinalItem{
		{Content: "Golang", Source: types.SourceEnhanced},
	}, result.Doc.Items("Skills"))
}

func TestOverrideToggleMirrorSwapsSavedContent(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Toggle("enhanced.Summary.0", true)
	require.NoError(t, err)

	require.NoError(t, s.BeginEdit())
	_, err = s.SaveEdit()
	require.NoError(t, err)

	// Selecting the mirror while its counterpart is selected swaps the
	// saved content rather than duplicating the slot.
	result, err := s.Toggle("original.Summary.0", true)
	require.NoError(t, err)
	assert.Equal(t, []types.FinalItem{
		{Content: "Old summary.", Source: types.SourceOriginal},
	}, result.Doc.Items("Summary"))
}

func TestOverrideDropsWhenSavedEmpties(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Toggle("enhanced.Skills.0", true)
	require.NoError(t, err)

	require.NoError(t, s.BeginEdit())
	_, err = s.SaveEdit()
	require.NoError(t, err)

	// Removing the last saved line drops back to derived mode, and the
	// deselect also cleared the only ledger key, so the derived document
	// comes back empty.
	result, err := s.Toggle("enhanced.Skills.0", false)
	require.NoError(t, err)
	assert.Equal(t, reconcile.ModeDerived, result.Mode)
	assert.True(t, result.Doc.IsEmpty())
}

func TestSelectAllInOverrideModeMirrorsTransitions(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Toggle("enhanced.Skills.0", true)
	require.NoError(t, err)

	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.EditContent("Skills", 0, "Golang"))
	_, err = s.SaveEdit()
	require.NoError(t, err)

	result, err := s.SelectAll(types.SideEnhanced)
	require.NoError(t, err)
	assert.Equal(t, reconcile.ModeOverride, result.Mode)

	// enhanced.Skills.0 was already selected so its (edited) line stays;
	// the newly selected items append in document order.
	items := result.Doc.Items("Skills")
	require.Len(t, items, 2)
	assert.Equal(t, "Golang", items[0].Content)
	assert.Equal(t, "Kubernetes", items[1].Content)
	assert.True(t, result.Doc.HasSection("Summary"))
}

func TestRemoveLineClearsLedgerAndSaved(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Toggle("enhanced.Skills.0", true)
	require.NoError(t, err)

	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.RemoveLine("Skills", 0))

	// The ledger key for the matching content flipped false, so the
	// derived view agrees with the scratch buffer.
	view := s.View()
	assert.False(t, view.Ledger["enhanced.Skills.0"])
	// "Go" also exists on the original side; its key clears too.
	assert.False(t, view.Ledger["original.Skills.1"])
}

func TestCancelEditKeepsDerivedState(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Toggle("enhanced.Skills.0", true)
	require.NoError(t, err)

	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.EditContent("Skills", 0, "Golang"))
	require.NoError(t, s.CancelEdit())

	result := s.Final()
	assert.Equal(t, reconcile.ModeDerived, result.Mode)
	assert.Equal(t, "Go", result.Doc.Items("Skills")[0].Content)
}

func TestLoadPayloadResetsEverything(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Toggle("enhanced.Skills.0", true)
	require.NoError(t, err)
	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.EditContent("Skills", 0, "Golang"))
	_, err = s.SaveEdit()
	require.NoError(t, err)

	err = s.LoadPayload(testPayload(t, `{
		"parsed_resumes": {
			"current_resumes": {},
			"enhanced_resume": {"Education": ["State U"]}
		}
	}`))
	require.NoError(t, err)

	result := s.Final()
	assert.Equal(t, reconcile.ModeDerived, result.Mode)
	assert.True(t, result.Doc.IsEmpty())
	assert.False(t, s.Editing())
}

func TestLoadPayloadRejectsEmptyAndKeepsState(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Toggle("enhanced.Skills.0", true)
	require.NoError(t, err)

	err = s.LoadPayload(testPayload(t, `{
		"parsed_resumes": {"current_resumes": {}, "enhanced_resume": {}}
	}`))
	assert.ErrorIs(t, err, ErrNoContent)

	// The failed load leaves the session untouched.
	assert.False(t, s.Final().Doc.IsEmpty())
}

func TestFinalReturnsCopyInOverrideMode(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Toggle("enhanced.Skills.0", true)
	require.NoError(t, err)

	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.EditContent("Skills", 0, "Golang"))
	_, err = s.SaveEdit()
	require.NoError(t, err)

	// Mutating a returned document must not reach the saved resume.
	result := s.Final()
	result.Doc.SetContent("Skills", 0, "tampered")
	result.Doc.Append("Injected", types.FinalItem{Content: "x", Source: types.SourceUserAdded})

	current := s.Final()
	assert.Equal(t, "Golang", current.Doc.Items("Skills")[0].Content)
	assert.False(t, current.Doc.HasSection("Injected"))
}

func TestViewScratchIsACopy(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Toggle("enhanced.Skills.0", true)
	require.NoError(t, err)
	require.NoError(t, s.BeginEdit())

	view := s.View()
	require.NotNil(t, view.Scratch)
	view.Scratch.SetContent("Skills", 0, "tampered")

	result, err := s.SaveEdit()
	require.NoError(t, err)
	assert.Equal(t, "Go", result.Doc.Items("Skills")[0].Content)
}

func TestConcurrentEncodeWhileToggling(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Toggle("enhanced.Skills.0", true)
	require.NoError(t, err)

	require.NoError(t, s.BeginEdit())
	_, err = s.SaveEdit()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			if _, err := s.Toggle("enhanced.Skills.1", i%2 == 0); err != nil {
				return
			}
		}
	}()

	// Encoding results outside the session lock must never observe
	// in-place saved-resume mutations.
	for i := 0; i < 200; i++ {
		result := s.Final()
		if _, err := json.Marshal(result); err != nil {
			t.Errorf("marshal failed: %v", err)
			break
		}
		view := s.View()
		if _, err := json.Marshal(view); err != nil {
			t.Errorf("marshal view failed: %v", err)
			break
		}
	}
	<-done
}

func TestViewSnapshot(t *testing.T) {
	s := newTestSession(t)
	_, err := s.SelectAll(types.SideEnhanced)
	require.NoError(t, err)

	view := s.View()
	assert.Equal(t, s.ID(), view.ID)
	assert.True(t, view.AllEnhancedSelected)
	assert.False(t, view.AllOriginalSelected)
	assert.False(t, view.Editing)
	assert.Nil(t, view.Scratch)
	assert.True(t, view.Ledger["enhanced.Skills.0"])
}
