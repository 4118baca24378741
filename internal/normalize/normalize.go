// Package normalize converts heterogeneous raw resume payloads into the
// uniform "sections of line items" shape used by the rest of the engine.
package normalize

import (
	"strings"

	"github.com/jonathan/resume-finalizer/internal/types"
)

// Document normalizes one side's raw section map.
//
// Array values are filtered of empty/whitespace-only entries and
// deduplicated by exact string equality (first occurrence wins); scalar
// string values wrap as a single-item section. Keys are assigned as
// "<side>.<section>.<index>" over the deduplicated slice, so they are
// recomputed on every normalization rather than stable across upstream
// payload edits. Sections that are empty after filtering, or whose value is
// neither an array nor a non-empty string, are omitted.
func Document(raw types.SectionMap, side types.Side) *types.NormalizedDocument {
	doc := types.NewNormalizedDocument()

	for _, entry := range raw.Entries {
		lines := coerceSection(entry.Value)

		items := make([]types.LineItem, 0, len(lines))
		seen := make(map[string]bool, len(lines))
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || seen[trimmed] {
				continue
			}
			seen[trimmed] = true
			items = append(items, types.LineItem{
				Content: trimmed,
				Key:     types.ComposeKey(side, entry.Name, len(items)),
			})
		}

		if len(items) > 0 {
			doc.Add(entry.Name, items)
		}
	}

	return doc
}

// Payload normalizes both sides of a raw payload.
func Payload(payload *types.RawPayload) (original, enhanced *types.NormalizedDocument) {
	original = Document(payload.ParsedResumes.CurrentResumes, types.SideOriginal)
	enhanced = Document(payload.ParsedResumes.EnhancedResume, types.SideEnhanced)
	return original, enhanced
}
