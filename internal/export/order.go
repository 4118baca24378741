package export

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-finalizer/internal/types"
)

// CanonicalOrder returns the section order both exporters must emit:
// sections from the enhanced document's ordering first, then any sections
// present in the final document but absent from that list, in their
// insertion order. Sections without items are skipped.
func CanonicalOrder(doc *types.FinalDocument, enhancedOrder []string) []string {
	var order []string
	seen := make(map[string]bool, len(enhancedOrder))

	for _, name := range enhancedOrder {
		seen[name] = true
		if len(doc.Items(name)) > 0 {
			order = append(order, name)
		}
	}
	for _, name := range doc.Order {
		if !seen[name] && len(doc.Items(name)) > 0 {
			order = append(order, name)
		}
	}
	return order
}

// SectionTitle derives display text from a section key: camel-case and
// compound keys split into space-separated capitalized words, so
// "workExperience" and "work_experience" both render as "Work Experience".
func SectionTitle(name string) string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()

	for i, word := range words {
		r := []rune(word)
		words[i] = string(unicode.ToUpper(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

// isContactSection reports whether a section renders as plain contact
// lines instead of bullet points. Matching is by name, case-insensitively.
func isContactSection(name string) bool {
	return strings.Contains(strings.ToLower(name), "contact")
}
