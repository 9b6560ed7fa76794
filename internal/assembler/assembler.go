package assembler

import (
	"strings"

	"ragchat/internal/domain"
)

// fragmentDelimiter visibly separates fragments of the same source in
// the rendered context block.
const fragmentDelimiter = "\n\n---\n\n"

// Assemble renders ranked matches into a grounding context block for a
// generation call. Matches are grouped by source document in order of
// each source's first appearance in the ranking; within a group the
// fragments keep their ranked order, not their original document order.
// An empty match list produces an empty string, which downstream prompt
// building treats as "no grounding context".
func Assemble(matches []domain.RankedMatch) string {
	if len(matches) == 0 {
		return ""
	}
	var order []string
	grouped := make(map[string][]string)
	for _, m := range matches {
		src := m.Fragment.Source
		if _, seen := grouped[src]; !seen {
			order = append(order, src)
		}
		grouped[src] = append(grouped[src], m.Fragment.Text)
	}
	sections := make([]string, 0, len(order))
	for _, src := range order {
		sections = append(sections,
			"📄 **From file: "+src+"**\n\n"+strings.Join(grouped[src], fragmentDelimiter))
	}
	return strings.Join(sections, "\n\n")
}
