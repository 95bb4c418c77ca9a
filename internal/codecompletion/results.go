package codecompletion

import (
	"fmt"
	"slices"
	"strings"

	"github.com/inoxlang/jscompletion/internal/utils"
	"github.com/maruel/natural"
)

const (
	VALUE_RESULT_KEY      = "value"
	SPECIAL_RESULT_KEY    = "special"
	IS_SPECIAL_RESULT_KEY = "isSpecial"
)

// An Entry is a resolution result carrying a display value, special entries (keywords, argument
// lists ...) are shown after the other candidates.
type Entry struct {
	Value     any  `json:"value"`
	IsSpecial bool `json:"isSpecial,omitempty"`
}

// NormalizeResults converts the results of a resolution into a sorted list of candidates.
// Non-special candidates come first, candidates with the same specialness are sorted by value;
// ties are broken by name (natural order) so the order does not depend on map iteration.
func NormalizeResults(results map[string]any) []Candidate {
	candidates := make([]Candidate, 0, len(results))

	for _, name := range utils.GetSortedMapKeys(results) {
		candidates = append(candidates, normalizeResult(name, results[name]))
	}

	slices.SortFunc(candidates, compareCandidates)
	return candidates
}

func compareCandidates(a, b Candidate) int {
	if a.IsSpecial != b.IsSpecial {
		if a.IsSpecial {
			return 1
		}
		return -1
	}

	if c := strings.Compare(a.Value, b.Value); c != 0 {
		return c
	}

	switch {
	case natural.Less(a.Name, b.Name):
		return -1
	case natural.Less(b.Name, a.Name):
		return 1
	default:
		return strings.Compare(a.Name, b.Name)
	}
}

func normalizeResult(name string, result any) Candidate {
	switch r := result.(type) {
	case Entry:
		return Candidate{Name: name, Value: formatValue(name, r.Value), IsSpecial: r.IsSpecial}
	case *Entry:
		if r == nil {
			return Candidate{Name: name, Value: name}
		}
		return Candidate{Name: name, Value: formatValue(name, r.Value), IsSpecial: r.IsSpecial}
	case map[string]any:
		isSpecial, _ := r[SPECIAL_RESULT_KEY].(bool)
		if !isSpecial {
			isSpecial, _ = r[IS_SPECIAL_RESULT_KEY].(bool)
		}
		return Candidate{Name: name, Value: formatValue(name, r[VALUE_RESULT_KEY]), IsSpecial: isSpecial}
	}

	return Candidate{Name: name, Value: formatValue(name, result)}
}

// formatValue returns the display value of a result, the name is used for nil values.
func formatValue(name string, value any) string {
	switch v := value.(type) {
	case nil:
		return name
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
