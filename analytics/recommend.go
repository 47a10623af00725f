package analytics

// Editorial adjacency tables. These are static curation, not learned
// similarity; keys match the category slugs and author names the content
// catalog uses.
var relatedCategories = map[string][]string{
	"motivation":  {"success", "perseverance", "inspiration"},
	"success":     {"motivation", "leadership", "ambition"},
	"love":        {"friendship", "happiness", "life"},
	"wisdom":      {"philosophy", "truth", "knowledge"},
	"life":        {"wisdom", "happiness", "change"},
	"happiness":   {"gratitude", "love", "mindfulness"},
	"inspiration": {"creativity", "dreams", "courage"},
	"humor":       {"wit", "irony", "life"},
	"friendship":  {"love", "loyalty", "kindness"},
	"courage":     {"perseverance", "strength", "inspiration"},
}

var relatedAuthors = map[string][]string{
	"Maya Angelou":    {"Toni Morrison", "James Baldwin", "Langston Hughes"},
	"Albert Einstein": {"Isaac Newton", "Richard Feynman", "Carl Sagan"},
	"Oscar Wilde":     {"Mark Twain", "George Bernard Shaw", "Dorothy Parker"},
	"Mark Twain":      {"Oscar Wilde", "Will Rogers", "Kurt Vonnegut"},
	"Rumi":            {"Khalil Gibran", "Hafiz", "Lao Tzu"},
	"Lao Tzu":         {"Confucius", "Rumi", "Sun Tzu"},
	"Marcus Aurelius": {"Seneca", "Epictetus", "Plato"},
	"Confucius":       {"Lao Tzu", "Mencius", "Sun Tzu"},
	"Jane Austen":     {"Charlotte Bronte", "Virginia Woolf", "George Eliot"},
}

// suggestFrom unions the related entries across the given keys in first-seen
// order, capped at limit. Keys without a table entry contribute nothing.
func suggestFrom(table map[string][]string, keys []string, limit int) []string {
	suggestions := make([]string, 0, limit)
	seen := make(map[string]struct{})
	for _, key := range keys {
		for _, related := range table[key] {
			if _, dup := seen[related]; dup {
				continue
			}
			seen[related] = struct{}{}
			suggestions = append(suggestions, related)
			if len(suggestions) == limit {
				return suggestions
			}
		}
	}
	return suggestions
}
