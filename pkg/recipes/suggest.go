package recipes

import "strings"

// maxSuggestDistance bounds how far a misspelt name may be from a
// suggestion, as a fraction of the name's length.
const maxSuggestDistance = 3

// Suggest returns the registered name closest to name by case-insensitive
// edit distance, or "" when nothing is close enough.
func (r *Registry) Suggest(name string) string {
	lowered := strings.ToLower(name)
	limit := max(len([]rune(lowered))/maxSuggestDistance, 1)

	best, bestDistance := "", limit+1

	for _, descriptor := range r.ordered {
		distance := editDistance(lowered, strings.ToLower(descriptor.Name))
		if distance < bestDistance {
			best, bestDistance = descriptor.Name, distance
		}
	}

	return best
}

// editDistance is the Levenshtein distance between a and b over runes,
// computed with a single reused row.
func editDistance(a, b string) int {
	source, target := []rune(a), []rune(b)
	if len(source) < len(target) {
		source, target = target, source
	}

	row := make([]int, len(target)+1)
	for idx := range row {
		row[idx] = idx
	}

	for i, sr := range source {
		diagonal := row[0]
		row[0] = i + 1

		for j, tr := range target {
			above := row[j+1]

			cost := 1
			if sr == tr {
				cost = 0
			}

			row[j+1] = min(above+1, row[j]+1, diagonal+cost)
			diagonal = above
		}
	}

	return row[len(target)]
}
