package outline

// Resolve removes consecutive duplicate headings: identical (level, text,
// page) triples collapse to their first occurrence. Non-adjacent repeats
// survive, levels and order are untouched, and an H3 directly under an H1
// is legitimate. Resolve is idempotent.
func Resolve(headings []Heading) []Heading {
	out := make([]Heading, 0, len(headings))
	for _, h := range headings {
		if n := len(out); n > 0 && out[n-1] == h {
			continue
		}
		out = append(out, h)
	}
	return out
}
