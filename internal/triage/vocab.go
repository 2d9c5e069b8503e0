package triage

// Vocabularies returns a copy of the classification keyword lists,
// keyed by category. Exposed for the read-only vocabulary resource;
// mutating the returned slices has no effect on classification.
func Vocabularies() map[string][]string {
	return map[string][]string{
		"engineering": append([]string{}, engineeringKeywords...),
		"business":    append([]string{}, businessKeywords...),
		"hybrid":      append([]string{}, hybridKeywords...),
	}
}
