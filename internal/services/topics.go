package services

import "strings"

// subjectKeywords maps a subject tag to the keywords that signal it.
// A slice keeps extraction order stable across runs.
var subjectKeywords = []struct {
	Subject  string
	Keywords []string
}{
	{"matemáticas", []string{"ecuación", "derivada", "integral", "función", "álgebra", "cálculo", "geometría"}},
	{"física", []string{"fuerza", "energía", "movimiento", "velocidad", "aceleración", "gravedad", "ley"}},
	{"química", []string{"molécula", "átomo", "reacción", "elemento", "compuesto", "solución"}},
	{"biología", []string{"célula", "adn", "gen", "organismo", "ecosistema", "evolución"}},
	{"historia", []string{"guerra", "revolución", "imperio", "civilización", "cultura", "periodo"}},
	{"literatura", []string{"autor", "obra", "género", "personaje", "tema", "análisis"}},
}

// ExtractTopics returns the subjects whose keywords appear in the
// message. Case-insensitive substring match, no stemming, no scoring.
func ExtractTopics(message string) []string {
	lower := strings.ToLower(message)

	topics := []string{}
	for _, entry := range subjectKeywords {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				topics = append(topics, entry.Subject)
				break
			}
		}
	}
	return topics
}

// MergeTopics unions found topics into an existing list, preserving the
// existing order and never duplicating.
func MergeTopics(existing, found []string) []string {
	merged := make([]string, len(existing), len(existing)+len(found))
	copy(merged, existing)

	for _, topic := range found {
		seen := false
		for _, t := range merged {
			if t == topic {
				seen = true
				break
			}
		}
		if !seen {
			merged = append(merged, topic)
		}
	}
	return merged
}
