package services

import (
	"reflect"
	"testing"
)

func TestExtractTopics(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected []string
	}{
		{"derivative question", "¿Qué es una derivada?", []string{"matemáticas"}},
		{"uppercase keyword", "Explícame la LEY de Newton", []string{"física"}},
		{"keyword inside a word", "La aceleración de la partícula", []string{"física"}},
		{"two subjects", "La energía de una molécula", []string{"física", "química"}},
		{"no subject", "Hola, ¿cómo estás?", []string{}},
		{"history and literature", "El autor escribió sobre la guerra", []string{"historia", "literatura"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractTopics(tc.message)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("ExtractTopics(%q) = %v, want %v", tc.message, got, tc.expected)
			}
		})
	}
}

func TestExtractTopicsOrderIsStable(t *testing.T) {
	message := "análisis del movimiento de una célula en un ecosistema con ecuaciones"
	first := ExtractTopics(message)
	for i := 0; i < 10; i++ {
		if got := ExtractTopics(message); !reflect.DeepEqual(got, first) {
			t.Fatalf("Extraction order changed between runs: %v vs %v", got, first)
		}
	}
}

func TestMergeTopics(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		found    []string
		expected []string
	}{
		{"appends new", []string{"física"}, []string{"matemáticas"}, []string{"física", "matemáticas"}},
		{"skips duplicates", []string{"física", "química"}, []string{"química"}, []string{"física", "química"}},
		{"preserves existing order", []string{"b", "a"}, []string{"a", "c"}, []string{"b", "a", "c"}},
		{"empty existing", []string{}, []string{"historia"}, []string{"historia"}},
		{"empty found", []string{"historia"}, []string{}, []string{"historia"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MergeTopics(tc.existing, tc.found)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("MergeTopics(%v, %v) = %v, want %v", tc.existing, tc.found, got, tc.expected)
			}
		})
	}
}

// Running extraction twice and merging twice must never duplicate.
func TestMergeTopicsIdempotent(t *testing.T) {
	message := "La derivada de la función de energía"
	topics := MergeTopics([]string{}, ExtractTopics(message))
	again := MergeTopics(topics, ExtractTopics(message))
	if !reflect.DeepEqual(topics, again) {
		t.Errorf("Second merge changed the list: %v vs %v", topics, again)
	}
}
