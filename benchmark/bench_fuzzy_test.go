//nolint:testpackage // internal packages are benchmarked directly
package benchmark

import (
	"testing"

	"github.com/dzonerzy/go-easyparse/internal/fuzzy"
)

// Category: fuzzy

var switchForms = []string{
	"boolswitch1", "anotherboolean", "boolean3", "argtype", "custom1", "custom2",
	"verbose", "output", "config", "timeout", "retry", "force",
}

func BenchmarkMatcher_Best(b *testing.B) {
	matcher := fuzzy.NewMatcher(2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matcher.Best("argtyp", switchForms)
	}
}

func BenchmarkMatcher_Rank(b *testing.B) {
	matcher := fuzzy.NewMatcher(2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matcher.Rank("custom", switchForms)
	}
}

func BenchmarkConvenienceFunctions(b *testing.B) {
	b.Run("Suggest", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fuzzy.Suggest("verbos", switchForms, 2)
		}
	})
	b.Run("SuggestN", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fuzzy.SuggestN("custom", switchForms, 2, 3)
		}
	})
}
