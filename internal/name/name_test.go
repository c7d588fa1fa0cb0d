package name

import (
	"math/rand"
	"strings"
	"testing"
	"unicode"
)

func TestGenerateNeverEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		n := Generate(rng)
		if n == "" {
			t.Fatal("empty name")
		}
		if strings.TrimSpace(n) != n {
			t.Fatalf("name %q has surrounding space", n)
		}
		if !unicode.IsUpper(rune(n[0])) {
			t.Fatalf("name %q not capitalized", n)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		if na, nb := Generate(a), Generate(b); na != nb {
			t.Fatalf("same seed produced %q and %q", na, nb)
		}
	}
}

func TestGenerateVariety(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[Generate(rng)] = true
	}
	if len(seen) < 50 {
		t.Errorf("only %d distinct names in 200 draws", len(seen))
	}
}
