// Package name generates pronounceable planet names from latin-flavored
// syllable tables.
package name

import (
	"math/rand"
	"strings"
)

var prefixes = []string{
	"bel", "nar", "xan", "bell", "natr", "ev",
}

var stems = []string{
	"adur", "aes", "anim", "apoll", "imac",
	"educ", "equis", "extr", "guius", "hann",
	"equi", "amora", "hum", "iace", "ille",
	"inept", "iuv", "obe", "ocul", "orbis",
}

var suffixes = []string{
	"us", "ix", "ox", "ith", "ath", "um",
	"ator", "or", "axia", "imus", "ais",
	"itur", "orex", "o", "y",
}

var appendixes = []string{
	" I", " II", " III", " IV", " V",
	" VI", " VII", " VIII", " IX", " X",
}

// Generate produces a planet name from the rng. Each syllable slot is
// filled with an independent chance; an empty draw retries, so the result
// is never empty.
func Generate(rng *rand.Rand) string {
	var b strings.Builder
	if rng.Float64() < 0.6 {
		b.WriteString(prefixes[rng.Intn(len(prefixes))])
	}
	if rng.Float64() < 0.6 {
		b.WriteString(stems[rng.Intn(len(stems))])
	}
	if rng.Float64() < 0.1 {
		b.WriteString(stems[rng.Intn(len(stems))])
	}
	if rng.Float64() < 0.6 {
		b.WriteString(suffixes[rng.Intn(len(suffixes))])
	}
	if b.Len() == 0 {
		return Generate(rng)
	}
	name := strings.ToUpper(b.String()[:1]) + b.String()[1:]
	if rng.Float64() < 0.4 {
		name += appendixes[rng.Intn(len(appendixes))]
	}
	return name
}
