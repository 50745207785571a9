package session

import (
	"math/rand"
	"strings"
)

const (
	codeLength = 4
	maxRetries = 100
	letters    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateCode draws 4-letter uppercase session codes from rng until one is
// not taken. After maxRetries collisions it returns the last draw.
func GenerateCode(rng *rand.Rand, taken func(code string) bool) string {
	code := randomCode(rng)
	for i := 1; i < maxRetries && taken(code); i++ {
		code = randomCode(rng)
	}
	return code
}

func randomCode(rng *rand.Rand) string {
	var b strings.Builder
	b.Grow(codeLength)
	for range codeLength {
		b.WriteByte(letters[rng.Intn(len(letters))])
	}
	return b.String()
}
