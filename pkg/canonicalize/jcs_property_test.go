package canonicalize

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: canonical output does not depend on map iteration order, and
// sorted key order holds for any pair of keys.
func TestMarshalProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("output is deterministic across rebuilt maps", prop.ForAll(
		func(keys []string, values []string) bool {
			a := make(map[string]any)
			b := make(map[string]any)
			for i := 0; i < len(keys) && i < len(values); i++ {
				a[keys[i]] = values[i]
			}
			// Insert the same entries in reverse to vary internal layout. Values
			// come from a so that repeated keys map to the same value in both.
			for i := min(len(keys), len(values)) - 1; i >= 0; i-- {
				b[keys[i]] = a[keys[i]]
			}
			ab, err1 := Marshal(a)
			bb, err2 := Marshal(b)
			if err1 != nil || err2 != nil {
				return err1 != nil && err2 != nil
			}
			return string(ab) == string(bb)
		},
		gen.SliceOf(gen.AnyString()),
		gen.SliceOf(gen.AnyString()),
	))

	properties.Property("keys appear in UTF-16 code-unit order", prop.ForAll(
		func(k1, k2 string, v int) bool {
			if k1 == k2 || strings.ContainsRune(k1+k2, 0) {
				return true
			}
			out, err := Marshal(map[string]any{k1: v, k2: v})
			if err != nil {
				return true
			}
			lo, hi := k1, k2
			if utf16Less(k2, k1) {
				lo, hi = k2, k1
			}
			loQuoted, err := Marshal(lo)
			if err != nil {
				return true
			}
			hiQuoted, err := Marshal(hi)
			if err != nil {
				return true
			}
			return strings.Index(string(out), string(loQuoted)) < strings.Index(string(out), string(hiQuoted))
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.Int(),
	))

	properties.TestingRun(t)
}

// utf16Less compares strings by UTF-16 code units.
func utf16Less(a, b string) bool {
	ar, br := []rune(a), []rune(b)
	for i := 0; i < len(ar) && i < len(br); i++ {
		au, bu := utf16Units(ar[i]), utf16Units(br[i])
		for j := 0; j < len(au) && j < len(bu); j++ {
			if au[j] != bu[j] {
				return au[j] < bu[j]
			}
		}
		if len(au) != len(bu) {
			return len(au) < len(bu)
		}
	}
	return len(ar) < len(br)
}

func utf16Units(r rune) []uint16 {
	if r < 0x10000 {
		return []uint16{uint16(r)}
	}
	r -= 0x10000
	return []uint16{0xD800 + uint16(r>>10), 0xDC00 + uint16(r&0x3FF)}
}
