// Package arith recognizes a single spelled-out or symbolic binary
// arithmetic operation inside a chat utterance and evaluates it.
package arith

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Operator synonyms, English and Turkish, applied after lowercasing and
// comma-to-dot decimal normalization. Diacritic forms fold to ASCII first,
// so "artı" and "arti" both resolve to "+".
var synonyms = []struct {
	pattern *regexp.Regexp
	op      string
}{
	{regexp.MustCompile(`\bplus\b`), "+"},
	{regexp.MustCompile(`\barti\b`), "+"},
	{regexp.MustCompile(`\bminus\b`), "-"},
	{regexp.MustCompile(`\beksi\b`), "-"},
	{regexp.MustCompile(`\bmultiplied by\b`), "*"},
	{regexp.MustCompile(`\btimes\b`), "*"},
	{regexp.MustCompile(`\bx\b`), "*"},
	{regexp.MustCompile(`\bcarpi\b`), "*"},
	{regexp.MustCompile(`\bdivided by\b`), "/"},
	{regexp.MustCompile(`\bbolu\b`), "/"},
}

var expr = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*([+\-*/])\s*(-?\d+(?:\.\d+)?)`)

var foldTurkish = strings.NewReplacer(
	"ç", "c", "ğ", "g", "ı", "i", "ö", "o", "ş", "s", "ü", "u",
)

// TrySolve evaluates a single `<number> <operator> <number>` expression in
// the utterance. The second return is false when no expression is found,
// an operand is not finite, or the divisor is zero; none of these are
// errors, the caller simply moves on. Integral results are formatted
// without a decimal point; others are rounded to 6 decimal places.
func TrySolve(utterance string) (string, bool) {
	normalized := foldTurkish.Replace(strings.ToLower(utterance))
	normalized = strings.ReplaceAll(normalized, ",", ".")
	for _, syn := range synonyms {
		normalized = syn.pattern.ReplaceAllString(normalized, syn.op)
	}

	m := expr.FindStringSubmatch(normalized)
	if m == nil {
		return "", false
	}

	left, errL := strconv.ParseFloat(m[1], 64)
	right, errR := strconv.ParseFloat(m[3], 64)
	if errL != nil || errR != nil {
		return "", false
	}

	var value float64
	switch m[2] {
	case "+":
		value = left + right
	case "-":
		value = left - right
	case "*":
		value = left * right
	case "/":
		if right == 0 {
			return "", false
		}
		value = left / right
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", false
	}
	return format(value), true
}

func format(value float64) string {
	if value == math.Trunc(value) && math.Abs(value) < 1e15 {
		return strconv.FormatFloat(value, 'f', 0, 64)
	}
	rounded := math.Round(value*1e6) / 1e6
	s := strconv.FormatFloat(rounded, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
