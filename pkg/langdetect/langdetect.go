// Package langdetect classifies text into a coarse language tag using
// Unicode script frequency. It is not a statistical language identifier;
// it exists so that providers requiring an explicit source language can be
// fed something better than a guess when the caller declared "auto".
package langdetect

import (
	"strings"
	"unicode"
)

// DefaultTag is returned when no script clears the threshold.
const DefaultTag = "en"

// threshold is the fraction of cleaned text a script must cover to win.
const threshold = 0.3

type script struct {
	table *unicode.RangeTable
	tag   string
}

// Checked in order. Kana must precede Han so Japanese text, which mixes
// both, resolves to "ja" before the ideograph count can claim it for "zh".
var scripts = []script{
	{unicode.Devanagari, "hi"},
	{unicode.Arabic, "ar"},
	{unicode.Hangul, "ko"},
	{unicode.Hiragana, "ja"},
	{unicode.Katakana, "ja"},
	{unicode.Han, "zh"},
	{unicode.Cyrillic, "ru"},
}

// Detect returns a language tag for the given text. It is a total function:
// every input, including the empty string, yields a member of the fixed tag
// set and identical input always yields an identical tag.
func Detect(text string) string {
	var cleaned []rune
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			cleaned = append(cleaned, r)
		}
	}
	trimmed := strings.TrimSpace(string(cleaned))
	if len(trimmed) == 0 {
		return DefaultTag
	}

	total := len([]rune(trimmed))
	counts := make(map[string]int, len(scripts))
	for _, r := range trimmed {
		if !unicode.IsLetter(r) {
			continue
		}
		for _, s := range scripts {
			if unicode.Is(s.table, r) {
				counts[s.tag]++
				break
			}
		}
	}

	for _, s := range scripts {
		if float64(counts[s.tag]) > threshold*float64(total) {
			return s.tag
		}
	}
	return DefaultTag
}

// Tags returns the fixed set of tags Detect can produce.
func Tags() []string {
	seen := map[string]bool{DefaultTag: true}
	tags := []string{DefaultTag}
	for _, s := range scripts {
		if !seen[s.tag] {
			seen[s.tag] = true
			tags = append(tags, s.tag)
		}
	}
	return tags
}
