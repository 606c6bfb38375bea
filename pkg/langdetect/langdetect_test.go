package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", "en"},
		{"whitespace only", "   \t\n", "en"},
		{"punctuation only", "!!! ??? ...", "en"},
		{"english", "hello there, how are you today", "en"},
		{"spanish latin script", "hola como estas", "en"},
		{"russian", "привет как дела", "ru"},
		{"arabic", "مرحبا كيف حالك", "ar"},
		{"hindi", "नमस्ते आप कैसे हैं", "hi"},
		{"korean", "안녕하세요 반갑습니다", "ko"},
		{"chinese", "你好世界今天天气很好", "zh"},
		{"japanese kana", "こんにちは、元気ですか", "ja"},
		{"japanese mixed kanji kana", "日本語を勉強しています", "ja"},
		{"mostly latin with emoji", "hello 🎉🎉🎉 world", "en"},
		{"numbers stripped", "12345 привет 67890", "ru"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text))
		})
	}
}

func TestDetectDeterministic(t *testing.T) {
	inputs := []string{"", "hello", "привет мир", "你好", "مرحبا"}
	for _, in := range inputs {
		first := Detect(in)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Detect(in))
		}
	}
}

func TestDetectReturnsKnownTag(t *testing.T) {
	known := map[string]bool{}
	for _, tag := range Tags() {
		known[tag] = true
	}

	inputs := []string{
		"", "mixed латиница and cyrillic", "数字123", "🎌", "abc абв عرب",
	}
	for _, in := range inputs {
		assert.True(t, known[Detect(in)], "tag for %q must be in the fixed set", in)
	}
}

func TestDetectBelowThreshold(t *testing.T) {
	// A couple of cyrillic letters inside a long latin sentence must not win.
	text := "this is a fairly long english sentence with да inside it somewhere"
	assert.Equal(t, "en", Detect(text))
}
