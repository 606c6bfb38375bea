// Package langcodes maps the relay's two-letter lowercase language tags to
// the vocabularies individual providers expect. Adapters own all mapping;
// chain selection logic never sees provider-specific codes.
package langcodes

import "strings"

var names = map[string]string{
	"ar": "Arabic",
	"bg": "Bulgarian",
	"cs": "Czech",
	"da": "Danish",
	"de": "German",
	"el": "Greek",
	"en": "English",
	"es": "Spanish",
	"et": "Estonian",
	"fi": "Finnish",
	"fr": "French",
	"he": "Hebrew",
	"hi": "Hindi",
	"hu": "Hungarian",
	"id": "Indonesian",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"lt": "Lithuanian",
	"lv": "Latvian",
	"nl": "Dutch",
	"no": "Norwegian",
	"pl": "Polish",
	"pt": "Portuguese",
	"ro": "Romanian",
	"ru": "Russian",
	"sk": "Slovak",
	"sl": "Slovenian",
	"sv": "Swedish",
	"th": "Thai",
	"tr": "Turkish",
	"uk": "Ukrainian",
	"vi": "Vietnamese",
	"zh": "Chinese",
}

// Name returns the English name for a tag, falling back to the tag itself
// for anything unknown; LLM backends cope fine with a raw code.
func Name(tag string) string {
	if n, ok := names[Base(tag)]; ok {
		return n
	}
	return tag
}

// Base lowers a tag and strips any region qualifier: "pt-BR" -> "pt".
func Base(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if idx := strings.IndexAny(tag, "-_"); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}
