package channels

// flagLangs maps flag emoji to the language a reaction with that flag
// requests. Several flags can share a language; the map only covers
// countries whose flag unambiguously suggests one.
var flagLangs = map[string]string{
	"🇺🇸": "en",
	"🇬🇧": "en",
	"🇦🇺": "en",
	"🇨🇦": "en",
	"🇪🇸": "es",
	"🇲🇽": "es",
	"🇦🇷": "es",
	"🇨🇴": "es",
	"🇫🇷": "fr",
	"🇩🇪": "de",
	"🇦🇹": "de",
	"🇮🇹": "it",
	"🇵🇹": "pt",
	"🇧🇷": "pt",
	"🇳🇱": "nl",
	"🇷🇺": "ru",
	"🇯🇵": "ja",
	"🇰🇷": "ko",
	"🇨🇳": "zh",
	"🇹🇼": "zh",
	"🇮🇳": "hi",
	"🇸🇦": "ar",
	"🇪🇬": "ar",
	"🇹🇷": "tr",
	"🇵🇱": "pl",
	"🇸🇪": "sv",
	"🇳🇴": "no",
	"🇩🇰": "da",
	"🇫🇮": "fi",
	"🇬🇷": "el",
	"🇮🇩": "id",
	"🇻🇳": "vi",
	"🇹🇭": "th",
	"🇺🇦": "uk",
	"🇨🇿": "cs",
	"🇷🇴": "ro",
	"🇭🇺": "hu",
	"🇮🇱": "he",
}

// LangForFlag resolves a reaction emoji to a target language tag. Non-flag
// emoji and flags without a language mapping return false.
func LangForFlag(emoji string) (string, bool) {
	lang, ok := flagLangs[emoji]
	return lang, ok
}
