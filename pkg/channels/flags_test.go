package channels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLangForFlag(t *testing.T) {
	lang, ok := LangForFlag("🇪🇸")
	assert.True(t, ok)
	assert.Equal(t, "es", lang)

	// Several flags resolve to the same language.
	for _, flag := range []string{"🇺🇸", "🇬🇧", "🇦🇺"} {
		lang, ok := LangForFlag(flag)
		assert.True(t, ok)
		assert.Equal(t, "en", lang)
	}

	_, ok = LangForFlag("👍")
	assert.False(t, ok)
	_, ok = LangForFlag("")
	assert.False(t, ok)
}

func TestNormalizeLang(t *testing.T) {
	assert.Equal(t, "es", normalizeLang("Spanish"))
	assert.Equal(t, "es", normalizeLang(" ES "))
	assert.Equal(t, "auto", normalizeLang("AUTO"))
	assert.Equal(t, "pt-br", normalizeLang("PT-BR"))
}
