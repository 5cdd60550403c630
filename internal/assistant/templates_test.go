package assistant

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSubstitution(t *testing.T) {
	got := Render(LangES, "added", map[string]string{"qty": "2", "name": "Limonada"})
	assert.Equal(t, "Agregué 2 Limonada. ¿Algo más?", got)

	got = Render(LangEN, "added", map[string]string{"qty": "2", "name": "Limonada"})
	assert.Equal(t, "Added 2 Limonada. Anything else?", got)
}

func TestRenderUnknownKey(t *testing.T) {
	assert.Equal(t, "", Render(LangES, "doesNotExist", nil))
}

func TestRenderUnknownLangFallsBackToSpanish(t *testing.T) {
	got := Render(Lang("fr"), "notFound", nil)
	assert.Equal(t, "No lo tenemos.", got)
}

var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

// TestTemplateDictionariesInSync checks that both languages define exactly
// the declared keys and that each template uses exactly its declared
// variables, so policy code and templates cannot drift apart.
func TestTemplateDictionariesInSync(t *testing.T) {
	for lang, dict := range templates {
		assert.Len(t, dict, len(templateVars), "language %s key count", lang)
		for key, tmpl := range dict {
			declared, ok := templateVars[key]
			require.True(t, ok, "template %s/%s has no variable declaration", lang, key)

			used := make(map[string]bool)
			for _, m := range placeholderPattern.FindAllStringSubmatch(tmpl, -1) {
				used[m[1]] = true
			}
			assert.Len(t, used, len(declared), "template %s/%s variable count", lang, key)
			for _, v := range declared {
				assert.True(t, used[v], "template %s/%s is missing {%s}", lang, key, v)
			}
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		locale string
		text   string
		want   Lang
	}{
		{"es-AR", "", LangES},
		{"en-US", "", LangEN},
		{"", "hola, quiero una limonada", LangES},
		{"", "hello, a lemonade please", LangEN},
		{"", "xyzzy", LangES},  // default
		{"EN", "hola", LangEN}, // explicit locale wins over keywords
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLanguage(tt.locale, tt.text),
			"DetectLanguage(%q, %q)", tt.locale, tt.text)
	}
}
