package assistant

import "strings"

// Response templates keyed by language and template key. Placeholders use
// {name} syntax; every occurrence of a placeholder is substituted.
var templates = map[Lang]map[string]string{
	LangES: {
		"greeting":  "Hola, ¿qué van a pedir?",
		"notFound":  "No lo tenemos.",
		"added":     "Agregué {qty} {name}. ¿Algo más?",
		"removed":   "Ok, quité {name}. ¿Algo más?",
		"beverageQ": "¿Qué desean beber?",
		"shareQ":    "¿Van a compartir los principales?",
		"confirmQ":  "Este es el resumen: {summary}. Total {total}. ¿Confirmás?",
		"confirmed": "Pedido listo para confirmar. ¿Enviamos?",
		"askMore":   "¿Algo más?",
	},
	LangEN: {
		"greeting":  "Hi, what will you have?",
		"notFound":  "We don't have that.",
		"added":     "Added {qty} {name}. Anything else?",
		"removed":   "Removed {name}. Anything else?",
		"beverageQ": "What would you like to drink?",
		"shareQ":    "Will you share the mains?",
		"confirmQ":  "Here is the summary: {summary}. Total {total}. Confirm?",
		"confirmed": "Order ready to confirm. Send?",
		"askMore":   "Anything else?",
	},
}

// templateVars declares, per key, the variables a render must supply. The
// dictionaries and this declaration are cross-checked by tests so a new
// template cannot silently drift out of sync with the policy code.
var templateVars = map[string][]string{
	"greeting":  {},
	"notFound":  {},
	"added":     {"qty", "name"},
	"removed":   {"name"},
	"beverageQ": {},
	"shareQ":    {},
	"confirmQ":  {"summary", "total"},
	"confirmed": {},
	"askMore":   {},
}

// Render produces the localized string for key, substituting every {var}
// placeholder. An unknown key renders as the empty string.
func Render(lang Lang, key string, vars map[string]string) string {
	dict, ok := templates[lang]
	if !ok {
		dict = templates[LangES]
	}
	s, ok := dict[key]
	if !ok {
		return ""
	}
	for k, v := range vars {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}
	return s
}
