package assistant

import (
	"regexp"
	"strconv"
	"strings"
)

var digitRun = regexp.MustCompile(`\d{1,2}`)

// numberWords maps spoken quantities to numbers. The table is an ordered
// slice, not a map: when several words appear in the text, the first table
// entry found wins, regardless of where each word occurs in the text.
var numberWords = []struct {
	word string
	n    int
}{
	{"una", 1},
	{"uno", 1},
	{"un", 1},
	{"1", 1},
	{"dos", 2},
	{"2", 2},
	{"tres", 3},
	{"3", 3},
	{"cuatro", 4},
	{"4", 4},
}

// ParseQuantity extracts a requested quantity from free text. A run of one
// or two digits wins, floored at 1; otherwise the word table is scanned in
// declaration order; otherwise the quantity defaults to 1. Never fails and
// never returns less than 1.
func ParseQuantity(text string) int {
	t := Normalize(text)
	if run := digitRun.FindString(t); run != "" {
		n, err := strconv.Atoi(run)
		if err == nil {
			if n < 1 {
				return 1
			}
			return n
		}
	}
	for _, entry := range numberWords {
		if strings.Contains(t, entry.word) {
			return entry.n
		}
	}
	return 1
}
