package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/atmdb/atmdb/pkg/dex"
	"github.com/tidwall/gjson"
)

// DefaultDenylist holds the words scrubbed from evolution names.
var DefaultDenylist = []string{"prueba"}

var defaultCleaner = NewCleaner(DefaultDenylist)

// CapitalizeWords upper-cases the first letter of every space separated word
// and lower-cases the rest. Only ASCII letters change.
func CapitalizeWords(s string) string {
	if s == "" {
		return ""
	}
	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	b := []byte(w)
	if 'a' <= b[0] && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	for i := 1; i < len(b); i++ {
		if 'A' <= b[i] && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// Cleaner removes denylisted whole words, case-insensitively.
type Cleaner struct {
	re *regexp.Regexp
}

func NewCleaner(words []string) *Cleaner {
	var escaped []string
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		escaped = append(escaped, regexp.QuoteMeta(w))
	}
	if len(escaped) == 0 {
		return &Cleaner{}
	}
	return &Cleaner{re: regexp.MustCompile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`)}
}

// Clean scrubs the denylist from s, then collapses whitespace and trims.
func (c *Cleaner) Clean(s string) string {
	if s == "" {
		return ""
	}
	if c != nil && c.re != nil {
		s = c.re.ReplaceAllString(s, "")
	}
	return strings.Join(strings.Fields(s), " ")
}

// CleanString cleans s with DefaultDenylist.
func CleanString(s string) string {
	return defaultCleaner.Clean(s)
}

// PropertiesString renders a condition object as "Key: value, Key: value".
// The biomes list is rendered separately and skipped here.
func PropertiesString(props dex.Properties) string {
	if props == nil {
		return ""
	}
	parts := make([]string, 0, len(props))
	for _, p := range props {
		if p.Key == "biomes" {
			continue
		}
		parts = append(parts, CapitalizeWords(p.Key)+": "+renderValue(p.Value))
	}
	return strings.Join(parts, ", ")
}

func renderValue(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		// 1.0 prints as 1, 2.50 as 2.5
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case gjson.True:
		return "true"
	case gjson.False:
		return "false"
	case gjson.Null:
		return "null"
	}
	if v.IsArray() {
		var items []string
		v.ForEach(func(_, item gjson.Result) bool {
			if item.Type == gjson.Null {
				items = append(items, "")
			} else {
				items = append(items, renderValue(item))
			}
			return true
		})
		return strings.Join(items, ",")
	}
	if v.IsObject() {
		return gjson.Get(v.Raw, "@ugly").Raw
	}
	return ""
}
