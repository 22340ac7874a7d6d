// Package render fills {%TOKEN%} placeholders in page templates.
//
// A record field named productName fills {%PRODUCTNAME%}. Placeholders with
// no matching field are left as they are, and values are inserted without
// escaping.
package render

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"farmstand/catalog"
)

// CardsToken is the overview placeholder that receives the rendered cards.
const CardsToken = "PRODUCT_CARDS"

// Placeholder returns the placeholder text for a field or token name.
func Placeholder(name string) string {
	// A Caser holds state and must not be shared across goroutines.
	return "{%" + cases.Upper(language.Und).String(name) + "%}"
}

// FlagRule fills Token with Value when the boolean Field is false or absent.
type FlagRule struct {
	Field string
	Token string
	Value string
}

// Renderer fills templates from records. The zero value is ready to use.
type Renderer struct {
	flags []FlagRule
}

// New returns a Renderer with the given flag rules.
func New(flags ...FlagRule) *Renderer {
	return &Renderer{flags: append([]FlagRule(nil), flags...)}
}

// Fill replaces every field placeholder in tmpl with the record's value.
// Replacement is a single pass, so inserted values are never re-scanned.
func (r *Renderer) Fill(tmpl string, rec catalog.Record) string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*(len(keys)+len(r.flags)))
	for _, k := range keys {
		pairs = append(pairs, Placeholder(k), Text(rec[k]))
	}
	for _, f := range r.flags {
		if v, _ := rec[f.Field].(bool); !v {
			pairs = append(pairs, Placeholder(f.Token), f.Value)
		}
	}
	if len(pairs) == 0 {
		return tmpl
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// Overview renders every record through cardTmpl in order and places the
// joined cards at the first {%PRODUCT_CARDS%} in overviewTmpl.
func (r *Renderer) Overview(overviewTmpl, cardTmpl string, records []catalog.Record) string {
	var cards strings.Builder
	for _, rec := range records {
		cards.WriteString(r.Fill(cardTmpl, rec))
	}
	return strings.Replace(overviewTmpl, Placeholder(CardsToken), cards.String(), 1)
}

// Fill renders tmpl with rec using a Renderer without flag rules.
func Fill(tmpl string, rec catalog.Record) string {
	var r Renderer
	return r.Fill(tmpl, rec)
}

// Text converts a decoded JSON value to the text inserted into a template.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if math.Abs(t) >= 1e21 {
			return strconv.FormatFloat(t, 'g', -1, 64)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
