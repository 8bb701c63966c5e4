package ingredient

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Requirement is a structured (name, quantity, unit) triple.
type Requirement struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     Unit    `json:"unit"`
}

// NormalizeName lowercases s with Turkish casing rules, composes it to NFC
// and collapses runs of whitespace.
func NormalizeName(s string) string {
	s = norm.NFC.String(s)
	s = cases.Lower(language.Turkish).String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Parse turns a free-text ingredient line such as "Un: 2.5 kg",
// "- Domates - 2 adet", "2 domates" or "tuz" into a Requirement. The name
// ends at the first ":" or " - ". A leading bullet and "(...)" remarks are
// dropped. It never fails: a line without a usable number becomes one COUNT
// of the whole line.
func Parse(line string) Requirement {
	text := cleanLine(NormalizeName(line))
	fallback := Requirement{Name: fallbackName(text), Quantity: 1, Unit: Count}

	var nameTokens, rest []string
	if head, tail, ok := cutName(text); ok {
		nameTokens = strings.Fields(head)
		rest = strings.Fields(tail)
	} else {
		rest = strings.Fields(text)
	}

	idx, qty, suffix := -1, 0.0, ""
	for i, tok := range rest {
		if q, sfx, ok := leadingNumber(tok); ok {
			idx, qty, suffix = i, q, sfx
			break
		}
	}
	if idx < 0 || qty <= 0 || math.IsInf(qty, 0) || math.IsNaN(qty) {
		return fallback
	}

	nameTokens = append(nameTokens, rest[:idx]...)
	after := rest[idx+1:]
	if suffix != "" {
		after = append([]string{suffix}, after...)
	}

	unit, used := matchUnit(after)
	switch {
	case used > 0:
		nameTokens = append(nameTokens, after[used:]...)
	case len(nameTokens) == 0 || len(after) == 0:
		// "2 domates" or "domates: 2"
		unit = Count
		nameTokens = append(nameTokens, after...)
	default:
		unit = Unknown
		nameTokens = append(nameTokens, after...)
	}

	name := strings.Join(nameTokens, " ")
	if name == "" {
		return fallback
	}
	return Requirement{Name: name, Quantity: qty, Unit: unit}
}

// cleanLine drops "(...)" remarks and a leading "-", "•" or "*" bullet.
// A line that is nothing but a remark is kept as is.
func cleanLine(text string) string {
	var b strings.Builder
	depth := 0
	for _, r := range text {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	cleaned := strings.Join(strings.Fields(b.String()), " ")
	cleaned = strings.TrimSpace(strings.TrimLeft(cleaned, "-•* "))
	if cleaned == "" {
		return text
	}
	return cleaned
}

// cutName splits at the first ":" or " - ", whichever comes first.
func cutName(text string) (string, string, bool) {
	colon := strings.Index(text, ":")
	dash := strings.Index(text, " - ")
	switch {
	case colon < 0 && dash < 0:
		return "", text, false
	case dash < 0 || (colon >= 0 && colon < dash):
		return text[:colon], text[colon+1:], true
	default:
		return text[:dash], text[dash+3:], true
	}
}

// fallbackName keeps the whole line but without name delimiters, so that
// Format output parses back to the same name.
func fallbackName(text string) string {
	text = strings.ReplaceAll(text, ":", " ")
	text = strings.ReplaceAll(text, " - ", " ")
	return strings.Join(strings.Fields(text), " ")
}

// ParseAll parses every non-blank line.
func ParseAll(lines []string) []Requirement {
	reqs := make([]Requirement, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		reqs = append(reqs, Parse(line))
	}
	return reqs
}

// Format serializes r as "name: quantity unit". The result parses back to r
// when the unit is known and the name holds no ":" or " - ". Unknown units
// have no label and come back as COUNT.
func Format(r Requirement) string {
	q := FormatQuantity(r.Quantity)
	label := r.Unit.Label()
	if label == "" {
		return r.Name + ": " + q
	}
	return r.Name + ": " + q + " " + label
}

func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// leadingNumber reads a decimal ("2.5", "2,5") or a fraction ("1/2") at the
// start of tok and returns the rest of the token.
func leadingNumber(tok string) (float64, string, bool) {
	end := 0
	for end < len(tok) {
		c := tok[end]
		if (c >= '0' && c <= '9') || c == '.' || c == ',' || c == '/' {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, "", false
	}
	num := strings.TrimRight(tok[:end], ".,/")
	suffix := tok[len(num):]
	if num == "" {
		return 0, "", false
	}

	if n, d, ok := strings.Cut(num, "/"); ok {
		nv, err1 := strconv.ParseFloat(strings.ReplaceAll(n, ",", "."), 64)
		dv, err2 := strconv.ParseFloat(strings.ReplaceAll(d, ",", "."), 64)
		if err1 != nil || err2 != nil || dv == 0 {
			return 0, "", false
		}
		return nv / dv, suffix, true
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", "."), 64)
	if err != nil {
		return 0, "", false
	}
	return v, suffix, true
}
