package phonenumber

import (
	"regexp"
	"strings"
)

// repairRule is one pattern-level rewrite of a known malformed legacy
// pattern shape.
type repairRule struct {
	re          *regexp.Regexp
	replacement string
}

// repairRules is the fixed, ordered set of known legacy corruptions.
// These were reverse-engineered from observed stored data, not a general
// regex-repair algorithm; new corruption shapes need a new rule here, not
// a loosening of the existing ones. Each rule is idempotent on its own
// output, which makes RepairPattern as a whole idempotent.
var repairRules = []repairRule{
	// "(+84" with an unescaped plus inside a group.
	{regexp.MustCompile(`\(\+`), `(\+`},

	// Bare "d{" length quantifier missing its backslash.
	{regexp.MustCompile(`(^|[^\\])d\{`), `${1}\d{`},

	// Accidental double escaping of "+" or "d".
	{regexp.MustCompile(`\\\\([+d])`), `\$1`},
}

// RepairPattern applies the known legacy-corruption rewrites to a phone
// validation pattern. It returns the repaired pattern and whether any
// rule changed the input. Best effort only: the result is still subject
// to the normal compile check.
func RepairPattern(pattern string) (string, bool) {
	repaired := strings.TrimSpace(pattern)
	for _, rule := range repairRules {
		repaired = rule.re.ReplaceAllString(repaired, rule.replacement)
	}
	return repaired, repaired != strings.TrimSpace(pattern)
}

// numberJunkReplacer strips the separators people type into phone
// numbers: spaces, dashes, parentheses, and dots.
var numberJunkReplacer = strings.NewReplacer(
	" ", "",
	"-", "",
	"(", "",
	")", "",
	".", "",
)

// NormalizeNumber strips separator characters from a phone number
// candidate before matching. The leading plus is preserved.
func NormalizeNumber(raw string) string {
	return numberJunkReplacer.Replace(strings.TrimSpace(raw))
}
