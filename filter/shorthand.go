package filter

import (
	"fmt"
	"regexp"
	"strings"
)

type shorthandRule struct {
	pattern *regexp.Regexp
	expand  func(m []string) string
}

// value matches a double-quoted string or a single bare word.
const value = `:(?:"([^"]+)"|([^\s"()]+))`

// shorthandRules rewrite key:"value" and key:value terms into expr syntax.
// The optional ! after the key negates the term.
var shorthandRules = []shorthandRule{
	{
		regexp.MustCompile(`\btag(!?)` + value),
		func(m []string) string { return negate(m[1], fmt.Sprintf(`hasTag(%q)`, pick(m[2:]))) },
	},
	{
		regexp.MustCompile(`\bproject(!?)` + value),
		func(m []string) string { return negate(m[1], fmt.Sprintf(`lower(Project) == lower(%q)`, pick(m[2:]))) },
	},
	{
		regexp.MustCompile(`\bclient(!?)` + value),
		func(m []string) string { return negate(m[1], fmt.Sprintf(`lower(Client) == lower(%q)`, pick(m[2:]))) },
	},
	{
		regexp.MustCompile(`\bdescription(!?)` + value),
		func(m []string) string { return negate(m[1], fmt.Sprintf(`contains(Description, %q)`, pick(m[2:]))) },
	},
	{
		regexp.MustCompile(`\b(billable|running):(true|false)\b`),
		func(m []string) string { return fmt.Sprintf(`%s == %s`, strings.ToUpper(m[1][:1])+m[1][1:], m[2]) },
	},
	{
		regexp.MustCompile(`\blonger` + value),
		func(m []string) string { return fmt.Sprintf(`longerThan(%q)`, pick(m[1:])) },
	},
	{
		regexp.MustCompile(`\bshorter` + value),
		func(m []string) string { return fmt.Sprintf(`shorterThan(%q)`, pick(m[1:])) },
	},
	{
		regexp.MustCompile(`\bsince` + value),
		func(m []string) string { return fmt.Sprintf(`Start >= parseDate(%q)`, pick(m[1:])) },
	},
	{
		regexp.MustCompile(`\bbefore` + value),
		func(m []string) string { return fmt.Sprintf(`Start < parseDate(%q)`, pick(m[1:])) },
	},
}

// ExpandShorthand converts shorthand filter syntax to expr syntax
func ExpandShorthand(filter string) string {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return ""
	}

	filter = strings.ReplaceAll(filter, " AND ", " and ")
	filter = strings.ReplaceAll(filter, " OR ", " or ")
	filter = strings.ReplaceAll(filter, "NOT ", "not ")

	for _, rule := range shorthandRules {
		filter = rule.pattern.ReplaceAllStringFunc(filter, func(match string) string {
			return rule.expand(rule.pattern.FindStringSubmatch(match))
		})
	}
	return filter
}

// IsShorthand checks if a filter uses shorthand terms
func IsShorthand(filter string) bool {
	for _, rule := range shorthandRules {
		if rule.pattern.MatchString(filter) {
			return true
		}
	}
	return false
}

// pick returns the quoted capture when present, otherwise the bare one.
func pick(groups []string) string {
	if groups[0] != "" {
		return groups[0]
	}
	return groups[1]
}

func negate(bang, term string) string {
	if bang == "!" {
		return "not (" + term + ")"
	}
	return term
}
