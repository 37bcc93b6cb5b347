// Package patterns compiles the human-authored document globs used by the
// copy-through and exclude rule sets into anchored filename matchers.
package patterns

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/ezconfig/pkg/document"
)

// Wildcard is the only glob metacharacter: it matches any run of characters.
const Wildcard = "*"

// Rule matches document filenames (name plus extension).
type Rule struct {
	// Raw is the pattern as authored.
	Raw string
	re  *regexp.Regexp
}

// Match reports whether filename is selected by the rule. Only the base name
// of filename is considered, so relative paths inside collections match too.
func (r Rule) Match(filename string) bool {
	if i := strings.LastIndex(filename, "/"); i >= 0 {
		filename = filename[i+1:]
	}
	return r.re.MatchString(filename)
}

// String returns the compiled expression.
func (r Rule) String() string {
	return r.re.String()
}

// Rules is an ordered rule set.
type Rules []Rule

// Match reports whether any rule selects filename.
func (rs Rules) Match(filename string) bool {
	return rs.First(filename) >= 0
}

// First returns the index of the first rule selecting filename, or -1.
func (rs Rules) First(filename string) int {
	for i, r := range rs {
		if r.Match(filename) {
			return i
		}
	}
	return -1
}

// Empty reports whether the set has no rules.
func (rs Rules) Empty() bool {
	return len(rs) == 0
}

// Compile turns raw globs into rules, preserving order. A pattern ending in
// "export.yml" carries an extension typed by mistake, which is dropped before
// compiling. Any other trailing ".yml" is part of the name.
func Compile(raw []string) Rules {
	rules := make(Rules, 0, len(raw))
	for _, p := range raw {
		rules = append(rules, compileOne(p))
	}
	return rules
}

// CompileModuleExcludes builds one rule per module matching every document the
// module owns: "<module>.<anything>.<ext>".
func CompileModuleExcludes(modules []string) Rules {
	rules := make(Rules, 0, len(modules))
	for _, m := range modules {
		expr := "^" + regexp.QuoteMeta(m) + `\..*` + regexp.QuoteMeta("."+document.Extension) + "$"
		rules = append(rules, Rule{Raw: m + "." + Wildcard, re: regexp.MustCompile(expr)})
	}
	return rules
}

func compileOne(raw string) Rule {
	p := raw
	if strings.HasSuffix(raw, "export."+document.Extension) {
		p = strings.TrimSuffix(raw, "."+document.Extension)
	}
	quoted := regexp.QuoteMeta(p)
	expr := "^" + strings.ReplaceAll(quoted, regexp.QuoteMeta(Wildcard), ".*") +
		regexp.QuoteMeta("."+document.Extension) + "$"
	return Rule{Raw: raw, re: regexp.MustCompile(expr)}
}
