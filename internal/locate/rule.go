package locate

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns s in Unicode NFC.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// Rule decides whether an NFC-normalized file or sheet name matches.
type Rule interface {
	Match(name string) bool
}

// RuleFunc adapts a plain function to Rule.
type RuleFunc func(name string) bool

func (f RuleFunc) Match(name string) bool { return f(name) }

// Exact matches a name equal to target after normalization.
func Exact(target string) Rule {
	target = Normalize(target)
	return RuleFunc(func(name string) bool { return name == target })
}

// Contains matches a name holding sub anywhere.
func Contains(sub string) Rule {
	sub = Normalize(sub)
	return RuleFunc(func(name string) bool { return strings.Contains(name, sub) })
}

// Ext matches a name whose extension equals ext, case-insensitively.
func Ext(ext string) Rule {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return RuleFunc(func(name string) bool { return strings.EqualFold(filepath.Ext(name), ext) })
}

// All matches when every rule matches, evaluated in order.
func All(rules ...Rule) Rule {
	return RuleFunc(func(name string) bool {
		for _, r := range rules {
			if !r.Match(name) {
				return false
			}
		}
		return true
	})
}

// Not inverts rule.
func Not(rule Rule) Rule {
	return RuleFunc(func(name string) bool { return !rule.Match(name) })
}

// Keywords is the substring rule: every keyword present and the extension matching.
func Keywords(ext string, keywords ...string) Rule {
	rules := make([]Rule, 0, len(keywords)+1)
	for _, k := range keywords {
		rules = append(rules, Contains(k))
	}
	rules = append(rules, Ext(ext))
	return All(rules...)
}
