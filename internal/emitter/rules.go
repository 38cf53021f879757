package emitter

import "regexp"

// rule is a single substitution: a compiled pattern plus either a template
// replacement or a submatch-driven rewrite function for the shapes a template
// cannot express (DECODE argument walking, date-format token remapping).
type rule struct {
	re      *regexp.Regexp
	replace string
	fn      func(m []string) string
}

// RuleSet is an ordered list of substitutions for one (source, target)
// dialect pair. Order matters: earlier rules may produce text that later
// rules must not touch, so Apply runs them strictly in sequence.
type RuleSet []rule

// Apply runs every rule over the statement text in declaration order.
func (rs RuleSet) Apply(sql string) string {
	for _, r := range rs {
		if r.fn != nil {
			re := r.re
			sql = re.ReplaceAllStringFunc(sql, func(s string) string {
				return r.fn(re.FindStringSubmatch(s))
			})
			continue
		}
		sql = r.re.ReplaceAllString(sql, r.replace)
	}
	return sql
}
