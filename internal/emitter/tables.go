package emitter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/adrenaline09/SqlTranslator/internal/dialect"
)

// Date-format token tables, one per conversion direction. Order matters for
// the scanner: longer tokens must precede their prefixes (HH24 before HH).
var (
	mysqlToPostgresFormat = [][2]string{
		{"%Y", "YYYY"}, {"%m", "MM"}, {"%d", "DD"},
		{"%H", "HH24"}, {"%i", "MI"}, {"%s", "SS"},
	}
	postgresToMysqlFormat = [][2]string{
		{"YYYY", "%Y"}, {"MM", "%m"}, {"DD", "%d"},
		{"HH24", "%H"}, {"MI", "%i"}, {"SS", "%s"},
	}
	oracleToSparkFormat = [][2]string{
		{"YYYY", "yyyy"}, {"MM", "MM"}, {"DD", "dd"},
		{"HH24", "HH"}, {"HH", "hh"}, {"MI", "mm"}, {"SS", "ss"},
	}
	sparkToOracleFormat = [][2]string{
		{"yyyy", "YYYY"}, {"MM", "MM"}, {"dd", "DD"},
		{"HH", "HH24"}, {"hh", "HH"}, {"mm", "MI"}, {"ss", "SS"},
	}
	mysqlToSparkFormat = [][2]string{
		{"%Y", "yyyy"}, {"%m", "MM"}, {"%d", "dd"},
		{"%H", "HH"}, {"%i", "mm"}, {"%s", "ss"},
	}
	sparkToMysqlFormat = [][2]string{
		{"yyyy", "%Y"}, {"MM", "%m"}, {"dd", "%d"},
		{"HH", "%H"}, {"mm", "%i"}, {"ss", "%s"},
	}
)

// remapFormat rewrites date-format tokens in a single left-to-right pass so
// the output of one token can never be re-consumed by a later one.
func remapFormat(format string, tokens [][2]string) string {
	var b strings.Builder
	for i := 0; i < len(format); {
		matched := false
		for _, t := range tokens {
			if strings.HasPrefix(format[i:], t[0]) {
				b.WriteString(t[1])
				i += len(t[0])
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(format[i])
			i++
		}
	}
	return b.String()
}

// Oracle function names and their Spark SQL equivalents. Applied as
// whole-word, call-site substitutions (name followed by an open paren).
// NVL2, DECODE, TO_CHAR and TRUNC are excluded: they need argument rewriting
// and get dedicated rules ahead of this list.
var oracleToSparkNames = [][2]string{
	{"TO_DATE", "to_date"},
	{"TO_TIMESTAMP", "to_timestamp"},
	{"EXTRACT", "extract"},
	{"MONTHS_BETWEEN", "months_between"},
	{"NEXT_DAY", "next_day"},
	{"LAST_DAY", "last_day"},
	{"ADD_MONTHS", "add_months"},
	{"NVL", "coalesce"},
	{"INSTR", "instr"},
	{"LENGTH", "length"},
	{"LOWER", "lower"},
	{"UPPER", "upper"},
	{"LPAD", "lpad"},
	{"RPAD", "rpad"},
	{"LTRIM", "ltrim"},
	{"RTRIM", "rtrim"},
	{"REPLACE", "regexp_replace"},
	{"SUBSTR", "substring"},
	{"TRIM", "trim"},
	{"INITCAP", "initcap"},
	{"ROUND", "round"},
	{"MOD", "pmod"},
	{"ABS", "abs"},
	{"SIGN", "signum"},
	{"FLOOR", "floor"},
	{"CEIL", "ceil"},
	{"POWER", "pow"},
	{"SQRT", "sqrt"},
	{"EXP", "exp"},
	{"LN", "log"},
	{"AVG", "avg"},
	{"COUNT", "count"},
	{"MAX", "max"},
	{"MIN", "min"},
	{"SUM", "sum"},
	{"STDDEV", "stddev"},
	{"VARIANCE", "variance"},
	{"RANK", "rank"},
	{"DENSE_RANK", "dense_rank"},
	{"ROW_NUMBER", "row_number"},
	{"LEAD", "lead"},
	{"LAG", "lag"},
	{"FIRST_VALUE", "first"},
	{"LAST_VALUE", "last"},
	{"PERCENTILE_CONT", "percentile"},
}

// nvl2ToCase rewrites NVL2(expr, a, b) as a CASE expression.
func nvl2ToCase(m []string) string {
	return fmt.Sprintf("CASE WHEN %s IS NOT NULL THEN %s ELSE %s END",
		strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), strings.TrimSpace(m[3]))
}

// decodeToCase rewrites DECODE(expr, v1, r1, ..., [default]) as a CASE
// expression. Arguments are split on bare commas; DECODE calls with nested
// function arguments are beyond this rewriter and pass through unchanged.
func decodeToCase(m []string) string {
	parts := strings.Split(m[1], ",")
	if len(parts) < 3 {
		return m[0]
	}
	expr := strings.TrimSpace(parts[0])
	var b strings.Builder
	b.WriteString("CASE")
	i := 1
	for ; i < len(parts)-1; i += 2 {
		fmt.Fprintf(&b, " WHEN %s = %s THEN %s",
			expr, strings.TrimSpace(parts[i]), strings.TrimSpace(parts[i+1]))
	}
	if i < len(parts) {
		fmt.Fprintf(&b, " ELSE %s", strings.TrimSpace(parts[i]))
	}
	b.WriteString(" END")
	return b.String()
}

// sparkTrunc picks date_trunc or truncate for Oracle TRUNC depending on
// whether the second argument is a date unit.
func sparkTrunc(m []string) string {
	args := m[1]
	if tm := truncDateArgs.FindStringSubmatch(args); tm != nil {
		return fmt.Sprintf("date_trunc('%s', %s)",
			strings.ToLower(tm[2]), strings.TrimSpace(tm[1]))
	}
	return fmt.Sprintf("truncate(%s)", args)
}

var truncDateArgs = regexp.MustCompile(`(?i)^([^,]+),\s*['"](YEAR|MONTH|DAY|HOUR|MINUTE|SECOND)['"]$`)

// dateFormatCall returns a rewrite for TO_CHAR / DATE_FORMAT / date_format
// call sites: remap the format tokens and re-emit under the target's
// formatting function.
func dateFormatCall(outFunc string, tokens [][2]string) func(m []string) string {
	return func(m []string) string {
		return fmt.Sprintf("%s(%s, '%s')",
			outFunc, strings.TrimSpace(m[1]), remapFormat(m[2], tokens))
	}
}

// concatToOperator rewrites CONCAT(a, b, ...) into the || operator chain.
func concatToOperator(m []string) string {
	parts := strings.Split(m[1], ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, " || ")
}

var (
	reDateFormatCall = regexp.MustCompile(`(?i)\bDATE_FORMAT\s*\(\s*([^,]+)\s*,\s*['"]([^'"]*)['"]\s*\)`)
	reToCharCall     = regexp.MustCompile(`(?i)\bTO_CHAR\s*\(\s*([^,]+)\s*,\s*['"]([^'"]*)['"]\s*\)`)
	reConcatCall     = regexp.MustCompile(`(?i)\bCONCAT\s*\(([^)]+)\)`)
	reConcatOperator = regexp.MustCompile(`([\w.'"]+)\s*\|\|\s*([\w.'"]+)`)
)

// rulesFor returns the substitution table for a dialect pair. The table is
// rebuilt per call so emitters can never share mutable state; rules compile
// once at package init. An unlisted pair gets an empty set, which leaves
// function syntax untouched and lets the emitter handle structure alone.
func rulesFor(source, target dialect.Dialect) RuleSet {
	switch {
	case source == dialect.MySQL && target == dialect.PostgreSQL:
		return RuleSet{
			{re: reDateFormatCall, fn: dateFormatCall("TO_CHAR", mysqlToPostgresFormat)},
			{re: regexp.MustCompile(`(?i)\bNOW\(\s*\)`), replace: "CURRENT_TIMESTAMP"},
			{re: regexp.MustCompile(`(?i)\bCURDATE\(\s*\)`), replace: "CURRENT_DATE"},
			{re: regexp.MustCompile(`(?i)\bINTERVAL\s+(\d+)\s+DAY\b`), replace: "INTERVAL '$1 DAY'"},
			{re: reConcatCall, fn: concatToOperator},
			{re: regexp.MustCompile(`(?i)\bIFNULL\s*\(\s*([^,]+)\s*,\s*([^)]+)\s*\)`), replace: "COALESCE($1, $2)"},
		}

	case source == dialect.PostgreSQL && target == dialect.MySQL:
		return RuleSet{
			{re: reToCharCall, fn: dateFormatCall("DATE_FORMAT", postgresToMysqlFormat)},
			{re: regexp.MustCompile(`(?i)\bCURRENT_TIMESTAMP\b`), replace: "NOW()"},
			{re: regexp.MustCompile(`(?i)\bCURRENT_DATE\b`), replace: "CURDATE()"},
			{re: regexp.MustCompile(`(?i)\bINTERVAL\s+'((?:\d+\s+)?[^']+)'`), replace: "INTERVAL $1"},
			{re: reConcatOperator, replace: "CONCAT($1, $2)"},
			{re: regexp.MustCompile(`(?i)\bCOALESCE\s*\(\s*([^,]+)\s*,\s*([^)]+)\s*\)`), replace: "IFNULL($1, $2)"},
		}

	case source == dialect.Oracle && target == dialect.PostgreSQL:
		return RuleSet{
			{re: regexp.MustCompile(`(?i)\bSYSDATE\b`), replace: "CURRENT_DATE"},
			{re: regexp.MustCompile(`(?i)\bSYSTIMESTAMP\b`), replace: "CURRENT_TIMESTAMP"},
			{re: regexp.MustCompile(`(?i)\bADD_MONTHS\s*\(\s*([^,]+)\s*,\s*(-?\d+)\s*\)`), replace: "($1 + INTERVAL '$2 MONTH')"},
			{re: regexp.MustCompile(`(?i)\bNVL\s*\(\s*([^,]+)\s*,\s*([^)]+)\s*\)`), replace: "COALESCE($1, $2)"},
			{re: regexp.MustCompile(`(?i)\bDECODE\s*\(([^)]+)\)`), fn: decodeToCase},
			{re: regexp.MustCompile(`(?i)\bSUBSTR\s*\(`), replace: "SUBSTRING("},
		}

	case source == dialect.Oracle && target == dialect.MySQL:
		return RuleSet{
			{re: regexp.MustCompile(`(?i)\bSYSDATE\b`), replace: "NOW()"},
			{re: regexp.MustCompile(`(?i)\bSYSTIMESTAMP\b`), replace: "NOW(3)"},
			{re: regexp.MustCompile(`(?i)\bTO_DATE\s*\(\s*([^,]+)\s*,\s*([^)]+)\s*\)`), replace: "STR_TO_DATE($1, $2)"},
			{re: regexp.MustCompile(`(?i)\bNVL\s*\(\s*([^,]+)\s*,\s*([^)]+)\s*\)`), replace: "IFNULL($1, $2)"},
			{re: regexp.MustCompile(`(?i)\bSUBSTR\s*\(`), replace: "SUBSTRING("},
			{re: reConcatOperator, replace: "CONCAT($1, $2)"},
		}

	case source == dialect.Oracle && target == dialect.PySpark:
		rules := RuleSet{
			{re: regexp.MustCompile(`(?i)\bNVL2\s*\(\s*([^,]+)\s*,\s*([^,]+)\s*,\s*([^)]+)\s*\)`), fn: nvl2ToCase},
			{re: regexp.MustCompile(`(?i)\bDECODE\s*\(([^)]+)\)`), fn: decodeToCase},
			{re: reToCharCall, fn: dateFormatCall("date_format", oracleToSparkFormat)},
			{re: regexp.MustCompile(`(?i)\bTRUNC\s*\(\s*([^)]+?)\s*\)`), fn: sparkTrunc},
			{re: regexp.MustCompile(`(?i)\bCURRENT_DATE\b(\(\))?`), replace: "current_date()"},
			{re: regexp.MustCompile(`(?i)\bCURRENT_TIMESTAMP\b(\(\))?`), replace: "current_timestamp()"},
			{re: regexp.MustCompile(`(?i)\bSYSDATE\b`), replace: "current_date()"},
			{re: regexp.MustCompile(`(?i)\bSYSTIMESTAMP\b`), replace: "current_timestamp()"},
		}
		for _, n := range oracleToSparkNames {
			rules = append(rules, rule{
				re:      regexp.MustCompile(`(?i)\b` + n[0] + `\s*\(`),
				replace: n[1] + "(",
			})
		}
		rules = append(rules,
			rule{re: reConcatOperator, replace: "concat($1, $2)"},
		)
		return rules

	case source == dialect.MySQL && target == dialect.Oracle:
		return RuleSet{
			{re: regexp.MustCompile(`(?i)\bNOW\(\s*\)`), replace: "SYSDATE"},
			{re: regexp.MustCompile(`(?i)\bCURDATE\(\s*\)`), replace: "SYSDATE"},
			{re: regexp.MustCompile(`(?i)\bCURRENT_TIMESTAMP\(\s*\)`), replace: "SYSTIMESTAMP"},
			{re: regexp.MustCompile(`(?i)\bSTR_TO_DATE\s*\(\s*([^,]+)\s*,\s*([^)]+)\s*\)`), replace: "TO_DATE($1, $2)"},
			{re: reConcatCall, fn: concatToOperator},
			{re: regexp.MustCompile(`(?i)\bSUBSTRING\s*\(`), replace: "SUBSTR("},
			{re: regexp.MustCompile(`(?i)\bIFNULL\s*\(\s*([^,]+)\s*,\s*([^)]+)\s*\)`), replace: "NVL($1, $2)"},
		}

	case source == dialect.PostgreSQL && target == dialect.Oracle:
		return RuleSet{
			{re: regexp.MustCompile(`(?i)\bCURRENT_DATE\b`), replace: "SYSDATE"},
			{re: regexp.MustCompile(`(?i)\bCURRENT_TIMESTAMP\b`), replace: "SYSTIMESTAMP"},
			{re: regexp.MustCompile(`(?i)\bCOALESCE\s*\(\s*([^,]+)\s*,\s*([^)]+)\s*\)`), replace: "NVL($1, $2)"},
			{re: regexp.MustCompile(`(?i)\bSUBSTRING\s*\(`), replace: "SUBSTR("},
		}

	case source == dialect.MySQL && target == dialect.PySpark:
		return RuleSet{
			{re: reDateFormatCall, fn: dateFormatCall("date_format", mysqlToSparkFormat)},
			{re: regexp.MustCompile(`(?i)\bNOW\(\s*\)`), replace: "current_timestamp()"},
			{re: regexp.MustCompile(`(?i)\bCURDATE\(\s*\)`), replace: "current_date()"},
			{re: regexp.MustCompile(`(?i)\bIFNULL\s*\(\s*([^,]+)\s*,\s*([^)]+)\s*\)`), replace: "coalesce($1, $2)"},
			{re: regexp.MustCompile(`(?i)\bSUBSTRING\s*\(`), replace: "substring("},
		}

	case source == dialect.PostgreSQL && target == dialect.PySpark:
		return RuleSet{
			{re: reToCharCall, fn: dateFormatCall("date_format", oracleToSparkFormat)},
			{re: regexp.MustCompile(`(?i)\bCURRENT_TIMESTAMP\b`), replace: "current_timestamp()"},
			{re: regexp.MustCompile(`(?i)\bCURRENT_DATE\b`), replace: "current_date()"},
			{re: regexp.MustCompile(`(?i)\bCOALESCE\s*\(`), replace: "coalesce("},
			{re: reConcatOperator, replace: "concat($1, $2)"},
		}

	case source == dialect.PySpark && target == dialect.MySQL:
		return RuleSet{
			{re: regexp.MustCompile(`(?i)\bdate_format\s*\(\s*([^,]+)\s*,\s*['"]([^'"]*)['"]\s*\)`), fn: dateFormatCall("DATE_FORMAT", sparkToMysqlFormat)},
			{re: regexp.MustCompile(`(?i)\bcurrent_timestamp\(\s*\)`), replace: "NOW()"},
			{re: regexp.MustCompile(`(?i)\bcurrent_date\(\s*\)`), replace: "CURDATE()"},
			{re: regexp.MustCompile(`(?i)\bcoalesce\s*\(\s*([^,]+)\s*,\s*([^)]+)\s*\)`), replace: "IFNULL($1, $2)"},
		}

	case source == dialect.PySpark && target == dialect.PostgreSQL:
		return RuleSet{
			{re: regexp.MustCompile(`(?i)\bdate_format\s*\(\s*([^,]+)\s*,\s*['"]([^'"]*)['"]\s*\)`), fn: dateFormatCall("TO_CHAR", sparkToOracleFormat)},
			{re: regexp.MustCompile(`(?i)\bcurrent_timestamp\(\s*\)`), replace: "CURRENT_TIMESTAMP"},
			{re: regexp.MustCompile(`(?i)\bcurrent_date\(\s*\)`), replace: "CURRENT_DATE"},
			{re: regexp.MustCompile(`(?i)\bconcat\s*\(([^)]+)\)`), fn: concatToOperator},
		}

	case source == dialect.PySpark && target == dialect.Oracle:
		return RuleSet{
			{re: regexp.MustCompile(`(?i)\bdate_format\s*\(\s*([^,]+)\s*,\s*['"]([^'"]*)['"]\s*\)`), fn: dateFormatCall("TO_CHAR", sparkToOracleFormat)},
			{re: regexp.MustCompile(`(?i)\bcurrent_date\(\s*\)`), replace: "SYSDATE"},
			{re: regexp.MustCompile(`(?i)\bcurrent_timestamp\(\s*\)`), replace: "SYSTIMESTAMP"},
			{re: regexp.MustCompile(`(?i)\bcoalesce\s*\(\s*([^,]+)\s*,\s*([^)]+)\s*\)`), replace: "NVL($1, $2)"},
			{re: regexp.MustCompile(`(?i)\bsubstring\s*\(`), replace: "SUBSTR("},
		}
	}
	return nil
}
