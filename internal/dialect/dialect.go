package dialect

import (
	"fmt"
	"strings"
)

// Dialect is a named SQL syntax variant.
type Dialect string

const (
	Oracle     Dialect = "oracle"
	MySQL      Dialect = "mysql"
	PostgreSQL Dialect = "postgresql"
	PySpark    Dialect = "pyspark"
)

// Supported lists all dialects in a stable order.
func Supported() []Dialect {
	return []Dialect{Oracle, MySQL, PostgreSQL, PySpark}
}

// Names returns the supported dialect names for CLI help text.
func Names() []string {
	ds := Supported()
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = string(d)
	}
	return names
}

// FromName resolves a dialect by name, accepting common aliases.
func FromName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "oracle", "ora":
		return Oracle, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgresql", "postgres", "pg":
		return PostgreSQL, nil
	case "pyspark", "spark", "sparksql":
		return PySpark, nil
	default:
		return "", fmt.Errorf("unknown dialect %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
}
