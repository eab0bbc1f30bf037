package dremio

import "strings"

// Dremio flattens its whole Space.Folder(.Folder+N) hierarchy into
// INFORMATION_SCHEMA.SCHEMATA. A top-level namespace (a "space", mapped to
// a catalog database) is a schema name without a dot; engine-internal
// namespaces start with '@' (home spaces) or '$' (system sources) and are
// excluded unconditionally.
const ListDatabasesQuery = `
SELECT SCHEMA_NAME
FROM INFORMATION_SCHEMA.SCHEMATA
WHERE SCHEMA_NAME NOT LIKE '%.%'
  AND NOT STARTS_WITH(SCHEMA_NAME, '@')
  AND NOT STARTS_WITH(SCHEMA_NAME, '$')`

// ListSchemasQuery returns the query listing every namespace dotted under
// the given database, i.e. the folders of one space.
func ListSchemasQuery(database string) string {
	return `
SELECT SCHEMA_NAME
FROM INFORMATION_SCHEMA.SCHEMATA
WHERE SCHEMA_NAME LIKE ` + QuoteLiteral(database+".%")
}

// QuoteLiteral renders s as a single-quoted SQL string literal. The Flight
// transport has no bind-parameter channel, so every literal that reaches
// the engine goes through here.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// QuoteIdent wraps a SQL identifier in double-quotes (ANSI standard).
// This safely handles reserved words and the dotted path segments Dremio
// uses for folder names.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuotePath quotes each dot-separated segment of a Dremio path, producing
// an identifier like "space"."folder"."table".
func QuotePath(segments ...string) string {
	quoted := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		for _, part := range strings.Split(seg, ".") {
			quoted = append(quoted, QuoteIdent(part))
		}
	}
	return strings.Join(quoted, ".")
}
