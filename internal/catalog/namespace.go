// Package catalog implements the discovery session that walks a Dremio
// engine's namespace and presents it to a metadata catalog.
//
// Dremio's namespace is <Space>.<Folder>(.<Folder+N>).<Relation>, but the
// engine flattens spaces and folders into one schema catalog. The session
// maps that onto the catalog's two-level model:
//
//   - Space  = Database — only dot-free, non-system schemata are databases
//   - Folder = Schema   — stored engine-side with the database as a dotted
//     prefix, which is stripped before names reach the catalog
//   - Relation = Table / View
//
// Every schema name crossing the boundary to or from the introspection
// layer is re-qualified through the Translator, and nowhere else.
package catalog

import "strings"

// Translator is the bidirectional, lossless mapping between engine
// qualified and catalog-clean schema identifiers. It is parameterized by
// the session's currently selected database and holds no other state.
//
// All prefix logic in the module lives here. Round-trip law: for a
// non-empty catalog name s and selected database d,
// StripDatabasePrefix(AddDatabasePrefix(s)) == s, and stripping is
// idempotent.
type Translator struct {
	database string // selected database; empty until the first switch
}

// SetDatabase selects the database the translator qualifies against.
// Only the database-switch operation calls this.
func (t *Translator) SetDatabase(name string) {
	t.database = name
}

// Database returns the currently selected database, or "" if none.
func (t *Translator) Database() string {
	return t.database
}

// StripDatabasePrefix converts an engine schema name to its catalog form
// by removing the selected database's dotted prefix.
//
// Defensive cases all return the input unchanged: no database selected,
// empty name, a name that does not carry the prefix, and a name equal to
// the database itself. The last case is deliberately treated as
// already-clean — a schema literally named after its database is
// indistinguishable from the database root here.
func (t *Translator) StripDatabasePrefix(schemaName string) string {
	if t.database == "" || schemaName == "" {
		return schemaName
	}
	if schemaName == t.database {
		return schemaName
	}
	if !strings.HasPrefix(schemaName, t.database+".") {
		return schemaName
	}
	return schemaName[len(t.database)+1:]
}

// AddDatabasePrefix converts a catalog schema name to the engine form the
// introspection queries expect. A blank catalog name means the root of the
// database, which the engine addresses by the database name itself.
func (t *Translator) AddDatabasePrefix(schemaName string) string {
	if t.database == "" {
		return schemaName
	}
	if strings.TrimSpace(schemaName) == "" {
		return t.database
	}
	return t.database + "." + schemaName
}
