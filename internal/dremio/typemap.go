package dremio

import "strings"

// TypeMap translates engine-reported type names into the canonical names
// the downstream catalog understands. It is plain local state handed to
// the inspector at construction — never a process-wide registry.
type TypeMap map[string]string

// DefaultTypeMap returns the mapping for Dremio's Flight dialect.
//
// DOUBLE is mapped explicitly: collapsing it to FLOAT would misrepresent
// the column's precision to catalog consumers.
func DefaultTypeMap() TypeMap {
	return TypeMap{
		"double":            "DOUBLE",
		"DOUBLE":            "DOUBLE",
		"CHARACTER VARYING": "VARCHAR",
		"BINARY VARYING":    "VARBINARY",
	}
}

// Resolve returns the canonical name for an engine type. Unmapped types
// pass through upper-cased, which is already canonical for the rest of
// Dremio's INFORMATION_SCHEMA output.
func (m TypeMap) Resolve(engineType string) string {
	if mapped, ok := m[engineType]; ok {
		return mapped
	}
	if mapped, ok := m[strings.ToUpper(engineType)]; ok {
		return mapped
	}
	return strings.ToUpper(engineType)
}

// WithOverrides returns a copy of the map with the given overrides applied.
// The receiver is never mutated, so a shared default map stays shared.
func (m TypeMap) WithOverrides(overrides TypeMap) TypeMap {
	merged := make(TypeMap, len(m)+len(overrides))
	for k, v := range m {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
