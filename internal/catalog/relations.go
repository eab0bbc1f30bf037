package catalog

import (
	"context"

	"github.com/koustreak/dremcat/internal/introspect"
)

// Relation discovery delegation.
//
// Every operation here takes a catalog-clean schema name, re-qualifies it
// through the translator, and hands it to the introspection layer
// unchanged otherwise. Dremio resolves relations only by their full
// "<database>.<folder…>" path, so skipping the translation produces
// "table not found" or duplicate-relation errors downstream.

// TableNamesAndTypes lists the tables of a catalog schema.
func (s *Session) TableNamesAndTypes(ctx context.Context, schemaName string) ([]introspect.Relation, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	return s.inspector.TableNamesAndTypes(ctx, s.translator.AddDatabasePrefix(schemaName))
}

// ViewNamesAndTypes lists the views of a catalog schema.
func (s *Session) ViewNamesAndTypes(ctx context.Context, schemaName string) ([]introspect.Relation, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	return s.inspector.ViewNamesAndTypes(ctx, s.translator.AddDatabasePrefix(schemaName))
}

// Columns fetches column metadata for one relation of a catalog schema.
func (s *Session) Columns(ctx context.Context, schemaName, tableName string) ([]introspect.ColumnInfo, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	return s.inspector.Columns(ctx, s.translator.AddDatabasePrefix(schemaName), tableName)
}

// Constraints fetches constraint metadata for one relation of a catalog
// schema. Empty on this engine.
func (s *Session) Constraints(ctx context.Context, schemaName, tableName string) ([]introspect.Constraint, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	return s.inspector.Constraints(ctx, s.translator.AddDatabasePrefix(schemaName), tableName)
}

// SchemaDefinition fetches the SQL definition of a view in a catalog
// schema. Table definitions are unsupported on this engine.
func (s *Session) SchemaDefinition(ctx context.Context, schemaName, tableName string) (string, error) {
	if err := s.ensure(ctx); err != nil {
		return "", err
	}
	return s.inspector.SchemaDefinition(ctx, s.translator.AddDatabasePrefix(schemaName), tableName)
}

// TableDescription returns the comment of a relation. The engine's
// introspection surface has no comment support, so the result is always
// empty — absence of data, not an error.
func (s *Session) TableDescription(ctx context.Context, schemaName, tableName string) (string, error) {
	if err := s.ensure(ctx); err != nil {
		return "", err
	}
	if !s.inspector.HasTableComments() {
		return "", nil
	}
	return s.inspector.TableComment(ctx, s.translator.AddDatabasePrefix(schemaName), tableName)
}
