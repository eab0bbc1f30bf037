package catalog

import (
	"context"
	"strings"

	"github.com/koustreak/dremcat/internal/dremio"
	"github.com/koustreak/dremcat/internal/errs"
)

// DatabaseNames enumerates the databases this run descends into, in engine
// order, switching the session's context to each one as it is yielded.
//
// A configured database short-circuits enumeration entirely. Otherwise the
// engine is asked for top-level namespace candidates; system namespaces
// are excluded unconditionally, the configured filter is applied (against
// the FQN or the bare name per configuration), and a candidate whose
// context switch fails is reported as a warning and skipped — one
// unreachable database must not block the others.
//
// The result is a single forward pass; re-invoke to enumerate again.
func (s *Session) DatabaseNames(ctx context.Context) ([]string, error) {
	if configured := s.ConfiguredDatabase(); configured != "" {
		if err := s.SwitchDatabase(ctx, configured); err != nil {
			return nil, err
		}
		return []string{configured}, nil
	}

	candidates, err := s.rawDatabaseNames(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, candidate := range candidates {
		if isSystemNamespace(candidate) {
			continue
		}

		fqn := s.fqn(candidate)
		target := candidate
		if s.cfg.UseFQNFiltering {
			target = fqn
		}
		if s.cfg.Filter.Excluded(target) {
			s.reportFiltered(fqn, "Database Filtered Out")
			continue
		}

		if err := s.SwitchDatabase(ctx, candidate); err != nil {
			s.log.ErrorWith("error trying to process database", err, map[string]interface{}{
				"database": candidate,
			})
			s.reportWarning(fqn, err)
			continue
		}

		s.reportScanned(fqn)
		names = append(names, candidate)
	}
	return names, nil
}

// rawDatabaseNames queries the engine's namespace catalog for top-level
// namespace candidates.
func (s *Session) rawDatabaseNames(ctx context.Context) ([]string, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	return s.fetchStrings(ctx, dremio.ListDatabasesQuery)
}

// isSystemNamespace reports whether a schema name can never be a database:
// dotted names are folders, '@' prefixes are home spaces, '$' prefixes are
// engine-internal sources. These are excluded independent of any
// user-supplied filter.
func isSystemNamespace(name string) bool {
	return name == "" ||
		strings.Contains(name, ".") ||
		strings.HasPrefix(name, "@") ||
		strings.HasPrefix(name, "$")
}

// SchemaNames enumerates the catalog-clean schema names under the selected
// database. With a database selected it pattern-queries the engine's
// namespace catalog for names dotted under it; with none selected it falls
// back to the inspector's full schema listing. Every raw name is stripped
// of the database prefix before being yielded.
func (s *Session) SchemaNames(ctx context.Context) ([]string, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	var (
		raw []string
		err error
	)
	if selected := s.SelectedDatabase(); selected != "" {
		raw, err = s.fetchStrings(ctx, dremio.ListSchemasQuery(selected))
	} else {
		raw, err = s.inspector.SchemaNames(ctx)
	}
	if err != nil {
		return nil, err
	}

	cleaned := make([]string, len(raw))
	for i, name := range raw {
		cleaned[i] = s.translator.StripDatabasePrefix(name)
	}
	return cleaned, nil
}

// fetchStrings runs a fixed catalog query returning one text column.
func (s *Session) fetchStrings(ctx context.Context, q string) ([]string, error) {
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errs.Wrap(errs.ErrKindQueryFailed, "scan namespace name", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
