package catalog

import (
	"context"

	"github.com/koustreak/dremcat/internal/dremio"
	"github.com/koustreak/dremcat/internal/errs"
	"github.com/koustreak/dremcat/internal/introspect"
	"github.com/koustreak/dremcat/internal/logger"
)

// Config assembles a discovery session.
type Config struct {
	// ServiceName is the catalog-side name of this Dremio service,
	// used to build fully qualified database names.
	ServiceName string

	// Options is the base connection-option map. The session clones it
	// for every database switch; the original is never mutated.
	Options dremio.Options

	// ConfiguredDatabase pre-selects a single database. When set,
	// discovery yields exactly that database and enumerates nothing.
	ConfiguredDatabase string

	// Filter is applied to database candidates. Nil passes everything.
	Filter *Filter

	// UseFQNFiltering matches filter patterns against the fully
	// qualified "<service>.<database>" name instead of the bare name.
	UseFQNFiltering bool

	// Connect opens an engine connection from resolved options.
	// Defaults to the Flight driver in the wiring layer; tests inject
	// fakes here.
	Connect dremio.Connector

	// TypeMap overrides the engine-type mapping table. Nil uses the
	// Dremio defaults.
	TypeMap dremio.TypeMap

	// Reporter receives status events. Nil events are dropped.
	Reporter Reporter

	Log *logger.Logger
}

// Session is one single-threaded discovery run's view of the engine.
//
// It owns at most one live engine connection and its inspector; switching
// databases discards both so no driver session state leaks between
// databases. Not safe for concurrent use — run one Session per worker.
type Session struct {
	cfg        Config
	translator Translator
	db         dremio.DB
	inspector  *introspect.Inspector
	log        *logger.Logger
}

// NewSession validates the configuration and returns a Session. Connection
// options are resolved here so that a missing required option aborts the
// run before any query is issued.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Connect == nil {
		return nil, errs.New(errs.ErrKindConfig, "missing engine connector")
	}
	if _, err := cfg.Options.URL(); err != nil {
		return nil, err
	}
	if cfg.Log == nil {
		cfg.Log = logger.New(nil)
	}
	return &Session{cfg: cfg, log: cfg.Log}, nil
}

// SelectedDatabase returns the currently selected database, or "" before
// the first switch.
func (s *Session) SelectedDatabase() string {
	return s.translator.Database()
}

// ConfiguredDatabase returns the pre-selected database from configuration,
// or "" when discovery should enumerate all databases.
func (s *Session) ConfiguredDatabase() string {
	return s.cfg.ConfiguredDatabase
}

// SwitchDatabase rebuilds the engine context for the given database: a
// fresh connection from a clone of the base options, a fresh inspector,
// previous caches gone. It must run before any schema or relation call for
// that database. Calling it again with the same name rebuilds anyway —
// switches are rare and unconditional rebuilds keep the lifecycle simple.
func (s *Session) SwitchDatabase(ctx context.Context, name string) error {
	if name == "" {
		return errs.New(errs.ErrKindInvalidInput, "database name must not be empty")
	}

	s.log.With().Str("database", name).Logger().Info("ingesting from database")

	db, err := s.cfg.Connect(ctx, s.cfg.Options.Clone())
	if err != nil {
		return err
	}

	if s.db != nil {
		_ = s.db.Close()
	}
	s.db = db
	s.inspector = introspect.New(db, s.cfg.TypeMap)
	s.translator.SetDatabase(name)
	return nil
}

// ensure lazily opens the initial, database-less engine connection used
// for top-level enumeration before any database is selected.
func (s *Session) ensure(ctx context.Context) error {
	if s.db != nil {
		return nil
	}
	db, err := s.cfg.Connect(ctx, s.cfg.Options.Clone())
	if err != nil {
		return err
	}
	s.db = db
	s.inspector = introspect.New(db, s.cfg.TypeMap)
	return nil
}

// Close releases the live engine connection, if any.
func (s *Session) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.inspector = nil
	return err
}

// TestConnection is the connectivity pre-flight hook. This connector does
// not implement one; callers must treat the result as "not available" and
// proceed, not as a failed check.
func (s *Session) TestConnection(ctx context.Context) error {
	return errs.New(errs.ErrKindUnsupported, "connectivity pre-flight is not implemented for this engine")
}

// ViewLineage is the lineage extraction hook, not implemented for this
// engine. Explicitly unsupported so callers can tell "no lineage" from
// "lineage extraction failed".
func (s *Session) ViewLineage(ctx context.Context) error {
	return errs.New(errs.ErrKindUnsupported, "view lineage extraction is not implemented for this engine")
}

// fqn builds the service-scoped fully qualified name of a database.
func (s *Session) fqn(database string) string {
	if s.cfg.ServiceName == "" {
		return database
	}
	return s.cfg.ServiceName + "." + database
}

// report helpers tolerate a nil Reporter.

func (s *Session) reportScanned(entity string) {
	if s.cfg.Reporter != nil {
		s.cfg.Reporter.Scanned(entity)
	}
}

func (s *Session) reportFiltered(entity, reason string) {
	if s.cfg.Reporter != nil {
		s.cfg.Reporter.Filtered(entity, reason)
	}
}

func (s *Session) reportWarning(entity string, err error) {
	if s.cfg.Reporter != nil {
		s.cfg.Reporter.Warning(entity, err)
	}
}
