// Command dremcat runs one discovery pass against a Dremio engine and
// reports the Database/Schema/Table catalog it found.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/koustreak/dremcat/internal/catalog"
	"github.com/koustreak/dremcat/internal/config"
	"github.com/koustreak/dremcat/internal/dremio/flight"
	"github.com/koustreak/dremcat/internal/errs"
	"github.com/koustreak/dremcat/internal/export"
	"github.com/koustreak/dremcat/internal/logger"
	"github.com/koustreak/dremcat/internal/server"
)

func main() {
	configPath := flag.String("config", "dremcat.yaml", "path to the workflow configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New(nil).Fatalf("configuration error: %v", err)
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	logger.SetGlobal(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Fatalf("discovery run failed: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	filter, err := catalog.NewFilter(cfg.Filter.Includes, cfg.Filter.Excludes)
	if err != nil {
		return err
	}

	recorder := catalog.NewRecorder(log)

	session, err := catalog.NewSession(catalog.Config{
		ServiceName:        cfg.Service,
		Options:            cfg.Options(),
		ConfiguredDatabase: cfg.Connection.Database,
		Filter:             filter,
		UseFQNFiltering:    cfg.Filter.UseFqnForFiltering,
		Connect:            flight.Connect,
		Reporter:           recorder,
		Log:                log,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	log.With().
		Str("service", cfg.Service).
		Str("run", recorder.RunID()).
		Logger().
		Info("starting discovery")

	if cfg.Server.Enabled {
		srv := server.New(cfg.Server.Addr, recorder, log)
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				log.ErrorWith("status server stopped", err, nil)
			}
		}()
	}

	// Connectivity pre-flight is a capability this engine does not offer;
	// absence is not a failure.
	if err := session.TestConnection(ctx); err != nil && !errs.IsUnsupported(err) {
		return err
	}

	snapshot, err := discover(ctx, session, recorder, cfg.Service)
	if err != nil {
		return err
	}

	summary := recorder.Summary()
	log.InfoWith("discovery finished", map[string]interface{}{
		"databases": len(snapshot.Databases),
		"scanned":   summary.Scanned,
		"filtered":  summary.Filtered,
		"warnings":  summary.Warnings,
	})

	if cfg.Export.Enabled {
		sink, err := export.NewMinIOSink(ctx, export.MinIOConfig{
			Endpoint:  cfg.Export.Endpoint,
			AccessKey: cfg.Export.AccessKey,
			SecretKey: cfg.Export.SecretKey,
			UseSSL:    cfg.Export.UseSSL,
			Bucket:    cfg.Export.Bucket,
			Prefix:    cfg.Export.Prefix,
		})
		if err != nil {
			return err
		}
		key, err := sink.Put(ctx, snapshot)
		if err != nil {
			return err
		}
		log.With().Str("key", key).Logger().Info("snapshot exported")
	}
	return nil
}

// discover walks database → schema → relations, one database at a time,
// and assembles the run snapshot. Per-schema failures degrade to warnings;
// only enumeration of the databases themselves is fatal.
func discover(ctx context.Context, session *catalog.Session, recorder *catalog.Recorder, service string) (*export.Snapshot, error) {
	snapshot := &export.Snapshot{
		RunID:       recorder.RunID(),
		Service:     service,
		GeneratedAt: recorder.Summary().StartedAt,
	}

	databases, err := session.DatabaseNames(ctx)
	if err != nil {
		return nil, err
	}

	for _, dbName := range databases {
		db := export.Database{Name: dbName}

		// Re-select the database: enumeration leaves the last candidate's
		// context live, and schema discovery reads the selected database.
		if err := session.SwitchDatabase(ctx, dbName); err != nil {
			recorder.Warning(service+"."+dbName, err)
			continue
		}

		schemas, err := session.SchemaNames(ctx)
		if err != nil {
			recorder.Warning(service+"."+dbName, err)
			continue
		}

		for _, schemaName := range schemas {
			sc := export.Schema{Name: schemaName}

			tables, err := session.TableNamesAndTypes(ctx, schemaName)
			if err != nil {
				recorder.Warning(service+"."+dbName+"."+schemaName, err)
				continue
			}
			sc.Tables = tables

			views, err := session.ViewNamesAndTypes(ctx, schemaName)
			if err != nil {
				recorder.Warning(service+"."+dbName+"."+schemaName, err)
			} else {
				sc.Views = views
			}

			db.Schemas = append(db.Schemas, sc)
		}

		snapshot.Databases = append(snapshot.Databases, db)
	}
	return snapshot, nil
}
