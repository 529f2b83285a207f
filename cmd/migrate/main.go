package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/cpc-orbit/orbit-backend/internal/config"
	"github.com/cpc-orbit/orbit-backend/internal/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
)

func main() {
	migrationDir := flag.String("path", "migrations", "Path to migration files")
	flag.Usage = printUsage
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(2)
	}

	m, err := migrate.New("file://"+*migrationDir, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("path", *migrationDir).Msg("Failed to initialize migrations")
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			log.Warn().Err(err).Msg("Failed to close migrator")
		}
	}()
	m.Log = migrateLogger{log: log}

	if err := run(m, args); err != nil {
		log.Error().Err(err).Str("command", args[0]).Msg("Migration failed")
		os.Exit(1)
	}
	reportVersion(m, log)
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		return ignoreNoChange(m.Up())
	case "down":
		// Rolling back everything drops every table; require it spelled out.
		if len(args) < 2 {
			return errors.New(`down needs a step count or "all"`)
		}
		if args[1] == "all" {
			return ignoreNoChange(m.Down())
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid step count %q", args[1])
		}
		return ignoreNoChange(m.Steps(-n))
	case "steps":
		if len(args) < 2 {
			return errors.New("steps needs a count")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[1])
		}
		return ignoreNoChange(m.Steps(n))
	case "force":
		if len(args) < 2 {
			return errors.New("force needs a version")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[1])
		}
		return m.Force(v)
	case "version":
		return nil
	}
	printUsage()
	return fmt.Errorf("unknown command %q", args[0])
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func reportVersion(m *migrate.Migrate, log zerolog.Logger) {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info().Msg("No migrations applied")
	case err != nil:
		log.Error().Err(err).Msg("Failed to read schema version")
	default:
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Schema version")
	}
}

// migrateLogger routes golang-migrate's progress lines through zerolog.
type migrateLogger struct {
	log zerolog.Logger
}

func (l migrateLogger) Printf(format string, v ...interface{}) {
	l.log.Info().Msgf(format, v...)
}

func (l migrateLogger) Verbose() bool {
	return l.log.GetLevel() <= zerolog.DebugLevel
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: migrate [flags] <command>")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  up                 apply all pending migrations")
	fmt.Fprintln(os.Stderr, "  down <n|all>       roll back n migrations, or all of them")
	fmt.Fprintln(os.Stderr, "  steps <n>          apply (n > 0) or roll back (n < 0) n migrations")
	fmt.Fprintln(os.Stderr, "  force <version>    set the version without running migrations")
	fmt.Fprintln(os.Stderr, "  version            print the current version")
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}
