// Command migrate applies and authors the order database schema migrations.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/kitchencloud/backend/internal/infrastructure/config"
	"github.com/kitchencloud/backend/internal/infrastructure/logger"
	"github.com/kitchencloud/backend/internal/infrastructure/migration"
)

var errUsage = errors.New("usage")

// env is what a command runs against. migrator is nil for file-only commands.
type env struct {
	log      *zap.Logger
	dir      string
	args     []string
	migrator *migration.Migrator
}

type command struct {
	usage   string
	summary string
	needsDB bool
	run     func(e *env) error
}

var commands = map[string]command{
	"up": {
		usage: "up", summary: "Apply all pending migrations", needsDB: true,
		run: func(e *env) error { return e.migrator.Up() },
	},
	"down": {
		usage: "down", summary: "Roll back all migrations", needsDB: true,
		run: func(e *env) error { return e.migrator.Down() },
	},
	"step": {
		usage: "step <n>", summary: "Apply n migrations (negative rolls back)", needsDB: true,
		run: func(e *env) error {
			n, err := intArg(e.args)
			if err != nil {
				return err
			}
			return e.migrator.Steps(n)
		},
	},
	"version": {
		usage: "version", summary: "Show the applied schema version", needsDB: true,
		run: func(e *env) error {
			version, dirty, err := e.migrator.Version()
			if err != nil {
				return err
			}
			if version == 0 {
				e.log.Info("No migrations applied")
				return nil
			}
			e.log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
			return nil
		},
	},
	"force": {
		usage: "force <version>", summary: "Mark a version as applied after a failed run", needsDB: true,
		run: func(e *env) error {
			version, err := intArg(e.args)
			if err != nil {
				return err
			}
			e.log.Warn("Forcing migration version", zap.Int("version", version))
			return e.migrator.Force(version)
		},
	},
	"create": {
		usage: "create <name> [desc]", summary: "Write a new up/down file pair",
		run: func(e *env) error {
			if len(e.args) < 1 {
				return errUsage
			}
			description := ""
			if len(e.args) > 1 {
				description = e.args[1]
			}
			mf, err := migration.CreateMigration(e.dir, e.args[0], description)
			if err != nil {
				return err
			}
			e.log.Info("Migration created",
				zap.String("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath),
			)
			return nil
		},
	},
	"list": {
		usage: "list", summary: "List migration files",
		run: func(e *env) error {
			files, err := migration.ListMigrations(e.dir)
			if err != nil {
				return err
			}
			e.log.Info("Available migrations", zap.Int("count", len(files)))
			for _, f := range files {
				fmt.Println("  -", f)
			}
			return nil
		},
	},
}

// commandOrder fixes the help listing
var commandOrder = []string{"up", "down", "step", "version", "force", "create", "list"}

func main() {
	dir := flag.String("path", "", "Path to migrations directory (default: database.migrations_path)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() == 0 {
		printUsage()
		os.Exit(2)
	}
	name := flag.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		printUsage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{
		Level:      *logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	if err := run(log, cmd, name, *dir, flag.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "usage: migrate %s\n", cmd.usage)
			os.Exit(2)
		}
		log.Fatal("Migration command failed", zap.String("command", name), zap.Error(err))
	}
}

func run(log *zap.Logger, cmd command, name, dir string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if dir == "" {
		dir = cfg.Database.MigrationsPath
	}
	if dir, err = filepath.Abs(dir); err != nil {
		return fmt.Errorf("resolve migrations path: %w", err)
	}
	cfg.Database.MigrationsPath = dir

	log.Info("Migration CLI started", zap.String("command", name), zap.String("migrations_path", dir))

	e := &env{log: log, dir: dir, args: args}
	if cmd.needsDB {
		m, err := migration.NewFromConfig(&cfg.Database, log)
		if err != nil {
			return fmt.Errorf("create migrator: %w", err)
		}
		defer func() {
			if err := m.Close(); err != nil {
				log.Error("Error closing migrator", zap.Error(err))
			}
		}()
		e.migrator = m
	}
	return cmd.run(e)
}

func intArg(args []string) (int, error) {
	if len(args) < 1 {
		return 0, errUsage
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", args[0])
	}
	return n, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Kitchen Cloud database migration tool")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:\n  migrate [flags] <command> [arguments]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Commands:")
	for _, name := range commandOrder {
		c := commands[name]
		fmt.Fprintf(os.Stderr, "  %-22s%s\n", c.usage, c.summary)
	}
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Configuration is read from config.toml and KC_ environment variables,")
	fmt.Fprintln(os.Stderr, "e.g. KC_DATABASE_HOST, KC_DATABASE_PASSWORD.")
}
