// Command direkli-build renders index.html into dist/index.html, replacing
// the %%APPS_SCRIPT_URL%% token with the value of the APPS_SCRIPT_URL
// environment variable. It is run by the hosting platform at build time;
// the URL is never committed to the repository.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Directly-web/direkli-landing/injector"
	"github.com/Directly-web/direkli-landing/logging"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Environ(), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code. Cancelling
// ctx before the output is written aborts the build without writing it.
// Only APPS_SCRIPT_URL is read from environ; the flags have no
// environment aliases.
func run(ctx context.Context, args []string, environ []string, stdout, stderr io.Writer) int {
	app := newApp(environ, stdout, stderr)
	if err := app.RunContext(ctx, args); err != nil {
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			return ec.ExitCode()
		}
		return 1
	}
	return 0
}

func newApp(environ []string, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "direkli-build",
		Usage:     "inject APPS_SCRIPT_URL into the landing page",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "config file (.yaml, .yml or .toml)",
			},
			&cli.StringFlag{
				Name:    "directory",
				Aliases: []string{"C"},
				Usage:   "run the build from `DIR`",
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "source document containing the token",
			},
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "directory the rendered document is written to",
			},
			&cli.StringFlag{
				Name:  "out-file",
				Usage: "name of the rendered document inside the output directory",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file consulted when the variable is not exported",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "validate and render without writing anything",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log every build step",
			},
		},
		Action: func(c *cli.Context) error {
			return build(c, environ)
		},
		// Exit codes are handled by run so that the command can be
		// exercised in tests without terminating the process.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func build(c *cli.Context, environ []string) error {
	stderr := c.App.ErrWriter
	logger := logging.New(stderr, c.Bool("debug")).With(zap.String("run", uuid.NewString()))
	defer logger.Sync()

	dir := c.String("directory")
	cfg, cfgPath, err := injector.ResolveConfig(c.String("config"), dirOrDot(dir))
	if err != nil {
		return fail(stderr, err, "")
	}
	if cfgPath != "" {
		logger.Debug("config loaded", zap.String("path", cfgPath))
	}
	overrideString(c, "source", &cfg.Source)
	overrideString(c, "out-dir", &cfg.OutDir)
	overrideString(c, "out-file", &cfg.OutFile)
	overrideString(c, "env-file", &cfg.EnvFile)

	env := injector.Layered{injector.EnvFromEnviron(environ)}
	if cfg.EnvFile != "" {
		path := cfg.EnvFile
		if dir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		fileEnv, err := injector.LoadEnvFile(path)
		if err != nil {
			return fail(stderr, err, cfg.Hint(err))
		}
		env = append(env, fileEnv)
	}

	inj, err := injector.New(cfg, env, logger)
	if err != nil {
		return fail(stderr, err, "")
	}
	inj.Dir = dir
	inj.DryRun = c.Bool("dry-run")

	res, err := inj.Run(c.Context)
	if err != nil {
		return fail(stderr, err, cfg.Hint(err))
	}
	res.Report(c.App.Writer)
	return nil
}

// fail prints a build failure and returns the error that makes the command
// exit with status 1.
func fail(w io.Writer, err error, hint string) error {
	fmt.Fprintf(w, "\nBUILD FAILED: %v.\n", err)
	if hint != "" {
		fmt.Fprintf(w, "    %s\n", hint)
	}
	fmt.Fprintln(w)
	return cli.Exit("", 1)
}

func overrideString(c *cli.Context, name string, dst *string) {
	if c.IsSet(name) {
		*dst = c.String(name)
	}
}

func dirOrDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
