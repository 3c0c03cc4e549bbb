// Package injector renders the landing page for deployment by replacing a
// single placeholder token in the source HTML with a secret URL taken from
// the environment.
//
// A run is a linear pipeline: acquire the value, verify its shape, read the
// source, check the token is present, substitute the first occurrence,
// create the output directory and write the rendered page. Every check
// happens before anything is written, so a failed run leaves no output file
// behind.
package injector

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/errgo.v1"
)

// Injector runs one injection described by a Config.
type Injector struct {
	cfg      *Config
	env      EnvSource
	verifier *Verifier
	logger   *zap.Logger

	// Dir is the directory relative paths in the Config are resolved
	// against. Empty means the working directory.
	Dir string
	// DryRun stops the pipeline after substitution; nothing is written.
	DryRun bool
}

// Result describes a successful run.
type Result struct {
	// Path is the rendered document's path as configured.
	Path string
	// Name is the variable the value was read from.
	Name string
	// Preview is the truncated value echoed to the user.
	Preview string
	// Bytes is the size of the rendered document.
	Bytes int
	// Written is false for a dry run.
	Written bool
}

// New returns an Injector for cfg reading values from env. A nil logger
// disables logging.
func New(cfg *Config, env EnvSource, logger *zap.Logger) (*Injector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	verifier, err := NewVerifier(cfg.EnvVar, cfg.Pattern, cfg.ExpectedFormat)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Injector{
		cfg:      cfg,
		env:      env,
		verifier: verifier,
		logger:   logger,
	}, nil
}

// Run executes the pipeline. Failures carry one of the package error causes;
// use Kind to name them.
func (i *Injector) Run(ctx context.Context) (*Result, error) {
	value, err := Acquire(i.env, i.cfg.EnvVar)
	if err != nil {
		return nil, i.generateError(err)
	}
	if err := i.verifier.Verify(value); err != nil {
		return nil, i.generateError(err)
	}
	i.logger.Debug("configuration value accepted", zap.String("var", i.cfg.EnvVar))

	src, err := os.ReadFile(i.path(i.cfg.Source))
	if err != nil {
		return nil, i.generateError(errgo.WithCausef(err, ErrSourceUnreadable, "cannot read %s", i.cfg.Source))
	}
	i.logger.Debug("source read", zap.String("path", i.cfg.Source), zap.Int("bytes", len(src)))

	rendered, err := Render(string(src), i.cfg.Token, value)
	if err != nil {
		return nil, i.generateError(errgo.WithCausef(nil, ErrTokenNotFound, "Token %q not found in %s", i.cfg.Token, i.cfg.Source))
	}
	if n := strings.Count(string(src), i.cfg.Token); n > 1 {
		i.logger.Warn("token appears more than once, only the first occurrence is replaced",
			zap.String("token", i.cfg.Token), zap.Int("occurrences", n))
	}

	res := &Result{
		Path:    i.cfg.OutputPath(),
		Name:    i.cfg.EnvVar,
		Preview: Preview(value, i.cfg.PreviewLength),
		Bytes:   len(rendered),
	}
	if i.DryRun {
		i.logger.Debug("dry run, nothing written", zap.String("path", res.Path))
		return res, nil
	}

	// Last point at which an interrupted build leaves the tree untouched.
	if err := ctx.Err(); err != nil {
		return nil, i.generateError(errgo.WithCausef(err, ErrWriteFailure, "build interrupted before writing %s", res.Path))
	}

	if err := os.MkdirAll(i.path(i.cfg.OutDir), 0o755); err != nil {
		return nil, i.generateError(errgo.WithCausef(err, ErrWriteFailure, "cannot create %s", i.cfg.OutDir))
	}
	if err := writeFileAtomic(i.path(res.Path), []byte(rendered), 0o644); err != nil {
		return nil, i.generateError(errgo.WithCausef(err, ErrWriteFailure, "cannot write %s", res.Path))
	}
	res.Written = true
	i.logger.Debug("output written", zap.String("path", res.Path), zap.Int("bytes", res.Bytes))

	return res, nil
}

func (i *Injector) path(p string) string {
	if i.Dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(i.Dir, p)
}

// generateError logs err with its failure kind and returns it unchanged.
func (i *Injector) generateError(err error) error {
	i.logger.Debug("build failed", zap.String("kind", Kind(err)), zap.Error(err))
	return err
}

// Render replaces the first occurrence of token in src with value. Later
// occurrences are left in place. It fails if src does not contain token.
func Render(src, token, value string) (string, error) {
	if !strings.Contains(src, token) {
		return "", errgo.WithCausef(nil, ErrTokenNotFound, "Token %q not found", token)
	}
	return strings.Replace(src, token, value, 1), nil
}

// Preview returns the first n characters of value followed by "...".
func Preview(value string, n int) string {
	r := []rune(value)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + "..."
}

// Report prints the confirmation lines for a run.
func (r *Result) Report(w io.Writer) {
	if r.Written {
		fmt.Fprintf(w, "Build complete -> %s\n", filepath.ToSlash(r.Path))
	} else {
		fmt.Fprintf(w, "Dry run: would write %d bytes -> %s\n", r.Bytes, filepath.ToSlash(r.Path))
	}
	fmt.Fprintf(w, "    %s injected (%s)\n", r.Name, r.Preview)
}
