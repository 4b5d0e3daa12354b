package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-fmcompose/internal/config"
	"github.com/goliatone/go-fmcompose/internal/loader"
	"github.com/goliatone/go-fmcompose/internal/logging"
	"github.com/goliatone/go-fmcompose/pkg/codec"
	"github.com/goliatone/go-fmcompose/pkg/frontmatter"
	"github.com/goliatone/go-fmcompose/pkg/placement"
	"github.com/goliatone/go-fmcompose/pkg/prompt"
	"github.com/goliatone/go-fmcompose/pkg/sanitize"
	"github.com/goliatone/go-fmcompose/pkg/session"
	"github.com/goliatone/go-fmcompose/pkg/source"
	"github.com/goliatone/go-fmcompose/pkg/template"
	"github.com/goliatone/go-fmcompose/pkg/tree"
)

type flags struct {
	config    string
	templates string
	output    string
	name      string
	logLevel  string
	reset     bool
	stdout    bool
	imports   string
}

func main() {
	var f flags
	flag.StringVar(&f.config, "config", "", "configuration file (defaults to ./"+config.DefaultPath+" when present)")
	flag.StringVar(&f.templates, "templates", "", "template directory")
	flag.StringVar(&f.output, "output", "", "output directory")
	flag.StringVar(&f.name, "name", "", "pongo2 template for output file names")
	flag.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flag.BoolVar(&f.reset, "reset", false, "clear the canvas after each submit")
	flag.BoolVar(&f.stdout, "stdout", false, "print submissions instead of writing files")
	flag.StringVar(&f.imports, "import", "", "comma separated documents to import before composing")
	flag.Parse()

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "fmcompose: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	applyFlags(&cfg, f)

	logger, closeLog, err := logging.Open(cfg.Log.File, cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	timeout, err := cfg.HTTPTimeout()
	if err != nil {
		return err
	}
	loaderOpts := []source.LoaderOption{source.WithExtensions(source.DocumentExtensions...)}
	if cfg.HTTP.Enabled {
		loaderOpts = append(loaderOpts, source.WithHTTPFallback(timeout))
	}
	ld := loader.New(source.NewLoaderOptions(loaderOpts...))

	sink, err := newSink(cfg, f.stdout)
	if err != nil {
		return err
	}

	s := session.New(
		session.WithLogger(logger.Named("session")),
		session.WithSink(sink),
		session.WithResetAfterSubmit(cfg.Session.ResetAfterSubmit),
		session.WithCodecOptions(codec.WithValueSanitizer(sanitize.ForWidgets(cfg.Widgets()...))),
	)

	if err := s.LoadTemplates(ctx, newLister(cfg, ld), cfg.Templates.Dir); err != nil {
		logger.Warn("templates unavailable", zap.String("dir", cfg.Templates.Dir), zap.Error(err))
	}

	for _, location := range splitList(f.imports) {
		if _, err := s.Import(ctx, ld, source.Parse(location), tree.RootID, placement.Append); err != nil {
			return fmt.Errorf("import %s: %w", location, err)
		}
	}

	composer := prompt.New(s,
		prompt.WithLoader(ld),
		prompt.WithLogger(logger.Named("prompt")),
	)
	if err := composer.Run(ctx); err != nil && !errors.Is(err, prompt.ErrAborted) && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func applyFlags(cfg *config.Config, f flags) {
	if f.templates != "" {
		cfg.Templates.Dir = f.templates
	}
	if f.output != "" {
		cfg.Output.Dir = f.output
	}
	if f.name != "" {
		cfg.Output.NameTemplate = f.name
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.reset {
		cfg.Session.ResetAfterSubmit = true
	}
}

func newSink(cfg config.Config, stdout bool) (frontmatter.Sink, error) {
	if stdout {
		return frontmatter.WriterSink{W: os.Stdout, Label: "stdout"}, nil
	}
	var opts []frontmatter.FileSinkOption
	opts = append(opts, frontmatter.WithNameTemplate(cfg.Output.NameTemplate))
	if cfg.Output.Body != "" {
		opts = append(opts, frontmatter.WithBody([]byte(cfg.Output.Body)))
	}
	return frontmatter.NewFileSink(cfg.Output.Dir, opts...)
}

func newLister(cfg config.Config, ld source.Loader) template.Lister {
	if len(cfg.Templates.Sources) == 0 {
		return template.NewDirLister(nil)
	}
	sources := make([]source.Source, 0, len(cfg.Templates.Sources))
	for _, location := range cfg.Templates.Sources {
		sources = append(sources, source.Parse(location))
	}
	return template.NewSourceLister(ld, sources...)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
