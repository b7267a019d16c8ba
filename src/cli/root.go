// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/certview/src/internal/certgraph"
	"github.com/H0llyW00dzZ/certview/src/logger"
	"github.com/spf13/cobra"
)

var (
	// ErrInputFileRequired is returned when a command is given no input files.
	ErrInputFileRequired = errors.New("cli: at least one input file is required")
	// ErrUnknownAnchor is returned by chain for an id that is not loaded.
	ErrUnknownAnchor = errors.New("cli: anchor not found")
	// ErrValidationFailed is returned by validate --strict when warnings were found.
	ErrValidationFailed = errors.New("cli: validation reported warnings")
)

// app is the state shared by every command of one invocation.
type app struct {
	log logger.Logger
	out io.Writer
	err io.Writer
	now func() time.Time

	configPath string
	logFormat  string
	quiet      bool
	files      []string

	cfg   *Config
	store *certgraph.Store
	cache *certgraph.IndexCache
}

// Execute runs the command tree with os.Args, writing results to stdout.
// Errors are printed to stderr as "Error: ..." and returned.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	cmd := NewRootCommand(version, log, os.Stdout, os.Stderr)
	cmd.SetArgs(os.Args[1:])
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewRootCommand builds the certview command tree.
//
// Parameters:
//   - version: Reported by --version
//   - log: Logger for statistics and anomalies, nil for one on stderr
//   - out: Destination of rendered results
//   - errOut: Destination of the logger when --log-format or --quiet replace it
//
// Returns:
//   - *cobra.Command: Root command ready for SetArgs and ExecuteContext
func NewRootCommand(version string, log logger.Logger, out, errOut io.Writer) *cobra.Command {
	if log == nil {
		log = logger.New("text", errOut, false)
	}
	a := &app{
		log:   log,
		out:   out,
		err:   errOut,
		now:   time.Now,
		store: certgraph.NewStore(),
	}

	root := &cobra.Command{
		Use:           executableName(os.Args) + " [command] [flags] FILE...",
		Short:         "Certificate hierarchy and chain viewer",
		Long:          "Groups certificate inventories into root, intermediate and leaf tiers,\nhighlights issuer chains and reports expiry buckets, deployments and cycles.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a JSON or YAML configuration file (env "+ConfigFileEnv+")")
	flags.StringVar(&a.logFormat, "log-format", "text", "log format on stderr: text or json")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress log output")
	flags.StringArrayVarP(&a.files, "file", "f", nil, "input file, JSON records or X.509 (repeatable)")

	root.AddCommand(
		a.newTiersCommand(),
		a.newChainCommand(),
		a.newDeploymentsCommand(),
		a.newBucketsCommand(),
		a.newCyclesCommand(),
		a.newValidateCommand(),
		a.newWatchCommand(),
	)
	return root
}

// executableName returns the program name for usage lines: the last path
// element of args[0] with either separator, without a ".exe" suffix.
func executableName(args []string) string {
	if len(args) == 0 {
		return "certview"
	}
	name := args[0][strings.LastIndexAny(args[0], `/\`)+1:]
	name = strings.TrimSuffix(name, ".exe")
	if name == "" {
		return "certview"
	}
	return name
}

// setup loads configuration and prepares the logger and index cache.
func (a *app) setup() error {
	switch a.logFormat {
	case "text", "json":
	default:
		return fmt.Errorf("cli: unknown log format %q", a.logFormat)
	}
	if a.logFormat == "json" || a.quiet {
		a.log = logger.New(a.logFormat, a.err, a.quiet)
	}

	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.cache = certgraph.NewIndexCache(
		&certgraph.IndexCacheConfig{MaxSize: cfg.Limits.IndexCacheSize},
		certgraph.SelectorOptions{
			MaxAncestorHops:    cfg.Limits.MaxAncestorHops,
			MaxDescendantSteps: cfg.Limits.MaxDescendantSteps,
		},
	)
	return nil
}

// inputs returns the --file values followed by positional arguments.
func (a *app) inputs(args []string) []string {
	files := make([]string, 0, len(a.files)+len(args))
	files = append(files, a.files...)
	return append(files, args...)
}
