// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/sirseerhq/sirseer-sync/internal/config"
	syncerrors "github.com/sirseerhq/sirseer-sync/internal/errors"
	"github.com/sirseerhq/sirseer-sync/internal/github"
	"github.com/sirseerhq/sirseer-sync/internal/logging"
	"github.com/sirseerhq/sirseer-sync/internal/output"
	"github.com/sirseerhq/sirseer-sync/internal/router"
	"github.com/sirseerhq/sirseer-sync/internal/store"
	"github.com/sirseerhq/sirseer-sync/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// envAnnotation names the environment variable a flag falls back to.
const envAnnotation = "sirseer-sync/env"

// rootOptions holds the persistent flags and the state shared between the
// command tree and execute.
type rootOptions struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	outputFile string
	format     string
	logLevel   string
	strictExit bool
	timeout    time.Duration
	transport  string
	dbDriver   string
	dbURL      string
	dbPath     string

	flags  *pflag.FlagSet
	cfg    *config.Config
	logger zerolog.Logger
}

// execute runs the command tree and applies the exit policy.
func execute(args []string, stdout, stderr io.Writer, envErr error) int {
	opts := &rootOptions{
		stdout: stdout,
		stderr: stderr,
		logger: logging.New(stderr, "info"),
	}
	if envErr != nil {
		opts.logger.Warn().Err(envErr).Msg("could not load .env file")
	}

	rootCmd := newRootCommand(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	opts.logger.Error().Err(err).Msg("run failed")
	if !opts.strict() {
		return 0
	}
	return mapErrorToExitCode(err)
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	var inputs router.Inputs

	rootCmd := &cobra.Command{
		Use:   "sirseer-sync",
		Short: "Sync GitHub users into a database and record their favorite languages",
		Long: `SirSeer Sync imports GitHub user profiles into Postgres or SQLite and
records which programming languages each user likes.

Without a subcommand the action is chosen from USER_NAME, LANGUAGE and FILTER
(or the matching flags):
  - login and language: record the like and print it
  - login only: print the languages the user likes
  - neither: print the stored users matching the filter`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return bindEnv(cmd.Flags(), os.LookupEnv)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runAction(cmd.Context(), inputs)
		},
	}
	opts.flags = rootCmd.PersistentFlags()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file path (default: .sirseer-sync.yaml or ~/.sirseer/sync.yaml)")
	pf.StringVar(&opts.outputFile, "output", "", "Output file path (default: stdout)")
	pf.StringVar(&opts.format, "format", "", "Output format: json or ndjson")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.BoolVar(&opts.strictExit, "strict-exit", false, "Exit non-zero when the run fails")
	pf.DurationVar(&opts.timeout, "timeout", 0, "Bound the whole run, e.g. 30s (default: no limit)")
	pf.StringVar(&opts.transport, "transport", "", "GitHub API flavor: rest or graphql")
	pf.StringVar(&opts.dbDriver, "db-driver", "", "Database driver: postgres or sqlite")
	pf.StringVar(&opts.dbURL, "db-url", "", "Postgres connection URL (overrides DATABASE_URL)")
	pf.StringVar(&opts.dbPath, "db-path", "", "SQLite database file")

	f := rootCmd.Flags()
	f.StringVarP(&inputs.Login, "login", "u", "", "GitHub login (env USER_NAME)")
	f.StringVarP(&inputs.Language, "language", "l", "", "Language the user likes (env LANGUAGE)")
	f.StringVarP(&inputs.Filter, "filter", "f", "", "User filter key:value,... (env FILTER)")
	f.BoolVar(&inputs.Import, "import", false, "With a login only, fetch and store the user instead of listing languages")
	_ = f.SetAnnotation("login", envAnnotation, []string{"USER_NAME"})
	_ = f.SetAnnotation("language", envAnnotation, []string{"LANGUAGE"})
	_ = f.SetAnnotation("filter", envAnnotation, []string{"FILTER"})

	rootCmd.AddCommand(
		newUsersCommand(opts),
		newLanguagesCommand(opts),
		newLikeCommand(opts),
		newSchemaCommand(opts),
	)

	return rootCmd
}

// bindEnv fills every flag annotated with an environment variable from that
// variable unless the flag was given on the command line.
func bindEnv(fs *pflag.FlagSet, lookup func(string) (string, bool)) error {
	var firstErr error
	fs.VisitAll(func(f *pflag.Flag) {
		names := f.Annotations[envAnnotation]
		if f.Changed || len(names) == 0 || firstErr != nil {
			return
		}
		value, ok := lookup(names[0])
		if !ok {
			return
		}
		if err := fs.Set(f.Name, value); err != nil {
			firstErr = fmt.Errorf("invalid %s: %v: %w", names[0], err, syncerrors.ErrInvalidInput)
		}
	})
	return firstErr
}

// strict reports whether failures should change the exit code. The flag
// wins over the configuration, which already includes SIRSEER_STRICT_EXIT.
func (o *rootOptions) strict() bool {
	if o.flags != nil && o.flags.Changed("strict-exit") {
		return o.strictExit
	}
	if o.cfg != nil {
		return o.cfg.CLI.StrictExit
	}
	v, _ := strconv.ParseBool(os.Getenv("SIRSEER_STRICT_EXIT"))
	return v
}

// loadConfig resolves defaults, file, environment and flags, in that order.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	o.cfg = cfg

	changed := func(name string) bool { return o.flags != nil && o.flags.Changed(name) }
	if changed("format") {
		cfg.Output.Format = o.format
	}
	if changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if changed("strict-exit") {
		cfg.CLI.StrictExit = o.strictExit
	}
	if changed("timeout") {
		cfg.CLI.Timeout = o.timeout
	}
	if changed("transport") {
		cfg.GitHub.Transport = o.transport
	}
	if changed("db-driver") {
		cfg.Database.Driver = o.dbDriver
	}
	if changed("db-url") {
		cfg.Database.URL = o.dbURL
	}
	if changed("db-path") {
		cfg.Database.Path = o.dbPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v: %w", err, syncerrors.ErrInvalidInput)
	}
	return cfg, nil
}

// session is everything one run needs, opened in dependency order.
type session struct {
	db     *store.DB
	router *router.Router
}

// run opens a session, calls fn and prints its result. Nothing is written
// when fn fails.
func (o *rootOptions) run(ctx context.Context, fn func(context.Context, *session) (interface{}, error)) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	o.logger = logging.New(o.stderr, cfg.Log.Level)

	if cfg.CLI.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.CLI.Timeout)
		defer cancel()
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}

	o.logger.Info().Str("database", cfg.Database.Describe()).Msg("connecting to database")
	db, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.DSN(), o.logger)
	if err != nil {
		return err
	}
	defer db.Close()

	s := &session{
		db:     db,
		router: router.New(db, fetcher, o.logger),
	}

	result, err := fn(ctx, s)
	if err != nil {
		return err
	}

	// The output file is only created once there is a result to put in it.
	writer, err := o.newWriter(cfg.Output.Format)
	if err != nil {
		return err
	}
	if err := writer.WriteResult(result); err != nil {
		_ = writer.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	o.logger.Debug().Int("documents", writer.Count()).Msg("wrote result")
	return nil
}

func (o *rootOptions) newWriter(format string) (output.ResultWriter, error) {
	if o.outputFile == "" {
		return output.NewWriter(o.stdout, format)
	}
	fileWriter, err := output.NewFileWriter(o.outputFile, format)
	if err != nil {
		return nil, err
	}
	return fileWriter, nil
}

// newFetcher builds the GitHub client for the configured transport.
func newFetcher(cfg *config.Config) (github.Client, error) {
	opts := github.Options{
		UserAgent: cfg.GitHub.UserAgent,
		Token:     cfg.Token(),
	}

	if cfg.GitHub.Transport == config.TransportGraphQL {
		opts.Endpoint = cfg.GitHub.GraphQLEndpoint
		client, err := github.NewGraphQLClient(opts)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	opts.Endpoint = cfg.GitHub.APIEndpoint
	client, err := github.NewRESTClient(opts)
	if err != nil {
		return nil, err
	}
	return client, nil
}
