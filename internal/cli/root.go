// Package cli wires the chamicore-catalog command tree.
package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
	Build   BuildInfo
}

// NewRootCommand creates the root command for the catalog service.
func NewRootCommand(build BuildInfo) *cobra.Command {
	opts := &RootOptions{Build: build}

	cmd := &cobra.Command{
		Use:   "chamicore-catalog",
		Short: "In-memory catalog of books, students, menu items, products, tasks and users",
		Long: `chamicore-catalog serves six independent in-memory CRUD collections over
HTTP/JSON. Configuration comes from CHAMICORE_CATALOG_* environment variables,
optionally loaded from a dotenv file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadEnvFile(opts.EnvFile)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load before reading configuration")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewRoutesCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// loadEnvFile loads path into the process environment. A missing file is not
// an error; variables already set are never overridden.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", path).Msg("no env file, using process environment only")
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}
