package cli

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"git.cscs.ch/openchami/chamicore-catalog/internal/store"
)

// NewRoutesCommand creates the routes command.
func NewRoutesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "routes [service...]",
		Short:     "Print the HTTP route table",
		ValidArgs: store.Resources,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args)
			if err != nil {
				return err
			}
			srv, err := buildServer(cfg, rootOpts.Build)
			if err != nil {
				return err
			}

			lines, err := routeTable(srv.Router())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range lines {
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// routeTable lists "METHOD pattern" for every registered route, sorted by
// pattern and then method.
func routeTable(r chi.Routes) ([]string, error) {
	type entry struct{ method, route string }
	var entries []entry

	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.Replace(route, "/*/", "/", -1)
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		entries = append(entries, entry{method: method, route: route})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking routes: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].route != entries[j].route {
			return entries[i].route < entries[j].route
		}
		return entries[i].method < entries[j].method
	})

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%-7s %s", e.method, e.route))
	}
	return lines, nil
}
