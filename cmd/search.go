package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"go-landwatch/render"
)

var (
	searchMode     string
	searchEndpoint string
	searchTimeout  time.Duration
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Render one search from a running server to the terminal",
	Long: `Sends the query to /api/search on a running server and prints the sidebar
the map page would show, followed by a summary of the map.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchMode, "mode", "m", render.DefaultMode, "recent, significant or top_impact")
	searchCmd.Flags().StringVar(&searchEndpoint, "endpoint", "", "server base URL (default from config)")
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", 0, "request timeout (default from config)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	endpoint := cfg.Server.SearchEndpoint
	if searchEndpoint != "" {
		endpoint = searchEndpoint
	}
	timeout := cfg.Server.SearchTimeout
	if searchTimeout > 0 {
		timeout = searchTimeout
	}

	out := cmd.OutOrStdout()
	scene := render.NewScene(cfg.Styles)
	r := render.New(render.NewHTTPSearchClient(endpoint, timeout), scene, render.NewTextSidebar(out), cfg.Styles)

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	r.Search(ctx, strings.Join(args, " "), searchMode)

	center, zoom := scene.View()
	fmt.Fprintf(out, "map: %d markers, view %.4f, %.4f zoom %d\n", len(scene.Markers()), center.Lat, center.Lng, zoom)
	return nil
}
