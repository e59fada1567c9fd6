package main

import (
	"fmt"

	"github.com/dd0wney/cluso-hpo/pkg/query"
	"github.com/spf13/cobra"
)

func addJSONFlag(cmd *cobra.Command, opts *rootOptions) {
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "print the API response as JSON")
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search labels, synonyms and identifiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := opts.openService(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			if pageSize == 0 {
				pageSize = cfg.Query.DefaultPageSize
			}
			resp, err := svc.Search(query.SearchRequest{Query: args[0], Page: page, PageSize: pageSize})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, resp)
			}
			if len(resp.Nodes) == 0 {
				fmt.Fprintf(out, "no matches for %q (%d total)\n", args[0], resp.Total)
				return nil
			}
			fmt.Fprintln(out, termTable(resp.Nodes))
			fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("page %d, %d of %d matches", resp.Page, len(resp.Nodes), resp.Total)))
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "1-based page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "results per page (default from config)")
	addJSONFlag(cmd, opts)
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var parents, children bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one term, or its direct parents or children",
		Example: `  hpo show HP_0000478
  hpo show http://purl.obolibrary.org/obo/HP_0000478 --children`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if parents && children {
				return fmt.Errorf("--parents and --children are mutually exclusive")
			}
			svc, _, err := opts.openService(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			id := svc.ResolveID(args[0])
			out := cmd.OutOrStdout()

			switch {
			case parents:
				resp, err := svc.Parents(id)
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return writeJSON(out, resp)
				}
				fmt.Fprintln(out, termTable(resp.Parents))
			case children:
				resp, err := svc.Children(id)
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return writeJSON(out, resp)
				}
				fmt.Fprintln(out, termTable(resp.Children))
			default:
				term, err := svc.Term(id)
				if err != nil {
					return err
				}
				if opts.jsonOutput {
					return writeJSON(out, term)
				}
				writeTerm(out, term)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&parents, "parents", false, "list direct parents")
	cmd.Flags().BoolVar(&children, "children", false, "list direct children")
	addJSONFlag(cmd, opts)
	return cmd
}

func newSubgraphCmd(opts *rootOptions) *cobra.Command {
	var depth int
	var layout string

	cmd := &cobra.Command{
		Use:   "subgraph <id>",
		Short: "Expand the neighbourhood of a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := opts.openService(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			if depth == 0 {
				depth = cfg.Query.DefaultDepth
			}
			resp, err := svc.Subgraph(query.SubgraphRequest{
				ID:     svc.ResolveID(args[0]),
				Depth:  depth,
				Layout: layout,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, resp)
			}
			fmt.Fprintln(out, positionTable(resp.Nodes, resp.Positions))
			summary := fmt.Sprintf("%d nodes, %d edges", len(resp.Nodes), len(resp.Edges))
			if resp.Layout != "" {
				summary += ", " + resp.Layout + " layout"
			}
			fmt.Fprintln(out, dimStyle.Render(summary))
			return nil
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "expansion depth, 1 to 5 (default from config)")
	cmd.Flags().StringVar(&layout, "layout", "", "hierarchical, circular or force")
	addJSONFlag(cmd, opts)
	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print term and relation counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := opts.openService(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			stats := svc.Stats()
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, stats)
			}
			t := newTable("Terms", "Relations", "Root")
			t.Row(fmt.Sprint(stats.TotalNodes), fmt.Sprint(stats.TotalEdges), stats.RootNode)
			fmt.Fprintln(out, t.String())
			return nil
		},
	}
	addJSONFlag(cmd, opts)
	return cmd
}
