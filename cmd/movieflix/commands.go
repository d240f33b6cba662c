package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"movieflix/internal/catalog"
	"movieflix/internal/config"
	"movieflix/internal/model"
	"movieflix/internal/service"
	"movieflix/internal/view"
	"movieflix/pkg/httpclient"

	"github.com/spf13/cobra"
)

type cliOptions struct {
	apiKeys  []string
	baseURL  string
	language string
	page     int
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &cliOptions{
		apiKeys:  cfg.TMDBAPIKeys,
		baseURL:  cfg.TMDBBaseURL,
		language: cfg.TMDBLanguage,
	}

	root := &cobra.Command{
		Use:          "movieflix",
		Short:        "Browse the TMDB movie catalog from the terminal",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringSliceVar(&opts.apiKeys, "api-key", opts.apiKeys, "TMDB API key(s), defaults to TMDB_API_KEY")
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", opts.baseURL, "TMDB API base URL")
	root.PersistentFlags().StringVar(&opts.language, "language", opts.language, "TMDB response language")

	newTMDB := func() (*service.TMDBService, error) {
		tmdb := service.NewTMDBService(
			httpclient.NewClient(httpclient.Options{Timeout: cfg.TMDBTimeout, Retries: cfg.TMDBRetries}),
			opts.apiKeys, opts.baseURL, opts.language,
		)
		if !tmdb.IsConfigured() {
			return nil, errors.New("no TMDB API key: set TMDB_API_KEY or pass --api-key")
		}
		return tmdb, nil
	}

	root.AddCommand(
		newPopularCmd(opts, newTMDB),
		newSearchCmd(opts, newTMDB),
		newDetailCmd(newTMDB),
	)
	return root
}

func newPopularCmd(opts *cliOptions, newTMDB func() (*service.TMDBService, error)) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "List popular movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tmdb, err := newTMDB()
			if err != nil {
				return err
			}
			mode := catalog.ModePopular
			if all {
				mode = catalog.ModeAll
			}
			return listQuery(cmd.Context(), cmd.OutOrStdout(), catalog.NewFetcher(tmdb), catalog.CategoryQuery(mode), opts.page)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, fmt.Sprintf("fetch the first %d popular pages", catalog.BulkPages))
	cmd.Flags().IntVar(&opts.page, "page", 1, "page of the listing to print")
	return cmd
}

func newSearchCmd(opts *cliOptions, newTMDB func() (*service.TMDBService, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search movies by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.Join(args, " ")
			if strings.TrimSpace(term) == "" {
				return errors.New("search term is blank")
			}
			tmdb, err := newTMDB()
			if err != nil {
				return err
			}
			return listQuery(cmd.Context(), cmd.OutOrStdout(), catalog.NewFetcher(tmdb), catalog.SearchQuery(term, catalog.ModePopular), opts.page)
		},
	}
	cmd.Flags().IntVar(&opts.page, "page", 1, "page of the results to print")
	return cmd
}

func newDetailCmd(newTMDB func() (*service.TMDBService, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "detail <id>",
		Short: "Show one movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid movie id %q", args[0])
			}
			tmdb, err := newTMDB()
			if err != nil {
				return err
			}
			movie, err := tmdb.MovieDetail(cmd.Context(), id)
			if err != nil {
				return err
			}
			printDetail(cmd.OutOrStdout(), movie)
			return nil
		},
	}
}

// listQuery fetches q and prints one page of it
func listQuery(ctx context.Context, out io.Writer, fetcher catalog.QueryFetcher, q catalog.Query, page int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	movies, err := fetcher.Fetch(ctx, q)
	if err != nil {
		return err
	}

	slice, totalPages := catalog.Paginate(movies, page, catalog.PageSize)
	page = catalog.ClampPage(page, totalPages)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tYEAR\tRATING\tGENRE")
	for _, m := range slice {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", m.ID, m.Title, view.Year(m.ReleaseDate), view.Rating(m.VoteAverage), m.PrimaryGenre())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nPage %d of %d (%d movies)\n", page, totalPages, len(movies))
	return nil
}

func printDetail(out io.Writer, m *model.MovieDetail) {
	fmt.Fprintf(out, "%s (%s)\n", m.Title, view.Year(m.ReleaseDate))
	if m.Tagline != "" {
		fmt.Fprintf(out, "%s\n", m.Tagline)
	}

	genres := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		genres = append(genres, g.Name)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Rating:\t%s/10\n", view.Rating(m.VoteAverage))
	fmt.Fprintf(w, "Released:\t%s\n", view.LongDate(m.ReleaseDate))
	if rt := view.Runtime(m.Runtime); rt != "" {
		fmt.Fprintf(w, "Runtime:\t%s\n", rt)
	}
	if len(genres) > 0 {
		fmt.Fprintf(w, "Genres:\t%s\n", strings.Join(genres, ", "))
	}
	fmt.Fprintf(w, "Status:\t%s\n", m.Status)
	fmt.Fprintf(w, "Language:\t%s\n", view.LanguageName(m.OriginalLanguage))
	if m.Budget > 0 {
		fmt.Fprintf(w, "Budget:\t%s\n", view.USD(m.Budget))
	}
	if m.Revenue > 0 {
		fmt.Fprintf(w, "Revenue:\t%s\n", view.USD(m.Revenue))
	}
	_ = w.Flush()

	if m.Overview != "" {
		fmt.Fprintf(out, "\n%s\n", m.Overview)
	}
	if cast := view.TopCast(m); len(cast) > 0 {
		fmt.Fprintln(out, "\nCast:")
		for _, c := range cast {
			fmt.Fprintf(out, "  %s as %s\n", c.Name, c.Character)
		}
	}
	if t := view.Trailer(m); t != nil {
		fmt.Fprintf(out, "\nTrailer: https://www.youtube.com/watch?v=%s\n", t.Key)
	}
}
