package main

import (
	"fmt"

	"guestgallery/gallery"
	"guestgallery/session"
	"guestgallery/ui"

	"github.com/spf13/cobra"
)

var (
	listSort    string
	listFilter  string
	listRefresh bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show the photos shared so far",
	Aliases: []string{"ls"},
	Long: `Show every photo in the gallery with who shared it.

The listing is cached for five minutes. When the gallery cannot be reached the last
cached copy is shown instead.

Examples:
  guestbook list
  guestbook list --sort name
  guestbook list --filter alex --refresh`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listSort, "sort", "newest", "Sort order (newest, oldest, name)")
	listCmd.Flags().StringVar(&listFilter, "filter", "", "Only show photos shared by names containing this term")
	listCmd.Flags().BoolVar(&listRefresh, "refresh", false, "Ignore the cached listing")
}

func runList(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("sort") {
		listSort = appConfig.DefaultSort
	}
	mode, err := gallery.ParseSortMode(listSort)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatError(err.Error()))
		return err
	}

	ctx := getContext()
	sess := session.New(session.Options{
		API:       apiClient,
		CacheSlot: cacheSlot(cmd),
		Painter:   gallery.NopPainter{},
	})
	if listRefresh {
		if err := sess.Cache.Invalidate(ctx); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), ui.FormatWarning("Could not clear the cached listing: "+err.Error()))
		}
	}

	sess.Renderer.SetSort(mode)
	sess.Renderer.SetFilter(listFilter)
	loadErr := sess.Renderer.Load(ctx)

	painter := &ui.TerminalPainter{
		Out:       cmd.OutOrStdout(),
		RetryHint: "Run 'guestbook list --refresh' to try again.",
	}
	snap := sess.Renderer.Snapshot()
	if snap.Phase == gallery.Errored {
		painter.Error(loadErr)
		return loadErr
	}
	if snap.Stale {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatWarning("Showing a saved copy of the gallery, new photos may be missing."))
	}
	painter.Paint(snap.View)
	return nil
}
