package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/trainingportal/internal/client/feed"
	"github.com/dmitrijs2005/trainingportal/internal/client/services"
)

// Videos prints the current feed view.
func (a *App) Videos(ctx context.Context) error {
	a.printView(a.feed.View())
	return nil
}

// Search sets the title filter to the given words; no words clears it.
func (a *App) Search(ctx context.Context, args []string) error {
	f := a.feed.Filter()
	f.Search = strings.Join(args, " ")
	a.feed.SetFilter(ctx, f)
	a.printView(a.feed.View())
	return nil
}

// Category sets the category filter; no argument or "-" clears it.
func (a *App) Category(ctx context.Context, args []string) error {
	f := a.feed.Filter()
	f.CategoryID = ""
	if len(args) > 0 && args[0] != "-" {
		f.CategoryID = args[0]
	}
	a.feed.SetFilter(ctx, f)
	a.printView(a.feed.View())
	return nil
}

// Categories lists the categories offered by the current view.
func (a *App) Categories(ctx context.Context) error {
	view := a.feed.View()
	if len(view.Categories) == 0 {
		fmt.Fprintln(a.out, "No categories")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, c := range view.Categories {
		fmt.Fprintf(tw, "%s\t%s\n", c.ID, c.Name)
	}
	return tw.Flush()
}

// Show prints one video with its embeddable link.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter video id")
	if err != nil {
		return err
	}

	v, err := a.catalog.GetVideo(ctx, id)
	if err != nil {
		a.reportError(err)
		return err
	}
	if !v.VisibleTo(a.session.Identity()) {
		fmt.Fprintln(a.out, "Video not found")
		return nil
	}

	fmt.Fprintf(a.out, "%s\n", v.Title)
	fmt.Fprintf(a.out, "  link:     %s\n", v.Link)
	fmt.Fprintf(a.out, "  embed:    %s\n", services.EmbedURL(v.Link))
	fmt.Fprintf(a.out, "  category: %s\n", v.CategoryID)
	if !v.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "  created:  %s\n", v.CreatedAt.Format("2006-01-02 15:04"))
	}
	if a.isAdmin() {
		fmt.Fprintf(a.out, "  allowed:  %s\n", strings.Join(v.AllowedUsers, ", "))
	}
	return nil
}

// Watch prints the next n views as the feed publishes them (default 1).
func (a *App) Watch(ctx context.Context, args []string) error {
	n := 1
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			fmt.Fprintln(a.out, "Usage: watch [count]")
			return nil
		}
		n = parsed
	}

	views, unsubscribe := a.feed.Subscribe()
	defer unsubscribe()

	for i := 0; i < n; i++ {
		select {
		case view := <-views:
			a.printView(view)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (a *App) printView(view feed.View) {
	if view.Err != nil {
		fmt.Fprintf(a.out, "Videos unavailable: %s\n", view.Err)
		return
	}

	f := a.feed.Filter()
	if f.Search != "" || f.CategoryID != "" {
		fmt.Fprintf(a.out, "Filter: search=%q category=%q\n", f.Search, f.CategoryID)
	}
	if len(view.Videos) == 0 {
		fmt.Fprintln(a.out, "No videos")
		return
	}

	names := make(map[string]string, len(view.Categories))
	for _, c := range view.Categories {
		names[c.ID] = c.Name
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY")
	for _, v := range view.Videos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", v.ID, v.Title, names[v.CategoryID])
	}
	tw.Flush()
}

// argOrPrompt returns args[0] or asks for it.
func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}
