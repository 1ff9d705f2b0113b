package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/bookmarks/internal/client/models"
	"github.com/dmitrijs2005/bookmarks/internal/filex"
	"github.com/dmitrijs2005/bookmarks/internal/netx"
	"github.com/goliatone/go-print"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid bookmark id %q", s)
	}
	return id, nil
}

func (a *App) List(ctx context.Context) error {
	items, err := a.api.ListBookmarks(ctx)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No bookmarks yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tLINK")
	for _, b := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", b.ID, b.Title, b.Link)
	}
	return tw.Flush()
}

func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	link, err := getSimpleText(a.reader, "Link", a.out)
	if err != nil {
		return err
	}
	desc, err := getMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	b, err := a.api.CreateBookmark(ctx, models.NewBookmark{Title: title, Link: link, Description: desc})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created bookmark %d\n", b.ID)
	return nil
}

func (a *App) Show(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}

	b, err := a.api.GetBookmark(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, print.MaybePrettyJSON(b))
	return nil
}

// Edit updates a bookmark. Empty answers leave fields unchanged.
func (a *App) Edit(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}

	title, err := GetOptionalText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	link, err := GetOptionalText(a.reader, "Link", a.out)
	if err != nil {
		return err
	}
	desc, err := GetOptionalText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	patch := models.BookmarkPatch{Title: title, Link: link, Description: desc}
	if patch.Empty() {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	if _, err := a.api.UpdateBookmark(ctx, id, patch); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Updated bookmark %d\n", id)
	return nil
}

func (a *App) Delete(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}

	if err := a.api.DeleteBookmark(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted bookmark %d\n", id)
	return nil
}

// downloadExport is a test seam for fetching the exported object.
var downloadExport = netx.DownloadFromPresignedURL

// Export asks the server for an export. With save set, the object is also
// downloaded into the configured export directory.
func (a *App) Export(ctx context.Context, save bool) error {
	e, err := a.api.Export(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Exported %d bookmarks to %s\n", e.Count, e.Key)
	fmt.Fprintf(a.out, "Download link (valid for a limited time):\n%s\n", e.URL)

	if !save {
		return nil
	}

	data, err := downloadExport(ctx, e.URL)
	if err != nil {
		return fmt.Errorf("downloading export: %w", err)
	}

	path, err := filex.SaveInSubdDir(a.config.ExportDir, e.Key, data)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Saved to %s\n", path)
	return nil
}
