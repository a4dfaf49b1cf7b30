package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sampleforge/sitecatalog/internal/database"
	"github.com/sampleforge/sitecatalog/internal/model"
	"github.com/spf13/cobra"
)

// NewFeedbackCmd creates the feedback command.
func NewFeedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback [website-url] [tags]",
		Short: "Record tag suggestions for a site",
		Long: `Feedback records a tag suggestion for a website.

Suggestions are append-only: they are kept for later review and never
change the site's stored tags. When the URL is already cataloged the
suggestion is linked to that site; unknown URLs are accepted too.

A blank URL or blank tag list is silently ignored, matching the
fire-and-forget nature of feedback.

Examples:
  # Suggest tags for a site
  sitecatalog feedback https://example.com "minimalist, portfolio"

  # List recorded suggestions
  sitecatalog feedback --list`,
		Args: cobra.MaximumNArgs(2),
		RunE: runFeedbackCmd,
	}

	cmd.Flags().BoolP("list", "l", false, "List recorded tag suggestions")

	return cmd
}

// runFeedbackCmd executes the feedback command.
func runFeedbackCmd(cmd *cobra.Command, args []string) error {
	listFeedback, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}

	setupLogger(cmd)

	db, err := openDatabase(cmd, true)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()

	if listFeedback {
		return listTagFeedback(cmd, db)
	}

	if len(args) < 2 {
		return errors.New("website URL and tags are required (use --list to see recorded suggestions)")
	}

	url := strings.TrimSpace(args[0])
	tags := strings.TrimSpace(args[1])

	// Blank input is ignored rather than rejected
	if url == "" || tags == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to record.")
		return nil
	}

	fb := &model.TagFeedback{
		URL:           url,
		SuggestedTags: tags,
		CreatedAt:     time.Now(),
	}

	// Link the suggestion to the cataloged site when the URL is known.
	// An unknown URL is fine; the suggestion is stored unlinked.
	site, err := db.GetSiteByURL(ctx, url)
	switch {
	case err == nil:
		fb.SiteID = &site.ID
	case errors.Is(err, database.ErrSiteNotFound):
		// Unlinked feedback
	default:
		return fmt.Errorf("failed to look up site: %w", err)
	}

	if _, err := db.InsertTagFeedback(ctx, fb); err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded tag suggestion for %s\n", url)
	return nil
}

// listTagFeedback prints all recorded tag suggestions, newest first.
func listTagFeedback(cmd *cobra.Command, db *database.CatalogDB) error {
	feedback, err := db.ListTagFeedback(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list feedback: %w", err)
	}

	if len(feedback) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tag suggestions recorded.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Tag suggestions (%d):\n\n", len(feedback))
	for _, fb := range feedback {
		linked := ""
		if fb.SiteID != nil {
			linked = fmt.Sprintf(" (site #%d)", *fb.SiteID)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s%s: %s\n",
			fb.CreatedAt.Format("2006-01-02 15:04"), fb.URL, linked, fb.SuggestedTags)
	}

	return nil
}
