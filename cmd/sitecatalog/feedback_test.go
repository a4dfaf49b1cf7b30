package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sampleforge/sitecatalog/internal/database"
	"github.com/sampleforge/sitecatalog/internal/model"
)

func TestNewFeedbackCmd(t *testing.T) {
	t.Parallel()

	cmd := NewFeedbackCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "feedback [website-url] [tags]" {
			t.Errorf("expected use 'feedback [website-url] [tags]', got %q", cmd.Use)
		}
	})

	t.Run("has list flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("list") == nil {
			t.Error("expected list flag")
		}
	})
}

func TestRunFeedbackCmd(t *testing.T) {
	t.Parallel()

	t.Run("records linked feedback for known site", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db, err := database.Open(dir, database.DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		saved, err := db.InsertSite(context.Background(), &model.Site{
			URL: "https://known.example.com",
		})
		if err != nil {
			t.Fatal(err)
		}
		if err := db.Close(); err != nil {
			t.Fatal(err)
		}

		out := &bytes.Buffer{}
		cmd := NewRootCmd()
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"feedback", "--db-dir", dir,
			"https://known.example.com", "minimalist, portfolio"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(out.String(), "Recorded tag suggestion") {
			t.Errorf("expected confirmation, got %q", out.String())
		}

		db, err = database.Open(dir, database.DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		defer db.Close()

		feedback, err := db.ListTagFeedback(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(feedback) != 1 {
			t.Fatalf("expected 1 feedback record, got %d", len(feedback))
		}
		if feedback[0].SiteID == nil || *feedback[0].SiteID != saved.ID {
			t.Errorf("expected feedback linked to site %d, got %v", saved.ID, feedback[0].SiteID)
		}
		if feedback[0].SuggestedTags != "minimalist, portfolio" {
			t.Errorf("unexpected suggested tags %q", feedback[0].SuggestedTags)
		}
	})

	t.Run("records unlinked feedback for unknown site", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"feedback", "--db-dir", dir,
			"https://unknown.example.com", "bakery"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		db, err := database.Open(dir, database.DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		defer db.Close()

		feedback, err := db.ListTagFeedback(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(feedback) != 1 {
			t.Fatalf("expected 1 feedback record, got %d", len(feedback))
		}
		if feedback[0].SiteID != nil {
			t.Errorf("expected unlinked feedback, got site id %v", *feedback[0].SiteID)
		}
	})

	t.Run("blank input is ignored without error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		out := &bytes.Buffer{}
		cmd := NewRootCmd()
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"feedback", "--db-dir", dir, "   ", "tags"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(out.String(), "Nothing to record") {
			t.Errorf("expected ignore message, got %q", out.String())
		}

		db, err := database.Open(dir, database.DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		defer db.Close()

		feedback, err := db.ListTagFeedback(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(feedback) != 0 {
			t.Errorf("expected no feedback records, got %d", len(feedback))
		}
	})

	t.Run("missing arguments is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"feedback", "--db-dir", t.TempDir(), "https://only-url.example.com"})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error when tags argument is missing")
		}
	})

	t.Run("list shows recorded suggestions", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		record := NewRootCmd()
		record.SetOut(&bytes.Buffer{})
		record.SetErr(&bytes.Buffer{})
		record.SetArgs([]string{"feedback", "--db-dir", dir,
			"https://listed.example.com", "handmade"})
		if err := record.Execute(); err != nil {
			t.Fatal(err)
		}

		out := &bytes.Buffer{}
		list := NewRootCmd()
		list.SetOut(out)
		list.SetErr(&bytes.Buffer{})
		list.SetArgs([]string{"feedback", "--db-dir", dir, "--list"})

		if err := list.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		output := out.String()
		if !strings.Contains(output, "https://listed.example.com") {
			t.Errorf("expected listed URL, got %q", output)
		}
		if !strings.Contains(output, "handmade") {
			t.Errorf("expected suggested tags, got %q", output)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()

		out := &bytes.Buffer{}
		cmd := NewRootCmd()
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"feedback", "--db-dir", t.TempDir(), "--list"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(out.String(), "No tag suggestions recorded") {
			t.Errorf("expected empty message, got %q", out.String())
		}
	})
}
