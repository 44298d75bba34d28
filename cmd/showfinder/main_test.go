package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/showfinder/showfinder/internal/apperrors"
	"github.com/showfinder/showfinder/internal/client"
	"github.com/showfinder/showfinder/internal/config"
	"github.com/showfinder/showfinder/internal/models"
	"github.com/showfinder/showfinder/internal/testutil"
)

func fakeDeps(fake *testutil.FakeClient) deps {
	return deps{newClient: func(*config.Config, ...client.Option) client.Client { return fake }}
}

func run(t *testing.T, fake *testutil.FakeClient, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(fakeDeps(fake))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	fake := testutil.NewFakeClient()
	fake.Search["the wire"] = testutil.SearchResponse{Shows: []models.Show{
		{ID: "179", Name: "The Wire", Summary: "<p>Baltimore.</p>", Image: "https://static.tvmaze.com/179.jpg"},
	}}

	out, err := run(t, fake, "search", "the", "wire")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out, "The Wire") || !strings.Contains(out, "Baltimore.") || !strings.Contains(out, "179") {
		t.Errorf("Unexpected output:\n%s", out)
	}
	if got := fake.SearchQueries(); len(got) != 1 || got[0] != "the wire" {
		t.Errorf("Expected joined query, got %v", got)
	}
	if !fake.IsClosed() {
		t.Error("Expected client to be closed")
	}
}

func TestSearchCommand_EmptyQuery(t *testing.T) {
	fake := testutil.NewFakeClient()

	_, err := run(t, fake, "search", "  ")
	if !errors.Is(err, errEmptyQuery) {
		t.Errorf("Expected errEmptyQuery, got %v", err)
	}
	if search, _ := fake.Calls(); search != 0 {
		t.Errorf("Expected no request, got %d", search)
	}
}

func TestEpisodesCommand(t *testing.T) {
	fake := testutil.NewFakeClient()
	fake.Episodes["42"] = testutil.EpisodesResponse{Episodes: []models.Episode{
		{ID: "1", Name: "Pilot", Season: 1, Number: 1},
		{ID: "2", Name: "Second", Season: 1, Number: 2},
	}}

	out, err := run(t, fake, "episodes", "42")
	if err != nil {
		t.Fatalf("episodes failed: %v", err)
	}
	if !strings.Contains(out, "Pilot (season 1, number 1)") || !strings.Contains(out, "Second (season 1, number 2)") {
		t.Errorf("Unexpected output:\n%s", out)
	}
}

func TestEpisodesCommand_Failure(t *testing.T) {
	fake := testutil.NewFakeClient()
	fake.Episodes["7"] = testutil.EpisodesResponse{Err: apperrors.NewStatusFailure("get episodes", "u", 404, "show", "7")}

	_, err := run(t, fake, "episodes", "7")
	if !errors.Is(err, &apperrors.ErrNotFound{}) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	_, err := run(t, testutil.NewFakeClient(), "--log-level", "loud", "episodes", "1")
	if err == nil {
		t.Error("Expected invalid log level to fail")
	}
}
