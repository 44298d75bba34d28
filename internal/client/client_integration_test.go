package client

import (
	"context"
	"os"
	"testing"

	"github.com/showfinder/showfinder/internal/config"
)

// TestClient_Integration calls the real TVMaze API.
// It is skipped in CI environments to avoid external dependencies.
func TestClient_Integration(t *testing.T) {
	if os.Getenv("CI") != "" {
		t.Skip("Skipping integration test in CI environment")
	}
	if os.Getenv("SKIP_INTEGRATION_TESTS") != "" {
		t.Skip("Skipping integration test due to SKIP_INTEGRATION_TESTS environment variable")
	}

	testConfig := &config.Config{
		TVMazeBaseURL: config.DefaultTVMazeBaseURL,
		ClientTimeout: "30s",
	}
	client := NewClient(testConfig)
	defer client.Close()

	ctx := context.Background()
	shows, err := client.SearchShows(ctx, "batman")
	if err != nil {
		t.Fatalf("Integration test failed: SearchShows returned error: %v", err)
	}
	if len(shows) == 0 {
		t.Fatal("Integration test failed: expected at least one show for 'batman'")
	}
	t.Logf("Successfully fetched %d shows from TVMaze", len(shows))

	for i, show := range shows {
		if show.ID == "" {
			t.Errorf("Show %d: ID is empty", i)
		}
		if show.Name == "" {
			t.Errorf("Show %d: Name is empty", i)
		}
		if show.Image == "" || show.Summary == "" {
			t.Errorf("Show %d: expected placeholders to fill image and summary, got %+v", i, show)
		}
	}

	episodes, err := client.GetEpisodes(ctx, shows[0].ID)
	if err != nil {
		t.Fatalf("Integration test failed: GetEpisodes returned error: %v", err)
	}
	t.Logf("Show %s has %d episodes", shows[0].ID, len(episodes))
}
