package version

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/dhabedank/lumina/internal/tui"
)

const (
	// GitHubRepo is the repository for version checks.
	GitHubRepo = "dhabedank/lumina"

	// CheckInterval is how often to check for updates (24 hours).
	CheckInterval = 24 * time.Hour
)

// releaseURL is replaced in tests.
var releaseURL = fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", GitHubRepo)

// GitHubRelease represents a GitHub release.
type GitHubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// CheckResult holds the result of a version check.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	ReleaseURL      string
}

// Checker performs the daily update check. dataDir holds the marker file.
type Checker struct {
	dataDir string
	client  *http.Client
}

// NewChecker creates a checker storing its marker under dataDir.
func NewChecker(dataDir string) *Checker {
	return &Checker{
		dataDir: dataDir,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// CheckForUpdate checks if a newer version is available.
// Returns nil if the check should be skipped (checked recently) or on error.
func (c *Checker) CheckForUpdate(ctx context.Context, currentVersion string) *CheckResult {
	// Skip if running dev version
	if currentVersion == "dev" || currentVersion == "" {
		return nil
	}

	if c.shouldSkipCheck() {
		return nil
	}
	c.markChecked()

	latest, err := c.fetchLatestRelease(ctx)
	if err != nil {
		return nil // Silently fail - don't block user
	}

	latestClean := strings.TrimPrefix(latest.TagName, "v")
	currentClean := strings.TrimPrefix(currentVersion, "v")

	if isNewerVersion(latestClean, currentClean) {
		return &CheckResult{
			CurrentVersion:  currentVersion,
			LatestVersion:   latest.TagName,
			UpdateAvailable: true,
			ReleaseURL:      latest.HTMLURL,
		}
	}
	return nil
}

// PrintUpdateNotice prints a notice if an update is available.
func PrintUpdateNotice(result *CheckResult) {
	if result == nil || !result.UpdateAvailable {
		return
	}

	fmt.Println()
	fmt.Printf("%s A new version of lumina is available: %s (you have %s)\n",
		tui.WarningStyle.Render("!"),
		tui.SuccessStyle.Render(result.LatestVersion),
		result.CurrentVersion,
	)
	fmt.Printf("  Update: %s\n", tui.HelpStyle.Render("go install github.com/dhabedank/lumina@latest"))
	if result.ReleaseURL != "" {
		fmt.Printf("  Notes:  %s\n", tui.HelpStyle.Render(result.ReleaseURL))
	}
	fmt.Println()
}

func (c *Checker) fetchLatestRelease(ctx context.Context) (*GitHubRelease, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releaseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned %d", resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, err
	}
	return &release, nil
}

func (c *Checker) markerPath() string {
	return filepath.Join(c.dataDir, ".last-update-check")
}

// shouldSkipCheck returns true if we checked recently.
func (c *Checker) shouldSkipCheck() bool {
	info, err := os.Stat(c.markerPath())
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) < CheckInterval
}

// markChecked touches the marker file.
func (c *Checker) markChecked() {
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return
	}
	path := c.markerPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		_ = os.WriteFile(path, []byte{}, 0o644)
	} else {
		now := time.Now()
		_ = os.Chtimes(path, now, now)
	}
}

// isNewerVersion returns true if latest is newer than current.
// Simple comparison: splits by dots and compares numerically.
func isNewerVersion(latest, current string) bool {
	latestParts := strings.Split(latest, ".")
	currentParts := strings.Split(current, ".")

	for i := 0; i < len(latestParts) && i < len(currentParts); i++ {
		l := parseVersionPart(latestParts[i])
		c := parseVersionPart(currentParts[i])

		if l > c {
			return true
		}
		if l < c {
			return false
		}
	}

	// If all compared parts are equal, longer version is newer
	return len(latestParts) > len(currentParts)
}

// parseVersionPart extracts a number from a version part (e.g., "1" from "1-beta").
func parseVersionPart(s string) int {
	var n int
	_, _ = fmt.Sscanf(s, "%d", &n)
	return n
}
