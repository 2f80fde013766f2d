package version

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhabedank/lumina/internal/tui"
)

// IsFirstRun reports whether neither a config file nor the first-run
// marker in dataDir exists.
func IsFirstRun(dataDir, configPath string) bool {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return false
		}
	}
	if _, err := os.Stat(filepath.Join(dataDir, ".initialized")); err == nil {
		return false
	}
	return true
}

// MarkInitialized creates the first-run marker.
func MarkInitialized(dataDir string) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(dataDir, ".initialized"), []byte{}, 0o644)
}

// PrintFirstRunNotice prints a welcome message for first-time users and
// records that it was shown.
func PrintFirstRunNotice(dataDir string) {
	fmt.Println()
	fmt.Printf("%s Welcome to lumina!\n", tui.TitleStyle.Render("*"))
	fmt.Println()
	fmt.Println("  Quick start:")
	fmt.Printf("    1. Run %s to pick a recommendation model\n", tui.ModelStyle.Render("lumina setup"))
	fmt.Printf("    2. Sign in so you can archive bundles: %s\n", tui.ModelStyle.Render("lumina login"))
	fmt.Printf("    3. Start discovering: %s\n", tui.ModelStyle.Render("lumina"))
	fmt.Println()
	fmt.Printf("  %s\n", tui.HelpStyle.Render("Run 'lumina --help' for all commands"))
	fmt.Println()

	MarkInitialized(dataDir)
}
