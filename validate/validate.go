// Command validate provides a small CLI that validates game settings JSON
// files in the ../configs directory. It checks:
//   - JSON structure and unknown fields
//   - Palette kind (none, int, hex)
//   - Ball lifetime constraints (non-negative, sane upper bound)
//   - File names matching a known game variant
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Settings mirrors the JSON schema for a game settings file.
type Settings struct {
	SpawnHeight    float64 `json:"spawnHeight"`
	Palette        string  `json:"palette"`
	Balls          bool    `json:"balls"`
	BallLifetimeMS int     `json:"ballLifetimeMs"`
}

// knownVariants lists the file basenames the server will actually load.
var knownVariants = map[string]bool{
	"pengstrike":             true,
	"climbandwin":            true,
	"climbandwin-standalone": true,
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateSettings loads and validates a single settings JSON file.
func validateSettings(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}
	fail := func(format string, args ...interface{}) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		fail("Failed to read file: %v", err)
		return result
	}

	// Catch typos in field names, not just type errors
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var settings Settings
	if err := dec.Decode(&settings); err != nil {
		fail("Invalid JSON: %v", err)
		return result
	}

	variant := strings.TrimSuffix(result.File, ".json")
	if !knownVariants[variant] {
		fail("File name %q does not match a known game variant", variant)
	}

	// An absent palette field decodes as "" and means "keep the default"
	switch settings.Palette {
	case "", "none", "int", "hex":
		if settings.Palette != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Palette: %s", settings.Palette))
		}
	default:
		fail("Unknown palette kind %q (expected none, int or hex)", settings.Palette)
	}

	if settings.BallLifetimeMS < 0 {
		fail("Ball lifetime must not be negative, got %d", settings.BallLifetimeMS)
	} else if settings.BallLifetimeMS > 600000 {
		fail("Ball lifetime %dms is over ten minutes; this is almost certainly a typo", settings.BallLifetimeMS)
	} else if settings.BallLifetimeMS > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Ball lifetime: %dms", settings.BallLifetimeMS))
	}

	if settings.BallLifetimeMS > 0 && !settings.Balls && variant != "pengstrike" {
		result.Errors = append(result.Errors, "Note: ball lifetime set but balls are disabled for this variant")
	}

	if settings.SpawnHeight < 0 {
		fail("Spawn height must not be negative, got %v", settings.SpawnHeight)
	} else if settings.SpawnHeight > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Spawn height: %v", settings.SpawnHeight))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding settings files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateSettings(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All settings files are valid!")
	} else {
		fmt.Println("❌ Some settings files have errors")
		os.Exit(1)
	}
}
