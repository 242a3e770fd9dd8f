package director

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
)

var assetExtensions = []string{".yaml", ".yml", ".json"}

// GenerateAssetPath creates a timestamped asset filename inside dir
func GenerateAssetPath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("asset_%s.yaml", timestamp))
}

// IsAssetFile reports whether the file extension is one ReadAsset understands.
func IsAssetFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range assetExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FindLatestAsset finds the most recently modified asset file in dir
func FindLatestAsset(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read asset directory: %w", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}
	var assets []candidate
	for _, entry := range entries {
		if entry.IsDir() || !IsAssetFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		assets = append(assets, candidate{filepath.Join(dir, entry.Name()), info.ModTime()})
	}

	if len(assets) == 0 {
		return "", fmt.Errorf("no asset files found in %s", dir)
	}

	// Newest first
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].modTime.After(assets[j].modTime)
	})

	return assets[0].path, nil
}

// SplitCamelCase turns "PlayAnimationClip" into "Play Animation Clip".
func SplitCamelCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
