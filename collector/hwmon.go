package collector

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fantop/fantop/util"
)

// DefaultHwmonRoot is where the kernel exposes hwmon chips.
const DefaultHwmonRoot = "/sys/class/hwmon"

// FindChip locates the hwmon directory whose name attribute matches chip.
// Hwmon indices are not stable across boots, so chips are addressed by
// driver name rather than by hwmonN path.
func FindChip(root, chip string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", root, err)
	}
	for _, e := range entries {
		dir := filepath.Join(root, e.Name())
		name, err := util.ReadFileString(filepath.Join(dir, "name"))
		if err != nil {
			continue
		}
		if name == chip {
			return dir, nil
		}
	}
	return "", fmt.Errorf("hwmon chip %q not found under %s", chip, root)
}
