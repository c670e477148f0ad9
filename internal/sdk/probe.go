package sdk

import (
	"iter"
	"os"
	"path/filepath"
)

// Vendor SDK layouts, relative to a discovered SDK directory. Order matters:
// the first layout holding the marker wins.
var (
	vendorIncludeLayouts = [][]string{{"include"}, {"include", archPlaceholder}, {"Headers"}}
	vendorLibLayouts     = [][]string{{"lib"}, {"lib", archPlaceholder}, {"Libs"}}
)

const archPlaceholder = "$arch"

// layoutDirs yields every (root, layout) directory in enumeration order:
// all layouts of the first root, then all layouts of the second, and so on.
func layoutDirs(roots []string, layouts [][]string, arch string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, root := range roots {
			for _, layout := range layouts {
				parts := make([]string, 0, len(layout)+1)
				parts = append(parts, root)
				for _, p := range layout {
					if p == archPlaceholder {
						p = arch
					}
					parts = append(parts, p)
				}
				if !yield(filepath.Join(parts...)) {
					return
				}
			}
		}
	}
}

// firstWithMarker returns the first directory from dirs that contains marker,
// or "" if none does. Evaluation stops at the first hit.
func (l *Locator) firstWithMarker(dirs iter.Seq[string], marker string) string {
	for dir := range dirs {
		if l.hasMarker(dir, marker) {
			return dir
		}
	}
	return ""
}

// hasMarker checks for dir/marker and reports misses to the reporter.
func (l *Locator) hasMarker(dir, marker string) bool {
	ok := exists(filepath.Join(dir, marker))
	l.logger.Debug("probe", "dir", dir, "marker", marker, "found", ok)
	if !ok {
		l.reporter.ProbeMissed(dir, marker)
	}
	return ok
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
