// Package version locates installed controller runtimes and gates the
// software versions this wrapper is willing to drive.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/aretw0/mcdgen/pkg/domain"
)

// Install describes one discovered controller runtime install.
type Install struct {
	// Version is the install directory name, e.g. "2.11.3".
	Version string
	// Dir is the version directory under the install root.
	Dir string
	// BinDir is the runtime support library directory inside Dir.
	BinDir string
}

// binSubdir is where each versioned install keeps its runtime libraries.
var binSubdir = filepath.Join("release", "Bin")

// Discover returns the newest install under root. Candidate directories
// are those whose name begins with a digit; they are ordered by
// major.minor.patch descending. domain.ErrInstallNotFound is returned when
// the root is missing or holds no candidates. An install whose support
// directory is absent is an error: the install is present but unusable.
func Discover(root string) (*Install, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrInstallNotFound
		}
		return nil, fmt.Errorf("scan install root: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() && len(name) > 0 && name[0] >= '0' && name[0] <= '9' {
			names = append(names, name)
		}
	}
	latest := Latest(names)
	if latest == "" {
		return nil, domain.ErrInstallNotFound
	}

	dir := filepath.Join(root, latest)
	binDir := filepath.Join(dir, binSubdir)
	if _, err := os.Stat(binDir); err != nil {
		return nil, fmt.Errorf("runtime support directory %s: %w", binDir, err)
	}
	return &Install{Version: latest, Dir: dir, BinDir: binDir}, nil
}

// Latest returns the highest version name in the list, or "" when the
// list is empty.
func Latest(names []string) string {
	if len(names) == 0 {
		return ""
	}
	sorted := append([]string(nil), names...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Compare(sorted[i], sorted[j]) > 0
	})
	return sorted[0]
}

// Compare orders two dotted version names. Both are compared as semantic
// versions when they parse as such; otherwise the comparison falls back to
// an elementwise numeric-tuple comparison of their dot-separated fields.
func Compare(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}
	return tupleCompare(a, b)
}

// tupleCompare mirrors a plain integer-tuple comparison of the numeric
// dot-separated fields, ignoring fields that are not purely numeric.
func tupleCompare(a, b string) int {
	ta, tb := numericFields(a), numericFields(b)
	for i := 0; i < len(ta) && i < len(tb); i++ {
		if ta[i] != tb[i] {
			if ta[i] > tb[i] {
				return 1
			}
			return -1
		}
	}
	switch {
	case len(ta) > len(tb):
		return 1
	case len(ta) < len(tb):
		return -1
	}
	return 0
}

func numericFields(v string) []int {
	var out []int
	for _, f := range strings.Split(v, ".") {
		n, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
