package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DevSandbox is the folder under the temp directory that receives re-rooted paths.
const DevSandbox = "instelle-dev"

// IsDevRun checks if the current process is running via `go run` or `go test`.
// Both build their binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}

	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveDataDir applies the dev safety rules to dir.
// When forceTemp is set, paths already inside the temp directory are kept
// and anything else is moved to <tmp>/instelle-dev/<base name of dir>.
func ResolveDataDir(dir string, forceTemp bool) string {
	if !forceTemp {
		return dir
	}

	clean := filepath.Clean(dir)
	if rel, err := filepath.Rel(os.TempDir(), clean); err == nil && filepath.IsAbs(clean) && !strings.HasPrefix(rel, "..") {
		return clean
	}

	sub := filepath.Base(clean)
	if dir == "" || sub == "." || sub == string(os.PathSeparator) {
		sub = "default"
	}
	return filepath.Join(os.TempDir(), DevSandbox, sub)
}
