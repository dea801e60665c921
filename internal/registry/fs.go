package registry

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Loader is the asset/registry file access contract. The compiler calls
// it only while populating registries, never mid-pipeline. Implementations
// must enforce the path-traversal guard in ResolvePath.
type Loader interface {
	FileExists(path string) bool
	LoadFile(path string) (string, error)
	// ResolvePath resolves a relative import against the importing file.
	// The result must not escape the importing file's directory.
	ResolvePath(sourcePath, relativePath string) (string, error)
}

// FileError reports a failed file load.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// SecurityError reports a relative import that attempted to escape its
// source file's directory.
type SecurityError struct {
	SourcePath   string
	RelativePath string
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("import %q escapes the directory of %q", e.RelativePath, e.SourcePath)
}

// DirLoader is the OS-backed Loader used by the CLI.
type DirLoader struct{}

// FileExists implements Loader.
func (DirLoader) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadFile implements Loader.
func (DirLoader) LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileError{Path: path, Err: err}
	}
	return string(data), nil
}

// ResolvePath implements Loader. The source may be a plain filesystem
// path or a file:// URI, as parser exports carry the latter. Absolute
// imports and imports that resolve outside the source file's directory
// are rejected.
func (DirLoader) ResolvePath(sourcePath, relativePath string) (string, error) {
	if filepath.IsAbs(relativePath) {
		return "", &SecurityError{SourcePath: sourcePath, RelativePath: relativePath}
	}

	base := filepath.Dir(uriToPath(sourcePath))
	resolved := filepath.Clean(filepath.Join(base, relativePath))

	cleanBase := filepath.Clean(base)
	if resolved != cleanBase && !strings.HasPrefix(resolved, cleanBase+string(filepath.Separator)) {
		return "", &SecurityError{SourcePath: sourcePath, RelativePath: relativePath}
	}

	return resolved, nil
}

// uriToPath converts a file:// URI to a filesystem path, decoding any
// percent-escapes. Plain paths pass through unchanged.
func uriToPath(source string) string {
	if !strings.HasPrefix(source, "file://") {
		return source
	}
	u, err := url.Parse(source)
	if err != nil || u.Path == "" {
		return strings.TrimPrefix(source, "file://")
	}
	return filepath.FromSlash(u.Path)
}
