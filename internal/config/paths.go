package config

import (
	"os"
	"path/filepath"
)

const (
	// MetaDirName is the name of the vault-local metadata directory
	MetaDirName = ".akn"
	// VaultEnv is the environment variable overriding vault discovery
	VaultEnv = "AKN_VAULT"
	// KnowledgeDirName marks a directory as a content vault
	KnowledgeDirName = "knowledge"
	// ContentDirName is the content root inside a site repository
	ContentDirName = "content"
)

// FindVaultRoot resolves the content vault path. Precedence: the
// AKN_VAULT environment variable, then the nearest ancestor of the
// working directory that contains knowledge/ (directly or under
// content/), then the working directory itself.
func FindVaultRoot() string {
	if v := os.Getenv(VaultEnv); v != "" {
		return v
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		if isVault(dir) {
			return dir
		}
		nested := filepath.Join(dir, ContentDirName)
		if isVault(nested) {
			return nested
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd
}

func isVault(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, KnowledgeDirName))
	return err == nil && info.IsDir()
}

// MetaDir returns the vault-local metadata directory
func MetaDir(vaultPath string) string {
	return filepath.Join(vaultPath, MetaDirName)
}

// IndexDBPath returns the search index database path
func IndexDBPath(vaultPath string) string {
	return filepath.Join(MetaDir(vaultPath), "index.db")
}

// HistoryDBPath returns the validation history database path
func HistoryDBPath(vaultPath string) string {
	return filepath.Join(MetaDir(vaultPath), "akn.db")
}

// ContentIndexPath returns the generated content index path
func ContentIndexPath(vaultPath string) string {
	return filepath.Join(MetaDir(vaultPath), "content-index.json")
}

// ReportJSONPath returns the machine-readable validation report path
func ReportJSONPath(vaultPath string) string {
	return filepath.Join(MetaDir(vaultPath), "validation-report.json")
}

// ReportMarkdownPath returns the human-readable validation report path
func ReportMarkdownPath(vaultPath string) string {
	return filepath.Join(MetaDir(vaultPath), "validation-report.md")
}

// EnsureMetaDir creates the metadata directory if needed
func EnsureMetaDir(vaultPath string) error {
	return os.MkdirAll(MetaDir(vaultPath), 0755)
}
