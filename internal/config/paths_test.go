package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindVaultRootEnvOverride(t *testing.T) {
	t.Setenv(VaultEnv, "/srv/vault")

	if got := FindVaultRoot(); got != "/srv/vault" {
		t.Errorf("vault = %s, want /srv/vault", got)
	}
}

func TestFindVaultRootWalkUp(t *testing.T) {
	t.Setenv(VaultEnv, "")
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, KnowledgeDirName), 0o755); err != nil {
		t.Fatalf("디렉토리 생성 실패: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("디렉토리 생성 실패: %v", err)
	}
	t.Chdir(nested)

	got := FindVaultRoot()
	// 심볼릭 링크 해소로 경로 표기가 달라질 수 있으므로 말단만 비교
	if filepath.Base(got) != filepath.Base(root) {
		t.Errorf("vault = %s, want %s", got, root)
	}
}

func TestFindVaultRootContentSubdir(t *testing.T) {
	t.Setenv(VaultEnv, "")
	root := t.TempDir()
	vault := filepath.Join(root, ContentDirName)
	if err := os.MkdirAll(filepath.Join(vault, KnowledgeDirName), 0o755); err != nil {
		t.Fatalf("디렉토리 생성 실패: %v", err)
	}
	t.Chdir(root)

	got := FindVaultRoot()
	if filepath.Base(got) != ContentDirName {
		t.Errorf("vault = %s, want %s", got, vault)
	}
}

func TestMetaPaths(t *testing.T) {
	vault := "/srv/vault"
	cases := map[string]string{
		MetaDir(vault):            filepath.Join(vault, ".akn"),
		IndexDBPath(vault):        filepath.Join(vault, ".akn", "index.db"),
		HistoryDBPath(vault):      filepath.Join(vault, ".akn", "akn.db"),
		ContentIndexPath(vault):   filepath.Join(vault, ".akn", "content-index.json"),
		ReportJSONPath(vault):     filepath.Join(vault, ".akn", "validation-report.json"),
		ReportMarkdownPath(vault): filepath.Join(vault, ".akn", "validation-report.md"),
	}
	for got, want := range cases {
		if got != want {
			t.Errorf("경로 = %s, want %s", got, want)
		}
	}
}

func TestEnsureMetaDir(t *testing.T) {
	vault := t.TempDir()
	if err := EnsureMetaDir(vault); err != nil {
		t.Fatalf("메타 디렉토리 생성 실패: %v", err)
	}
	info, err := os.Stat(MetaDir(vault))
	if err != nil || !info.IsDir() {
		t.Errorf(".akn 디렉토리가 없음: %v", err)
	}
}
