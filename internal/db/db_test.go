package db

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dir, err := os.MkdirTemp("", "akn-test-*")
	if err != nil {
		t.Fatalf("임시 디렉토리 생성 실패: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	d, err := Open(filepath.Join(dir, "akn.db"))
	if err != nil {
		t.Fatalf("DB 열기 실패: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestOpenCreatesSchema(t *testing.T) {
	d := setupTestDB(t)

	for _, table := range []string{"runs", "run_issues", "metadata"} {
		var name string
		err := d.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Errorf("%s 테이블이 없음: %v", table, err)
		}
	}
}

func TestOpenCreatesParentDir(t *testing.T) {
	dir, err := os.MkdirTemp("", "akn-test-*")
	if err != nil {
		t.Fatalf("임시 디렉토리 생성 실패: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, ".akn", "nested", "akn.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("DB 열기 실패: %v", err)
	}
	defer d.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("DB 파일이 생성되지 않음: %v", err)
	}
	if d.Path() != path {
		t.Errorf("Path() = %s, want %s", d.Path(), path)
	}
}

func TestGetVersion(t *testing.T) {
	d := setupTestDB(t)

	version, err := d.GetVersion()
	if err != nil {
		t.Fatalf("버전 조회 실패: %v", err)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	d := setupTestDB(t)

	if err := d.Init(); err != nil {
		t.Fatalf("재초기화 실패: %v", err)
	}
	version, err := d.GetVersion()
	if err != nil {
		t.Fatalf("버전 조회 실패: %v", err)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}
}
