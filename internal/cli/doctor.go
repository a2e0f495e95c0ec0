package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/n0roo/akn-kit/internal/config"
	"github.com/n0roo/akn-kit/internal/content"
	"github.com/n0roo/akn-kit/internal/db"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "볼트 상태 확인",
	Long:  `볼트 구조와 생성물의 상태를 확인합니다.`,
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// CheckResult represents a single check result
type CheckResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // ok, warning, error
	Message string `json:"message"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	vault := GetVaultPath()
	var checks []CheckResult

	// 1. 시스템 정보
	checks = append(checks, CheckResult{
		Name:    "System",
		Status:  "ok",
		Message: fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	})

	// 2. 볼트 구조
	knowledgeDir := filepath.Join(vault, content.KnowledgeDir)
	if info, err := os.Stat(knowledgeDir); err == nil && info.IsDir() {
		checks = append(checks, CheckResult{
			Name:    "Vault",
			Status:  "ok",
			Message: vault,
		})
	} else {
		checks = append(checks, CheckResult{
			Name:    "Vault",
			Status:  "error",
			Message: fmt.Sprintf("knowledge/ 디렉토리 없음: %s", vault),
		})
	}

	// 3. 콘텐츠 로드
	loader := content.NewLoader(vault)
	if entries, err := loader.Entries(); err == nil {
		checks = append(checks, CheckResult{
			Name:    "Content",
			Status:  "ok",
			Message: fmt.Sprintf("발행 항목 %d개", len(entries)),
		})
	} else {
		checks = append(checks, CheckResult{
			Name:    "Content",
			Status:  "error",
			Message: fmt.Sprintf("로드 실패: %v", err),
		})
	}

	// 4. 콘텐츠 인덱스
	if info, err := os.Stat(config.ContentIndexPath(vault)); err == nil {
		checks = append(checks, CheckResult{
			Name:    "Content Index",
			Status:  "ok",
			Message: fmt.Sprintf("생성: %s", info.ModTime().Format("2006-01-02 15:04:05")),
		})
	} else {
		checks = append(checks, CheckResult{
			Name:    "Content Index",
			Status:  "warning",
			Message: "인덱스 없음 - 'akn index' 실행 필요",
		})
	}

	// 5. 검색 색인
	if _, err := os.Stat(config.IndexDBPath(vault)); err == nil {
		checks = append(checks, CheckResult{
			Name:    "Search Index",
			Status:  "ok",
			Message: config.IndexDBPath(vault),
		})
	} else {
		checks = append(checks, CheckResult{
			Name:    "Search Index",
			Status:  "warning",
			Message: "색인 없음 - 'akn index' 실행 필요",
		})
	}

	// 6. 이력 DB
	historyPath := config.HistoryDBPath(vault)
	if _, err := os.Stat(historyPath); err == nil {
		if database, err := db.Open(historyPath); err == nil {
			version, _ := database.GetVersion()
			database.Close()
			checks = append(checks, CheckResult{
				Name:    "History DB",
				Status:  "ok",
				Message: fmt.Sprintf("v%d (%s)", version, historyPath),
			})
		} else {
			checks = append(checks, CheckResult{
				Name:    "History DB",
				Status:  "error",
				Message: fmt.Sprintf("열기 실패: %v", err),
			})
		}
	} else {
		checks = append(checks, CheckResult{
			Name:    "History DB",
			Status:  "warning",
			Message: "DB 파일 없음 - 첫 'akn validate'에서 생성됨",
		})
	}

	// 7. 검증 리포트
	if info, err := os.Stat(config.ReportJSONPath(vault)); err == nil {
		checks = append(checks, CheckResult{
			Name:    "Report",
			Status:  "ok",
			Message: fmt.Sprintf("생성: %s", info.ModTime().Format("2006-01-02 15:04:05")),
		})
	} else {
		checks = append(checks, CheckResult{
			Name:    "Report",
			Status:  "warning",
			Message: "리포트 없음 - 'akn validate' 실행 필요",
		})
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(checks)
	}

	fmt.Println("🩺 AKN Doctor")
	fmt.Println()

	hasError := false
	for _, check := range checks {
		icon := "✅"
		switch check.Status {
		case "warning":
			icon = "⚠️"
		case "error":
			icon = "❌"
			hasError = true
		}
		fmt.Printf("  %s %-14s %s\n", icon, check.Name, check.Message)
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("검사 실패 항목이 있습니다")
	}
	fmt.Println("모든 검사 통과")
	return nil
}
