package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/n0roo/akn-kit/internal/config"
	"github.com/n0roo/akn-kit/internal/content"
	"github.com/n0roo/akn-kit/internal/db"
	"github.com/n0roo/akn-kit/internal/history"
	"github.com/n0roo/akn-kit/internal/validate"
)

var (
	validateStrict    bool
	validateNoHistory bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "콘텐츠 검증 실행",
	Long: `지식 베이스 전체를 검증합니다.

검사 항목:
  - 스키마: 필수 필드, 열거값, 작성자, 요약 길이
  - 상호 참조: 깨진 링크, 자기 참조, 중복
  - 인용: 필수 필드, 연도, URL 형식
  - 파라미터: 누락 값, 신뢰도 범위, 항목 간 정합성
  - 고아 항목 및 KEDL 승급 후보

리포트는 .akn/validation-report.{json,md}에 저장됩니다.
오류가 있으면 종료 코드 1, --strict 모드에서는 경고만 있어도 1입니다.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "경고도 실패로 처리")
	validateCmd.Flags().BoolVar(&validateNoHistory, "no-history", false, "실행 기록 저장 안 함")
}

// log writes a diagnostic line to stderr, keeping stdout for the
// primary output
func log(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func runValidate(cmd *cobra.Command, args []string) error {
	vault := GetVaultPath()

	log("[validate] Running content validation...")

	loader := content.NewLoader(vault)
	entries, err := loader.Entries()
	if err != nil {
		return fmt.Errorf("엔트리 로드 실패: %w", err)
	}
	domains, err := loader.DomainMetas()
	if err != nil {
		return fmt.Errorf("도메인 메타 로드 실패: %w", err)
	}

	log("[validate] Found %d published entries across %d domains", len(entries), len(domains))

	report := validate.Run(entries, domains)

	if err := config.EnsureMetaDir(vault); err != nil {
		return fmt.Errorf("메타 디렉토리 생성 실패: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("리포트 직렬화 실패: %w", err)
	}
	if err := os.WriteFile(config.ReportJSONPath(vault), data, 0644); err != nil {
		return fmt.Errorf("리포트 저장 실패: %w", err)
	}
	if err := os.WriteFile(config.ReportMarkdownPath(vault), []byte(validate.FormatReport(report)), 0644); err != nil {
		return fmt.Errorf("리포트 저장 실패: %w", err)
	}

	log("[validate] Reports saved to %s", config.MetaDir(vault))

	if !validateNoHistory {
		if database, err := db.Open(config.HistoryDBPath(vault)); err == nil {
			histSvc := history.NewService(database)
			if runID, err := histSvc.Record(report, validateStrict); err == nil {
				if verbose {
					log("[validate] Run recorded: %s", runID)
				}
			} else if verbose {
				log("[validate] 실행 기록 실패: %v", err)
			}
			database.Close()
		} else if verbose {
			log("[validate] 이력 DB 열기 실패: %v", err)
		}
	}

	if jsonOut {
		os.Stdout.Write(data)
		fmt.Println()
	}

	log("")
	log("  Errors:   %d", report.Errors)
	log("  Warnings: %d", report.Warnings)
	log("  Info:     %d", report.Info)

	if report.Summary.CrossReferences.Broken > 0 {
		log("  Broken cross-refs: %d", report.Summary.CrossReferences.Broken)
	}
	if report.Summary.Orphans.Count > 0 {
		log("  Orphan entries: %d", report.Summary.Orphans.Count)
	}

	switch {
	case report.Errors > 0:
		log("\n[validate] FAILED: %d error(s) found.", report.Errors)
		os.Exit(1)
	case validateStrict && report.Warnings > 0:
		log("\n[validate] FAILED (strict mode): %d warning(s) found.", report.Warnings)
		os.Exit(1)
	default:
		log("\n[validate] PASSED")
	}

	return nil
}
