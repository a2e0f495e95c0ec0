package cli

import (
	"github.com/spf13/cobra"

	"github.com/n0roo/akn-kit/internal/config"
)

var (
	vaultPath string
	verbose   bool
	jsonOut   bool
)

var rootCmd = &cobra.Command{
	Use:   "akn",
	Short: "아콜로지 지식 베이스 도구",
	Long: `AKN - 아콜로지 지식 베이스 도구

마크다운 지식 항목의 검증, 색인, 통계를 제공합니다.

주요 기능:
  - 검증: 스키마, 상호 참조, 인용, 파라미터 정합성 검사
  - 색인: 콘텐츠 인덱스 생성 및 전문 검색
  - 통계: 도메인별/전체 지표 산출
  - 이력: 검증 실행 기록 추적`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", "", "콘텐츠 볼트 경로 (기본: 자동 탐색)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "상세 출력")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "JSON 출력")
}

// GetVaultPath returns the resolved vault path
func GetVaultPath() string {
	if vaultPath != "" {
		return vaultPath
	}
	return config.FindVaultRoot()
}

// IsVerbose returns verbose flag
func IsVerbose() bool {
	return verbose
}

// IsJSON returns json output flag
func IsJSON() bool {
	return jsonOut
}
