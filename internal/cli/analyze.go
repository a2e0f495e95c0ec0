package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/n0roo/akn-kit/internal/analytics"
	"github.com/n0roo/akn-kit/internal/config"
)

var analyzeLimit int

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "콘텐츠 인덱스 분석",
	Long: `DuckDB로 콘텐츠 인덱스를 직접 질의합니다.

'akn index'로 생성한 content-index.json이 필요합니다.`,
	RunE: runAnalyzeDomains,
}

var analyzeDomainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "도메인별 집계",
	RunE:  runAnalyzeDomains,
}

var analyzeParamsCmd = &cobra.Command{
	Use:   "params [name]",
	Short: "파라미터 조회",
	Long:  `인덱스의 모든 파라미터 단언을 평탄화해 조회합니다. 이름 부분 일치 필터를 지원합니다.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyzeParams,
}

var analyzeKEDLCmd = &cobra.Command{
	Use:   "kedl",
	Short: "KEDL 분포",
	RunE:  runAnalyzeKEDL,
}

var analyzeQuestionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "미해결 질문 상위 항목",
	RunE:  runAnalyzeQuestions,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.AddCommand(analyzeDomainsCmd)
	analyzeCmd.AddCommand(analyzeParamsCmd)
	analyzeCmd.AddCommand(analyzeKEDLCmd)
	analyzeCmd.AddCommand(analyzeQuestionsCmd)

	analyzeQuestionsCmd.Flags().IntVar(&analyzeLimit, "limit", 20, "결과 수 제한")
}

func openAnalytics() (*analytics.AnalyticsDB, string, error) {
	vault := GetVaultPath()

	indexPath := config.ContentIndexPath(vault)
	if _, err := os.Stat(indexPath); err != nil {
		return nil, "", fmt.Errorf("인덱스가 없습니다. 'akn index'를 먼저 실행하세요")
	}

	adb, err := analytics.New(analytics.Config{
		DBPath: filepath.Join(config.MetaDir(vault), "analytics.duckdb"),
	})
	if err != nil {
		return nil, "", err
	}
	return adb, indexPath, nil
}

func runAnalyzeDomains(cmd *cobra.Command, args []string) error {
	adb, indexPath, err := openAnalytics()
	if err != nil {
		return err
	}
	defer adb.Close()

	rows, err := adb.DomainBreakdowns(context.Background(), indexPath)
	if err != nil {
		return err
	}

	if jsonOut {
		if rows == nil {
			rows = []analytics.DomainBreakdown{}
		}
		return json.NewEncoder(os.Stdout).Encode(rows)
	}

	fmt.Println("📊 도메인별 집계")
	fmt.Println()
	for _, r := range rows {
		fmt.Printf("  %-28s 항목 %3d개  CL %.2f  KEDL %.0f  파라미터 %d개\n",
			r.Domain, r.Entries, r.AvgConfidence, r.AvgKEDL, r.Parameters)
	}

	return nil
}

func runAnalyzeParams(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	adb, indexPath, err := openAnalytics()
	if err != nil {
		return err
	}
	defer adb.Close()

	rows, err := adb.Parameters(context.Background(), indexPath, name)
	if err != nil {
		return err
	}

	if jsonOut {
		if rows == nil {
			rows = []analytics.ParameterRow{}
		}
		return json.NewEncoder(os.Stdout).Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Println("파라미터 없음")
		return nil
	}

	fmt.Printf("📐 파라미터 (%d건)\n\n", len(rows))
	for _, r := range rows {
		fmt.Printf("  %-28s %12g %-10s CL%d  %s\n", r.Name, r.Value, r.Unit, r.Confidence, r.EntryID)
	}

	return nil
}

func runAnalyzeKEDL(cmd *cobra.Command, args []string) error {
	adb, indexPath, err := openAnalytics()
	if err != nil {
		return err
	}
	defer adb.Close()

	buckets, err := adb.KEDLDistribution(context.Background(), indexPath)
	if err != nil {
		return err
	}

	if jsonOut {
		if buckets == nil {
			buckets = []analytics.KEDLBucket{}
		}
		return json.NewEncoder(os.Stdout).Encode(buckets)
	}

	fmt.Println("📈 KEDL 분포")
	fmt.Println()
	for _, b := range buckets {
		fmt.Printf("  %3d  %d개\n", b.Level, b.Entries)
	}

	return nil
}

func runAnalyzeQuestions(cmd *cobra.Command, args []string) error {
	adb, indexPath, err := openAnalytics()
	if err != nil {
		return err
	}
	defer adb.Close()

	counts, err := adb.OpenQuestionCounts(context.Background(), indexPath, analyzeLimit)
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(counts)
	}

	if len(counts) == 0 {
		fmt.Println("미해결 질문 없음")
		return nil
	}

	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})

	fmt.Println("❓ 미해결 질문 상위 항목")
	fmt.Println()
	for _, id := range ids {
		fmt.Printf("  %3d개  %s\n", counts[id], id)
	}

	return nil
}
