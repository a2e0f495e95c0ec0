package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/n0roo/akn-kit/internal/content"
	"github.com/n0roo/akn-kit/internal/knowledge"
	"github.com/n0roo/akn-kit/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "지식 베이스 통계",
	Long:  `전체 및 도메인별 통계를 산출합니다. 발행된 항목만 집계합니다.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	vault := GetVaultPath()

	loader := content.NewLoader(vault)
	entries, err := loader.Entries()
	if err != nil {
		return fmt.Errorf("엔트리 로드 실패: %w", err)
	}
	domains, err := loader.DomainMetas()
	if err != nil {
		return fmt.Errorf("도메인 메타 로드 실패: %w", err)
	}

	domainStats := stats.ComputeDomainStats(entries, domains)
	aggregate := stats.ComputeAggregateStats(entries, domains)

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"aggregate": aggregate,
			"domains":   domainStats,
		})
	}

	fmt.Println("📊 지식 베이스 통계")
	fmt.Println()
	fmt.Printf("  항목:       %d개\n", aggregate.TotalEntries)
	fmt.Printf("  인용:       %d개 (항목당 %.2f)\n", aggregate.TotalCitations, aggregate.AverageCitationDensity)
	fmt.Printf("  상호 참조:  %d개 (도메인 간 %.1f%%)\n", aggregate.TotalCrossReferences, aggregate.CrossDomainReferencePercentage)
	fmt.Printf("  파라미터:   %d개\n", aggregate.TotalParameters)
	fmt.Printf("  미해결 질문: %d개\n", aggregate.TotalOpenQuestions)
	fmt.Println()
	fmt.Printf("  스키마 완성도:    %.1f%%\n", aggregate.SchemaCompleteness)
	fmt.Printf("  고아 항목 비율:   %.1f%%\n", aggregate.OrphanEntryRate)
	fmt.Printf("  도메인 균형 지수: %.2f\n", aggregate.DomainBalanceIndex)
	fmt.Println()

	fmt.Println("  KEDL 분포:")
	for _, level := range knowledge.KEDLLevels {
		key := strconv.Itoa(int(level))
		if count := aggregate.KEDLDistribution[key]; count > 0 {
			fmt.Printf("    %s %-12s %d개\n", key, knowledge.KEDLInfo[level].Name, count)
		}
	}
	fmt.Println()

	fmt.Println("  신뢰도 분포:")
	for _, level := range knowledge.ConfidenceLevels {
		key := strconv.Itoa(int(level))
		if count := aggregate.ConfidenceDistribution[key]; count > 0 {
			fmt.Printf("    CL%s %-12s %d개\n", key, knowledge.ConfidenceInfo[level].Name, count)
		}
	}
	fmt.Println()

	fmt.Println("  도메인별:")
	for _, ds := range domainStats {
		fmt.Printf("    %-28s %3d개  CL %.2f  질문 %d개\n",
			ds.Name, ds.EntryCount, ds.AverageConfidence, ds.OpenQuestionCount)
	}

	return nil
}
