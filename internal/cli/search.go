package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/n0roo/akn-kit/internal/config"
	"github.com/n0roo/akn-kit/internal/index"
)

var (
	searchDomain        string
	searchSubdomain     string
	searchEntryType     string
	searchKEDLMin       int
	searchConfidenceMin int
	searchTags          []string
	searchLimit         int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "항목 검색",
	Long: `색인된 지식 항목을 전문 검색합니다.

필터 옵션:
  --domain          도메인
  --subdomain       서브도메인
  --type            항목 타입 (concept, analysis, specification, reference, open-question)
  --kedl-min        최소 KEDL 레벨
  --confidence-min  최소 신뢰도 (1-5)
  --tag             태그 (복수 지정 가능)
  --limit           결과 수 제한

검색 전에 'akn index'로 색인을 생성해야 합니다.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchDomain, "domain", "", "도메인 필터")
	searchCmd.Flags().StringVar(&searchSubdomain, "subdomain", "", "서브도메인 필터")
	searchCmd.Flags().StringVar(&searchEntryType, "type", "", "항목 타입 필터")
	searchCmd.Flags().IntVar(&searchKEDLMin, "kedl-min", 0, "최소 KEDL 레벨")
	searchCmd.Flags().IntVar(&searchConfidenceMin, "confidence-min", 0, "최소 신뢰도")
	searchCmd.Flags().StringSliceVar(&searchTags, "tag", nil, "태그 필터")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "결과 수 제한")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	vault := GetVaultPath()

	dbPath := config.IndexDBPath(vault)
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("색인이 없습니다. 'akn index'를 먼저 실행하세요")
	}

	searchSvc := index.NewSearchService(dbPath)
	if err := searchSvc.Open(); err != nil {
		return err
	}
	defer searchSvc.Close()

	opts := &index.SearchOptions{
		Domain:        searchDomain,
		Subdomain:     searchSubdomain,
		EntryType:     searchEntryType,
		KEDLMin:       searchKEDLMin,
		ConfidenceMin: searchConfidenceMin,
		Tags:          searchTags,
		Limit:         searchLimit,
	}

	results, err := searchSvc.Search(query, opts)
	if err != nil {
		return err
	}

	if jsonOut {
		if results == nil {
			results = []*index.SearchResult{}
		}
		return json.NewEncoder(os.Stdout).Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("검색 결과 없음")
		return nil
	}

	fmt.Printf("🔍 '%s' 검색 결과 (%d건)\n\n", query, len(results))

	for i, r := range results {
		fmt.Printf("%d. %s\n", i+1, r.Title)
		fmt.Printf("   📄 %s\n", r.ID)

		meta := []string{
			fmt.Sprintf("KEDL:%d", r.KEDL),
			fmt.Sprintf("CL:%d", r.Confidence),
		}
		if r.EntryType != "" {
			meta = append(meta, fmt.Sprintf("타입:%s", r.EntryType))
		}
		fmt.Printf("   %s\n", strings.Join(meta, " | "))

		if r.Summary != "" {
			fmt.Printf("   %s\n", r.Summary)
		}
		if len(r.Tags) > 0 {
			fmt.Printf("   🏷️  %s\n", strings.Join(r.Tags, ", "))
		}

		fmt.Println()
	}

	return nil
}
