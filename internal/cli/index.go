package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/n0roo/akn-kit/internal/config"
	"github.com/n0roo/akn-kit/internal/content"
	"github.com/n0roo/akn-kit/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "콘텐츠 인덱스 생성",
	Long: `볼트 전체를 읽어 콘텐츠 인덱스를 생성합니다.

생성물:
  .akn/content-index.json   전체 스냅샷 (통계 포함)
  .akn/index.db             전문 검색 색인 (SQLite FTS)`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	vault := GetVaultPath()

	log("[index] Building content index...")

	loader := content.NewLoader(vault)
	ix, err := index.Build(loader)
	if err != nil {
		return err
	}

	log("[index] Found %d knowledge entries", len(ix.Entries))
	log("[index] Found %d domain metadata files", len(ix.Domains))
	log("[index] Found %d stories", len(ix.Stories))
	log("[index] Found %d blog posts", len(ix.BlogPosts))
	log("[index] Found %d pages", len(ix.Pages))

	indexPath := config.ContentIndexPath(vault)
	if err := ix.WriteFile(indexPath); err != nil {
		return err
	}
	log("[index] Index written to %s", indexPath)

	searchSvc := index.NewSearchService(config.IndexDBPath(vault))
	if err := searchSvc.Open(); err != nil {
		return err
	}
	defer searchSvc.Close()

	indexed, err := searchSvc.Rebuild(ix.Entries)
	if err != nil {
		return err
	}
	log("[index] Search index rebuilt: %d entries", indexed)

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"entries":              len(ix.Entries),
			"domains":              len(ix.Domains),
			"stories":              len(ix.Stories),
			"blog_posts":           len(ix.BlogPosts),
			"pages":                len(ix.Pages),
			"indexed":              indexed,
			"generated_at":         ix.GeneratedAt,
			"schema_completeness":  ix.AggregateStats.SchemaCompleteness,
			"domain_balance_index": ix.AggregateStats.DomainBalanceIndex,
		})
	}

	fmt.Println("✅ 인덱스 생성 완료")
	fmt.Printf("   항목: %d개\n", len(ix.Entries))
	fmt.Printf("   스키마 완성도: %.1f%%\n", ix.AggregateStats.SchemaCompleteness)
	fmt.Printf("   도메인 균형 지수: %.2f\n", ix.AggregateStats.DomainBalanceIndex)

	return nil
}
