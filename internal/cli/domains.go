package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/n0roo/akn-kit/internal/content"
	"github.com/n0roo/akn-kit/internal/knowledge"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "도메인 목록",
	Long:  `도메인 분류체계와 항목 수를 표시합니다.`,
	RunE:  runDomains,
}

var domainsShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "도메인 상세",
	Long:  `한 도메인의 서브도메인 분류와 설명을 표시합니다.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDomainsShow,
}

func init() {
	rootCmd.AddCommand(domainsCmd)
	domainsCmd.AddCommand(domainsShowCmd)
}

func runDomains(cmd *cobra.Command, args []string) error {
	vault := GetVaultPath()

	loader := content.NewLoader(vault)
	entries, err := loader.Entries()
	if err != nil {
		return fmt.Errorf("엔트리 로드 실패: %w", err)
	}
	metas, err := loader.DomainMetas()
	if err != nil {
		return fmt.Errorf("도메인 메타 로드 실패: %w", err)
	}

	counts := make(map[knowledge.Domain]int)
	for i := range entries {
		counts[entries[i].Domain]++
	}

	if jsonOut {
		type row struct {
			knowledge.DomainMeta
			EntryCount int `json:"entry_count"`
		}
		rows := make([]row, 0, len(metas))
		for _, meta := range metas {
			rows = append(rows, row{DomainMeta: meta, EntryCount: counts[meta.Slug]})
		}
		return json.NewEncoder(os.Stdout).Encode(rows)
	}

	fmt.Println("🌐 도메인")
	fmt.Println()
	for _, meta := range metas {
		icon := meta.Icon
		if icon == "" {
			icon = knowledge.DomainIcons[meta.Slug]
		}
		fmt.Printf("  [%-8s] %-32s %s  항목 %d개, 서브도메인 %d개\n",
			icon, meta.Name, meta.Slug, counts[meta.Slug], len(meta.Subdomains))
	}

	return nil
}

func runDomainsShow(cmd *cobra.Command, args []string) error {
	vault := GetVaultPath()
	slug := knowledge.Domain(args[0])

	if !slug.IsValid() {
		return fmt.Errorf("알 수 없는 도메인: %s", args[0])
	}

	loader := content.NewLoader(vault)
	meta, err := loader.DomainMeta(slug)
	if err != nil {
		return fmt.Errorf("도메인 메타 로드 실패: %w", err)
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(meta)
	}

	fmt.Printf("🌐 %s (%s)\n", meta.Name, meta.Slug)
	if meta.Description != "" {
		fmt.Printf("   %s\n", meta.Description)
	}
	color := meta.Color
	if color == "" {
		color = knowledge.DomainColors[slug]
	}
	fmt.Printf("   색상 %s\n", color)
	fmt.Println()
	fmt.Println("  서브도메인:")
	for _, sub := range meta.Subdomains {
		fmt.Printf("    %-24s %s\n", sub.Slug, sub.Name)
		if verbose && sub.Description != "" {
			fmt.Printf("      %s\n", sub.Description)
		}
	}

	return nil
}
