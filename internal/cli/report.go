package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/n0roo/akn-kit/internal/config"
	"github.com/n0roo/akn-kit/internal/tui"
	"github.com/n0roo/akn-kit/internal/validate"
)

var reportTUI bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "최근 검증 리포트 보기",
	Long: `마지막 'akn validate' 실행의 리포트를 표시합니다.

--tui 옵션으로 터미널 대시보드를 실행할 수 있습니다.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolVar(&reportTUI, "tui", false, "터미널 대시보드 실행")
}

func runReport(cmd *cobra.Command, args []string) error {
	vault := GetVaultPath()

	if reportTUI {
		return tui.Run(vault)
	}

	raw, err := os.ReadFile(config.ReportJSONPath(vault))
	if err != nil {
		return fmt.Errorf("리포트가 없습니다. 'akn validate'를 먼저 실행하세요")
	}

	if jsonOut {
		os.Stdout.Write(raw)
		return nil
	}

	var report validate.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return fmt.Errorf("리포트 파싱 실패: %w", err)
	}

	fmt.Print(validate.FormatReport(&report))
	return nil
}
