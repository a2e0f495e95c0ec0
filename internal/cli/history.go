package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/n0roo/akn-kit/internal/config"
	"github.com/n0roo/akn-kit/internal/db"
	"github.com/n0roo/akn-kit/internal/history"
	"github.com/n0roo/akn-kit/internal/validate"
)

var (
	historyLimit  int
	historyFailed bool
	historyCSV    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "검증 실행 이력",
	Long:  `기록된 검증 실행을 조회합니다.`,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "실행 상세",
	Long:  `한 실행의 리포트 전체를 표시합니다.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "결과 수 제한")
	historyCmd.Flags().BoolVar(&historyFailed, "failed", false, "실패한 실행만")
	historyCmd.Flags().BoolVar(&historyCSV, "csv", false, "CSV 출력")
}

func openHistory() (*db.DB, *history.Service, error) {
	database, err := db.Open(config.HistoryDBPath(GetVaultPath()))
	if err != nil {
		return nil, nil, err
	}
	return database, history.NewService(database), nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	database, histSvc, err := openHistory()
	if err != nil {
		return err
	}
	defer database.Close()

	filter := history.Filter{
		Limit:      historyLimit,
		FailedOnly: historyFailed,
	}

	if historyCSV {
		out, err := histSvc.ExportCSV(filter)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}

	runs, total, err := histSvc.List(filter)
	if err != nil {
		return err
	}

	if jsonOut {
		if runs == nil {
			runs = []history.Run{}
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"total": total,
			"runs":  runs,
		})
	}

	if len(runs) == 0 {
		fmt.Println("기록된 실행 없음")
		return nil
	}

	fmt.Printf("🕘 검증 실행 이력 (%d건 중 %d건)\n\n", total, len(runs))
	for _, run := range runs {
		status := "✅"
		if !run.Passed {
			status = "❌"
		}
		mode := ""
		if run.Strict {
			mode = " [strict]"
		}
		fmt.Printf("  %s %s  %s%s\n", status, run.StartedAt.Format("2006-01-02 15:04:05"), run.ID, mode)
		fmt.Printf("     항목 %d개, 오류 %d, 경고 %d, 정보 %d\n",
			run.TotalEntries, run.Errors, run.Warnings, run.Info)
	}

	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	database, histSvc, err := openHistory()
	if err != nil {
		return err
	}
	defer database.Close()

	run, report, err := histSvc.Get(args[0])
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"run":    run,
			"report": report,
		})
	}

	fmt.Print(validate.FormatReport(report))
	return nil
}
