package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/greencarbon/internal/cli"
	"github.com/theirongolddev/greencarbon/internal/intake"
	"github.com/theirongolddev/greencarbon/internal/report"
	"github.com/theirongolddev/greencarbon/internal/submit"
	"github.com/theirongolddev/greencarbon/internal/tui/components"
	"github.com/theirongolddev/greencarbon/internal/tui/theme"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagPredictFile  string
	flagPredictText  string
	flagPredictDate  string
	flagPredictJSON  bool
	flagPredictTable bool
)

const predictCardWidth = 80

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Submit spending data once and print the report",
	Example: `  greencarbon predict --file spending.csv
  greencarbon predict --text "스타벅스 5000원, 지하철 1400원" --date 2024-03-01
  cat notes.txt | greencarbon predict --text - --json`,
	Args: cobra.NoArgs,
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().StringVarP(&flagPredictFile, "file", "f", "", "Spending CSV file")
	predictCmd.Flags().StringVarP(&flagPredictText, "text", "t", "", "Free-form spending text (- reads stdin)")
	predictCmd.Flags().StringVar(&flagPredictDate, "date", "", "Default date for undated entries (YYYY-MM-DD)")
	predictCmd.Flags().BoolVar(&flagPredictJSON, "json", false, "Print the raw result list as JSON")
	predictCmd.Flags().BoolVar(&flagPredictTable, "table", false, "Print a compact table instead of cards (ignored with --json)")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, _ []string) error {
	in, err := predictInput(cmd.InOrStdin())
	if err != nil {
		return err
	}

	client := newClient(appCfg)
	ctrl := submit.NewController(client, zap.L())

	if !flagQuiet && in.CanSubmit() {
		fmt.Fprintf(os.Stderr, "  Sending %s to %s\n",
			strings.Join(in.Payload().Fields(), " + "), client.Endpoint())
	}

	start := time.Now()
	out := ctrl.Submit(cmd.Context(), in)
	if out.Phase() == submit.Failed {
		return errors.New(out.Message())
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Received %d months in %s\n",
			len(out.Results()), cli.FormatElapsed(time.Since(start)))
	}

	return writeReport(cmd.OutOrStdout(), out)
}

// predictInput builds the intake state from flags. "-" as text reads stdin.
func predictInput(stdin io.Reader) (intake.State, error) {
	var in intake.State

	if flagPredictFile != "" {
		blob, err := intake.LoadFile(flagPredictFile)
		if err != nil {
			return in, err
		}
		in.SetFile(blob)
	}

	text := flagPredictText
	if text == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return in, eris.Wrap(err, "reading stdin")
		}
		text = string(data)
	}
	in.SetText(text)
	in.SetDate(flagPredictDate)

	return in, nil
}

func writeReport(w io.Writer, out submit.Outcome) error {
	results := out.Results()

	if flagPredictJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return eris.Wrap(err, "encoding results")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	cards := report.NewRenderer(appCfg.Display.Tag()).Render(results)
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, "\n  분석할 소비 내역이 없어요.")
		return err
	}

	if flagPredictTable {
		_, err := fmt.Fprint(w, cli.RenderTable(reportTable(cards)))
		return err
	}

	theme.SetActive(appCfg.Appearance.Theme)
	_, err := fmt.Fprintln(w, components.ResultSection(cards, predictCardWidth))
	return err
}

// reportTable lays cards out one month per row, KPI columns in card order.
func reportTable(cards []report.Card) cli.Table {
	t := cli.Table{
		Title:   report.SectionTitle,
		Headers: []string{"월", "유형"},
	}
	for _, k := range cards[0].KPIs {
		t.Headers = append(t.Headers, k.Label)
	}
	t.Headers = append(t.Headers, "추천")

	for _, c := range cards {
		row := []string{c.Month, c.Cluster}
		for _, k := range c.KPIs {
			row = append(row, k.Value)
		}
		row = append(row, fmt.Sprintf("%d", len(c.Recommendations)))
		t.Rows = append(t.Rows, row)
	}
	return t
}
