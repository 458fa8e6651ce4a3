package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mgarrido/harvest-export/internal/config"
	"github.com/mgarrido/harvest-export/internal/harvest"
	"github.com/mgarrido/harvest-export/internal/logging"
	"github.com/mgarrido/harvest-export/internal/pipeline"
	"github.com/mgarrido/harvest-export/internal/sheets"
)

var (
	flagFromDate  string
	flagToDate    string
	flagLastMonth bool
	flagOutput    string
	flagJSON      string
	flagUser      string
	flagDebug     bool
)

var rootCmd = &cobra.Command{
	Use:   "harvest-export",
	Short: "Export Harvest time entries to CSV and Google Sheets",
	Long: `harvest-export pulls time entries from the Harvest API for one or
more identities configured in the environment, writes them as CSV, and
optionally uploads the result to a Google Sheets tab.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// Execute is the entry point called from main. The .env file is loaded
// here, not in the command body, so tests drive runExport against a
// controlled environment.
func Execute() {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&flagFromDate, "from-date", "", "Start date (YYYY-MM-DD), requires --to-date")
	rootCmd.Flags().StringVar(&flagToDate, "to-date", "", "End date (YYYY-MM-DD), requires --from-date")
	rootCmd.Flags().BoolVar(&flagLastMonth, "last-month", false, "Export the previous calendar month")
	rootCmd.Flags().StringVar(&flagOutput, "output", "", "CSV output file (overrides CSV_OUTPUT_FILE)")
	rootCmd.Flags().StringVar(&flagJSON, "json", "", "Raw JSON output file (overrides RAW_JSON_FILE)")
	rootCmd.Flags().StringVar(&flagUser, "user", "", "Run only the identity with this env prefix")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logging.New(flagDebug)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var prefixes []string
	if flagUser != "" {
		prefixes = []string{config.NormalizePrefix(flagUser)}
	} else {
		prefixes = config.DetectPrefixes()
	}
	if len(prefixes) == 0 {
		return fmt.Errorf("no identities configured: set HARVEST_ACCOUNT_ID or a prefixed variant")
	}
	if flagLastMonth && (flagFromDate != "" || flagToDate != "") {
		return fmt.Errorf("--last-month cannot be combined with --from-date/--to-date")
	}

	opts := pipeline.Options{
		FlagFrom:       flagFromDate,
		FlagTo:         flagToDate,
		LastMonth:      flagLastMonth,
		OutputOverride: flagOutput,
		JSONOverride:   flagJSON,
	}

	failed := 0
	for _, prefix := range prefixes {
		id, err := config.Load(prefix, log)
		if err != nil {
			log.Errorf("%v", err)
			failed++
			continue
		}

		client := harvest.NewClient(id.AccountID, id.AuthToken, id.UserAgent, log)

		var factory pipeline.UploaderFactory
		if id.UploadEnabled {
			sa := id.ServiceAccount
			factory = func(ctx context.Context) (pipeline.Uploader, error) {
				return sheets.NewUploader(ctx, sa, log)
			}
		}

		if _, err := pipeline.Run(ctx, id, opts, client, factory, log); err != nil {
			log.Errorf("identity %q: %v", id.Name(), err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d identities failed", failed, len(prefixes))
	}
	return nil
}
