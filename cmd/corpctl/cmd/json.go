package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"corpkit/internal/logger"
	"corpkit/internal/models"
	"corpkit/pkg/jsoncodec"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

func newJSONCmd() *cobra.Command {
	jsonCmd := &cobra.Command{
		Use:   "json",
		Short: "Work with company JSON documents",
	}
	jsonCmd.AddCommand(newJSONConvertCmd(), newJSONPatternsCmd())
	return jsonCmd
}

func newJSONConvertCmd() *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Rewrite the dates of a company array read from stdin",
		Example: `  echo '[{"name":"Acme","expiresAt":"20300101"}]' | \
    corpctl json convert --from yyyyMMdd --to yyyy-MM-dd`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			level, _ := cmd.Flags().GetString("log-level")
			zone, _ := cmd.Flags().GetString("time-zone")

			loc, err := time.LoadLocation(zone)
			if err != nil {
				return fmt.Errorf("invalid time zone %q: %w", zone, err)
			}

			zl, err := logger.New(level)
			if err != nil {
				return err
			}
			defer zl.Sync() //nolint:errcheck

			codecs := jsoncodec.NewRegistry(jsoncodec.WithLogger(zl), jsoncodec.WithLocation(loc))
			if !codecs.Supports(from) || !codecs.Supports(to) {
				return fmt.Errorf("unsupported date pattern, supported: %v", codecs.Patterns())
			}

			input, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			companies, ok := jsoncodec.FromJSONWithPattern[[]models.Company](codecs, string(input), from)
			if !ok {
				return errors.New("input is not a company array in the source pattern")
			}
			out, ok := codecs.ToJSONWithPattern(companies, to)
			if !ok {
				return errors.New("failed to encode companies")
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	convertCmd.Flags().String("from", jsoncodec.DefaultPattern, "Date pattern of the input")
	convertCmd.Flags().String("to", jsoncodec.DefaultPattern, "Date pattern of the output")
	convertCmd.Flags().String("time-zone", "Local", "Time zone the dates are read and written in")
	return convertCmd
}

func newJSONPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the supported date patterns with an example of each",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			codecs := jsoncodec.NewRegistry(jsoncodec.WithLocation(time.UTC))
			sample := struct {
				At time.Time `json:"at"`
			}{At: time.Date(2024, 3, 9, 14, 5, 7, 123000000, time.UTC)}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetAutoWrapText(false)
			table.SetHeader([]string{"Pattern", "Example"})
			for _, p := range codecs.Patterns() {
				out, _ := codecs.ToJSONWithPattern(sample, p)
				table.Append([]string{p, gjson.Get(out, "at").String()})
			}
			table.Render()
		},
	}
}
