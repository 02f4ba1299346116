package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pdpsim/datarecording"
)

var reportCmd = &cobra.Command{
	Use:   "report <recording.sqlite3>",
	Short: "Report the runs stored in a recording.",
	Long: "`report <recording.sqlite3>` prints the statistics of every run " +
		"in the recording. With --late, the late pickups and deliveries of " +
		"each run are listed too.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		late, _ := cmd.Flags().GetBool("late")
		return report(cmd.Context(), cmd.OutOrStdout(), args[0], late)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().Bool("late", false, "List the late activities of each run")
}

func report(ctx context.Context, w io.Writer, path string, late bool) error {
	reader, err := datarecording.NewReader(path)
	if err != nil {
		return fmt.Errorf("cannot open recording: %w", err)
	}
	defer reader.Close()

	datarecording.MapRunTables(reader)

	runs, err := datarecording.ReadStatistics(ctx, reader)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tDISTANCE\tPICKUPS\tDELIVERIES\tTARDINESS\t"+
		"OVERTIME\tFINISHED\tTIME\tCOMPUTATION")

	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%.4f %s\t%d\t%d\t%d %s\t%d %s\t%t\t%d %s\t%s\n",
			r.RunID,
			r.TotalDistance, r.DistanceUnit,
			r.TotalPickups,
			r.TotalDeliveries,
			r.PickupTardiness+r.DeliveryTardiness, r.TimeUnit,
			r.OverTime, r.TimeUnit,
			r.SimFinish,
			r.SimulationTime, r.TimeUnit,
			time.Duration(r.ComputationTimeNS))
	}

	err = tw.Flush()
	if err != nil {
		return err
	}

	if !late {
		return nil
	}

	for _, r := range runs {
		err = reportLate(ctx, w, reader, r)
		if err != nil {
			return err
		}
	}

	return nil
}

func reportLate(
	ctx context.Context,
	w io.Writer,
	reader datarecording.DataReader,
	run *datarecording.StatisticsEntry,
) error {
	entries, err := datarecording.ReadTardiness(ctx, reader, run.RunID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s: %d late activities\n", run.RunID, len(entries))

	for _, e := range entries {
		fmt.Fprintf(w, "  %d %s\t%s\t+%d %s\n",
			e.Time, run.TimeUnit, e.Kind, e.Tardiness, run.TimeUnit)
	}

	return nil
}
