package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"workbench/internal/db"
)

// HistoryCommands creates run history commands
func HistoryCommands(database *db.DB) []*cobra.Command {
	cmds := []*cobra.Command{}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if database == nil {
				return fmt.Errorf("run history database is not available")
			}
			limit, _ := cmd.Flags().GetInt("limit")

			runs, err := db.NewRunRepository(database).ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				cmd.Println("No runs recorded")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDESCRIPTOR\tREPOSITORY\tSTATUS\tCHANGES\tWHEN")
			for _, run := range runs {
				status := "failed"
				if run.Success {
					status = "ok"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
					run.ID, run.Descriptor, run.Repository, status,
					run.TrackedCount+run.UntrackedCount,
					run.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}
	listCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list")
	cmds = append(cmds, listCmd)

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if database == nil {
				return fmt.Errorf("run history database is not available")
			}

			run, err := db.NewRunRepository(database).GetRunByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cmd.Printf("ID: %s\n", run.ID)
			cmd.Printf("Descriptor: %s\n", run.Descriptor)
			cmd.Printf("Repository: %s\n", run.Repository)
			cmd.Printf("Success: %t\n", run.Success)
			if run.ExitCode != nil {
				cmd.Printf("Exit code: %d\n", *run.ExitCode)
			}
			cmd.Printf("Message: %s\n", run.Message)
			cmd.Printf("Changes: %d modified, %d untracked\n", run.TrackedCount, run.UntrackedCount)
			cmd.Printf("Recorded: %s\n", run.CreatedAt.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}
	cmds = append(cmds, showCmd)

	return cmds
}
