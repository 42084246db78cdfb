package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"workbench/internal/command"
)

// DescriptorCommands creates descriptor management commands
func DescriptorCommands(registry *command.Registry) []*cobra.Command {
	cmds := []*cobra.Command{}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered command descriptors",
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptors := registry.List()
			if len(descriptors) == 0 {
				cmd.Println("No descriptors registered")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION")
			for _, desc := range descriptors {
				meta := desc.Metadata()
				fmt.Fprintf(w, "%s\t%s\n", meta.Name, meta.Description)
			}
			return w.Flush()
		},
	}
	cmds = append(cmds, listCmd)

	showCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a descriptor's metadata and command template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := registry.Get(args[0])
			if err != nil {
				return err
			}

			meta := desc.Metadata()
			cmd.Printf("Name: %s\n", meta.Name)
			cmd.Printf("Description: %s\n", meta.Description)
			if meta.Documentation != "" {
				cmd.Println()
				cmd.Println(meta.Documentation)
			}
			return nil
		},
	}
	cmds = append(cmds, showCmd)

	return cmds
}
