package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/keyfold/keyfold/internal/workflows"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered collaborators",
	Long:    `Prints the keylist entries in on-disk order: key ID and display name.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, _, err := buildEnv()
		if err != nil {
			return err
		}

		entries, err := workflows.List(cmd.Context(), env)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No collaborators registered.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY ID\tNAME")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\n", e.KeyID, e.Name)
		}
		return w.Flush()
	},
}
