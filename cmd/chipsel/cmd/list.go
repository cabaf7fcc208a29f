package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/green/chipsel/internal/multiselect"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [definition.yaml]",
	Short: "List the resolved options of every field",
	Long: `List each field's options after loading: duplicates dropped and
invalid or disabled colors replaced by the fallback.

Examples:
  chipsel list form.yaml
  chipsel list --option a:Apple:#F87171 --option b:Banana:nope`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	addFieldFlags(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(args)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tVALUE\tTEXT\tCOLOR\tFALLBACK")

	for _, f := range def.Fields {
		catalog := multiselect.LoadCatalog(f.Options, f.Disabled)
		for _, opt := range catalog.Options() {
			fallback := ""
			if opt.Fallback {
				fallback = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", f.Name, opt.Value, opt.Text, opt.Color, fallback)
		}
	}

	return w.Flush()
}
