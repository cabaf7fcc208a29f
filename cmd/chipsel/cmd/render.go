package cmd

import (
	"fmt"
	"os"

	"github.com/green/chipsel/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const fallbackWidth = 80

var renderOpen bool

var renderCmd = &cobra.Command{
	Use:   "render [definition.yaml]",
	Short: "Print the initial form once",
	Long: `Render the form as it would first appear, without starting an
interactive session. Useful for previews and screenshots.

Examples:
  chipsel render form.yaml
  chipsel render --open --option a:Apple --option b:Banana --selected a`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addFieldFlags(renderCmd)
	renderCmd.Flags().BoolVar(&renderOpen, "open", false, "render with every menu open")
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

func runRender(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(args)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.Render(def, tuiOptions(), terminalWidth(), renderOpen))
	return nil
}
