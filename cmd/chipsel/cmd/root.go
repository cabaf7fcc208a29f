package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/green/chipsel/internal/config"
	"github.com/green/chipsel/internal/definition"
	"github.com/green/chipsel/internal/tui"
	"github.com/spf13/cobra"
)

var (
	cfgDir    string
	debugMode bool
	configMgr *config.Manager
	logger    = log.New(io.Discard, "", 0)
	debugFile *os.File
	version   string

	// Single-field form flags
	fieldLabel       string
	fieldPlaceholder string
	fieldHelp        string
	fieldSelected    string
	fieldRequired    bool
	fieldDisabled    bool
	fieldOptions     []string

	outputFormat string
	themeName    string
)

// SetVersion sets the application version (called from main)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:     "chipsel [definition.yaml]",
	Short:   "Pick values from a list of chips in the terminal",
	Version: "dev", // Will be overridden by SetVersion
	Long: `chipsel shows one or more multi-select fields, lets you pick values
with the mouse, and prints what you chose.

Fields come from a YAML definition file or, for a single field, from flags:

  chipsel --label Fruit --option a:Apple:#F87171 --option b:Banana --option c:Cherry
  chipsel form.yaml --format yaml

The exit status is 1 when the form is cancelled.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "update" {
			return nil
		}
		return initApp()
	},
	RunE: runForm,
}

func Execute() {
	if err := run(); err != nil {
		if !errors.Is(err, tui.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Determine config directory
	defaultCfgDir, err := config.DefaultConfigDir()
	if err != nil {
		defaultCfgDir = "~/.config/chipsel"
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", defaultCfgDir, "config directory")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "write a debug log to the config directory")

	addFieldFlags(rootCmd)
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format: text or yaml (default from config)")
}

// addFieldFlags registers the flags describing a single-field form
func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&fieldLabel, "label", "l", "", "field label")
	cmd.Flags().StringVarP(&fieldPlaceholder, "placeholder", "p", "", "text shown while nothing is selected")
	cmd.Flags().StringVar(&fieldHelp, "help-text", "", "help text shown below the field")
	cmd.Flags().StringVarP(&fieldSelected, "selected", "s", "", "comma-separated values to pre-select")
	cmd.Flags().BoolVar(&fieldRequired, "required", false, "require at least one value")
	cmd.Flags().BoolVar(&fieldDisabled, "disabled", false, "show the field read-only")
	cmd.Flags().StringArrayVarP(&fieldOptions, "option", "o", nil, "option as value[:text[:color]] (repeatable)")
	cmd.Flags().StringVar(&themeName, "theme", "", "color theme: auto, dark or light")
}

func initApp() error {
	var err error

	// Initialize config manager
	if cfgDir == "" {
		cfgDir, err = config.DefaultConfigDir()
		if err != nil {
			return fmt.Errorf("failed to get config directory: %w", err)
		}
	}

	configMgr = config.NewManager(cfgDir)
	if err := configMgr.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if debugMode {
		if err := os.MkdirAll(cfgDir, 0700); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		debugFile, err = tea.LogToFile(filepath.Join(cfgDir, "debug.log"), "chipsel")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		logger = log.Default()
		logger.Printf("chipsel %s starting", version)
	}

	return nil
}

// run executes the command tree and releases the debug log whether or
// not the command failed
func run() error {
	err := rootCmd.Execute()
	closeDebugLog()
	return err
}

// closeDebugLog closes the --debug log file, if one was opened
func closeDebugLog() {
	if debugFile == nil {
		return
	}
	debugFile.Close()
	debugFile = nil
	log.SetOutput(os.Stderr)
	log.SetPrefix("")
	logger = log.New(io.Discard, "", 0)
}

// loadDefinition reads the definition file named in args, or builds a
// single field from the flags
func loadDefinition(args []string) (*definition.Definition, error) {
	if len(args) == 1 {
		def, err := definition.Load(args[0])
		if err != nil {
			return nil, err
		}
		logger.Printf("loaded %d field(s) from %s", len(def.Fields), args[0])
		return def, nil
	}

	defaults := configMgr.Get().Defaults
	field := definition.Field{
		Label:       defaults.Label,
		Placeholder: defaults.Placeholder,
		Help:        fieldHelp,
		Required:    fieldRequired,
		Disabled:    fieldDisabled,
		Selected:    definition.Selected(fieldSelected),
	}
	if fieldLabel != "" {
		field.Label = fieldLabel
	}
	if fieldPlaceholder != "" {
		field.Placeholder = fieldPlaceholder
	}

	def, err := definition.FromFlags(field, fieldOptions)
	if errors.Is(err, definition.ErrNoFields) {
		return nil, fmt.Errorf("%w: pass a definition file or at least one --option", err)
	}
	return def, err
}

// tuiOptions builds TUI options from flags and config defaults
func tuiOptions() tui.Options {
	opts := tui.Options{
		Theme:   themeName,
		Width:   configMgr.GetWidth(),
		Version: version,
		Logger:  logger,
	}
	if opts.Theme == "" {
		opts.Theme = configMgr.GetTheme()
	}
	return opts
}

func runForm(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(args)
	if err != nil {
		return err
	}

	format := outputFormat
	if format == "" {
		format = configMgr.GetFormat()
	}
	if format != config.FormatText && format != config.FormatYAML {
		return fmt.Errorf("unknown output format %q", format)
	}

	res, err := tui.Run(def, tuiOptions())
	if err != nil {
		return err
	}

	if format == config.FormatYAML {
		return res.WriteYAML(cmd.OutOrStdout())
	}
	return res.WriteText(cmd.OutOrStdout())
}
