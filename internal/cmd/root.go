package cmd

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tabless/internal/app"
	"tabless/internal/config"
	"tabless/internal/input"
	"tabless/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "tabless [file]",
	Short: "Column-aligned pager for delimited text",
	Long: `Tabless formats delimited text (TSV, CSV and friends, optionally
gzip- or bzip2-compressed) into a column-aligned view and opens it in
an interactive pager: pin a header row, jump between columns, search,
and drop columns from view. Reads the named file or standard input.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringP("delimiter", "d", "", "column delimiter (exactly one character; default: comma for .csv, otherwise tab)")
	rootCmd.Flags().IntP("truncate", "t", 0, "cap column content at this many characters (0 = unlimited)")
	rootCmd.Flags().BoolP("no-quotes", "Q", false, "disable quote-aware column splitting")
	rootCmd.Flags().Int("tab-stop", 0, "column alignment increment (default 8)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/tabless/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TABLESS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetInt("truncate"); cmd.Flags().Changed("truncate") {
		cfg.Truncate = v
	}
	if v, _ := cmd.Flags().GetInt("tab-stop"); cmd.Flags().Changed("tab-stop") {
		cfg.TabStop = v
	}
	if v, _ := cmd.Flags().GetBool("no-quotes"); v {
		cfg.Quoting = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	delim, _ := cmd.Flags().GetString("delimiter")
	if delim == "" {
		delim = input.DefaultDelimiter(path)
	}
	if err := validateDelimiter(delim); err != nil {
		return err
	}

	if path == "" && isatty.IsTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("no input: name a file or pipe data on standard input")
	}

	log, err := logging.New(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer log.Close()

	src, err := input.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	log.Info("starting",
		"input", src.Name,
		"delimiter", delim,
		"quoting", cfg.Quoting,
		"truncate", cfg.Truncate)

	model := app.NewModel(src, app.Options{
		Delimiter: delim,
		Quoted:    cfg.Quoting,
		Truncate:  cfg.Truncate,
		TabStop:   cfg.TabStop,
	}, log)

	p := tea.NewProgram(model, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := result.(app.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

// validateDelimiter enforces the one-character delimiter contract.
func validateDelimiter(d string) error {
	if n := len([]rune(d)); n != 1 {
		return fmt.Errorf("delimiter must be exactly one character, got %q", d)
	}
	return nil
}
