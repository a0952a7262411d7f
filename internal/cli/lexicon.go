package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/credence/internal/lexicon"
)

var lexiconFormat string

// lexiconCmd represents the lexicon command
var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Inspect and validate keyword lexicons",
	Long: `A lexicon holds the keyword tables behind every score: credible and
suspicious keywords, subject categories and sentiment words.

Terms match whole words. A trailing * matches a prefix ("vaccin*") and
multi-word entries match as phrases.`,
}

var lexiconShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active lexicon",
	Long: `Print the active lexicon: the file given with --lexicon or lexicon.path,
or the built-in tables. The output is a valid starting point for a custom lexicon.

Example:
  credence lexicon show > my-lexicon.yaml
  credence lexicon show --format toml > my-lexicon.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		lex := lexicon.Default()
		if cfg.Lexicon.Path != "" {
			if lex, err = lexicon.Load(cfg.Lexicon.Path); err != nil {
				return err
			}
		}

		data, err := lexicon.Encode(lex, lexicon.Format(lexiconFormat))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var lexiconCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a custom lexicon file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		compiled, err := lexicon.LoadCompiled(args[0])
		if err != nil {
			return fmt.Errorf("invalid lexicon: %w", err)
		}

		fmt.Fprintf(os.Stderr, "✓ %s is valid\n", args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "Subjects: %v\n", compiled.SubjectLabels())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lexiconCmd)
	lexiconCmd.AddCommand(lexiconShowCmd)
	lexiconCmd.AddCommand(lexiconCheckCmd)

	lexiconShowCmd.Flags().StringVar(&lexiconFormat, "format", string(lexicon.FormatYAML), "output format (yaml or toml)")
}
