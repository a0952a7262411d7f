// Package cli implements the credence command line
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/credence/internal/model"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "dev"

var (
	cfgFile       string
	verbose       bool
	lexiconPath   string
	snap          bool
	modelProvider string
	modelURL      string
	noColor       bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "credence",
	Short: "Credence - heuristic credibility, subject and sentiment scoring for news text",
	Long: `Credence scores a news headline or article with transparent keyword and
pattern heuristics:

- credibility in [0,1], with every contribution listed
- a subject distribution over a fixed set of categories
- a positive / neutral / negative sentiment distribution

The scores are heuristic. They make no claim of statistical validity and
do not decide what is true. An optional remote model can be consulted for
comparison; it never changes the heuristic scores.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "credence %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.credence/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&lexiconPath, "lexicon", "", "custom lexicon file (.yaml or .toml)")
	flags.BoolVar(&snap, "snap", false, "snap credibility to sentinel values past the decision thresholds")
	flags.StringVar(&modelProvider, "model-provider", "", "remote model provider (endpoint, openai, anthropic, ollama)")
	flags.StringVar(&modelURL, "model-url", "", "remote model endpoint or API base URL")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("lexicon.path", flags.Lookup("lexicon"))
	_ = viper.BindPFlag("scoring.snap.enabled", flags.Lookup("snap"))
	_ = viper.BindPFlag("model.provider", flags.Lookup("model-provider"))
	_ = viper.BindPFlag("model.url", flags.Lookup("model-url"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in .env, the config file and CREDENCE_* variables
func initConfig() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}

	if err := setDefaults(viper.GetViper(), model.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".credence"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CREDENCE_*, e.g.
	// CREDENCE_MODEL_PROVIDER for model.provider
	viper.SetEnvPrefix("CREDENCE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("model.api_key")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: could not read config: %v\n", err)
		}
	} else if verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every default config value with viper so that
// environment variables can override keys absent from the config file
func setDefaults(v *viper.Viper, cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal defaults: %w", err)
	}
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("unmarshal defaults: %w", err)
	}
	setTree(v, "", tree)
	return nil
}

func setTree(v *viper.Viper, prefix string, tree map[string]interface{}) {
	for key, value := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}
		if sub, ok := value.(map[string]interface{}); ok && len(sub) > 0 {
			setTree(v, key, sub)
			continue
		}
		v.SetDefault(key, value)
	}
}

// loadConfig builds the effective configuration: flags, then CREDENCE_*
// variables, then the config file, then defaults
func loadConfig() (*model.Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	applyProviderEnv(&cfg.Model)
	if noColor || os.Getenv("NO_COLOR") != "" {
		cfg.Output.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyProviderEnv fills in credentials from the provider's usual variables
func applyProviderEnv(m *model.ModelConfig) {
	switch strings.ToLower(m.Provider) {
	case "openai":
		if m.APIKey == "" {
			m.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "anthropic", "claude":
		if m.APIKey == "" {
			m.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case "ollama":
		if m.URL == "" {
			m.URL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
}

// newLogger logs to stderr: debug with --verbose, warnings otherwise
func newLogger(cfg *model.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Output.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
