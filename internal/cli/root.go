package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/intentia/internal/llm"
	"github.com/ppiankov/intentia/internal/logging"
	"github.com/ppiankov/intentia/internal/model"
)

const version = "intentia v0.1.0"

var (
	cfgFile string
	envFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "intentia",
	Short: "Intentia - intent resolution for home-automation speech",
	Long: `Intentia turns recognized speech into home-automation intents.

Each utterance is scored against a fixed label vocabulary (intent types,
actions, devices and rooms) by an external classifier. The best label per
slot forms a (location, action, subject) triple, which is accepted only when
its weakest slot is confident enough and the capability map supports it.
Questions short-circuit to a question intent.

Every utterance yields exactly one outcome: an intent or a named failure.`,
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
	Long:  `Display the version number and build information for Intentia.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.intentia/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment (default: .env if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().String("capabilities", "", "capability definition file (overrides capabilities.path)")
	rootCmd.PersistentFlags().String("provider", "", "scorer provider: openai, anthropic, ollama, zeroshot")
	rootCmd.PersistentFlags().String("model", "", "scorer model name")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("capabilities.path", rootCmd.PersistentFlags().Lookup("capabilities"))
	_ = viper.BindPFlag("scorer.provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("scorer.model", rootCmd.PersistentFlags().Lookup("model"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in .env, the config file and ENV variables
func initConfig() {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading env file %s: %v\n", envFile, err)
		}
	} else {
		// Optional; a missing .env is not an error
		_ = godotenv.Load()
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".intentia"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	setDefaults(model.DefaultConfig())

	// Read in environment variables that match INTENTIA_*, e.g.
	// INTENTIA_SCORER_PROVIDER for scorer.provider
	viper.SetEnvPrefix("INTENTIA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so AutomaticEnv can override it during
// Unmarshal
func setDefaults(cfg *model.Config) {
	viper.SetDefault("capabilities.path", cfg.Capabilities.Path)
	viper.SetDefault("capabilities.format", cfg.Capabilities.Format)

	viper.SetDefault("resolver.threshold", cfg.Resolver.Threshold)
	viper.SetDefault("resolver.question_threshold", cfg.Resolver.QuestionThreshold)
	viper.SetDefault("resolver.strict_slots", cfg.Resolver.StrictSlots)

	viper.SetDefault("scorer.provider", cfg.Scorer.Provider)
	viper.SetDefault("scorer.model", cfg.Scorer.Model)
	viper.SetDefault("scorer.base_url", cfg.Scorer.BaseURL)
	viper.SetDefault("scorer.timeout", cfg.Scorer.Timeout)
	viper.SetDefault("scorer.max_retries", cfg.Scorer.MaxRetries)
	viper.SetDefault("scorer.http_proxy", cfg.Scorer.HTTPProxy)
	viper.SetDefault("scorer.https_proxy", cfg.Scorer.HTTPSProxy)
	viper.SetDefault("scorer.no_proxy", cfg.Scorer.NoProxy)

	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.dir", cfg.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", cfg.Cache.DiskTTL)

	viper.SetDefault("rate_limiting.requests_per_second", cfg.RateLimiting.RequestsPerSecond)
	viper.SetDefault("rate_limiting.burst_size", cfg.RateLimiting.BurstSize)

	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)

	viper.SetDefault("log.level", cfg.Log.Level)
	viper.SetDefault("log.format", cfg.Log.Format)
}

// loadConfig builds the effective configuration, pulls API keys from the
// environment, validates it, and initializes logging
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Scorer.Provider = strings.ToLower(strings.TrimSpace(cfg.Scorer.Provider))

	if env := llm.APIKeyEnv(cfg.Scorer.Provider); env != "" {
		cfg.Scorer.APIKey = os.Getenv(env)
	}
	if cfg.Scorer.Provider == "ollama" && cfg.Scorer.BaseURL == "" {
		cfg.Scorer.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if viper.GetBool("verbose") {
		level = "debug"
	}
	logging.Init(logging.Options{Level: level, Format: cfg.Log.Format})

	return cfg, nil
}
