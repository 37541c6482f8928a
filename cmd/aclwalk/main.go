package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmcnab/aclwalk/pkg/authorization"
	"github.com/tmcnab/aclwalk/pkg/glob"
	"github.com/tmcnab/aclwalk/pkg/logging"
	"github.com/tmcnab/aclwalk/pkg/ruleset"
)

var (
	version = "dev" // Will be set during build

	cfgFile     string
	rootDir     string
	showVersion bool
)

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

var rootCmd = &cobra.Command{
	Use:           "aclwalk",
	Short:         "Resolve datasite file permissions",
	SilenceUsage:  false,
	SilenceErrors: true,
	Long: `aclwalk resolves who may read, write, or administer a path in a
datasite tree, based on the ` + ruleset.FileName + ` rule files found in its
ancestor directories.

Configuration file is JSON with the following structure:
{
    "root_dir": "/srv/datasites",
    "cache_size": 10000,
    "app_log_path": "/var/log/aclwalk.log",
    "audit_log_path": "/var/log/aclwalk-audit.log",
    "log_level": "info"
}

The --root flag may be used instead of a config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("aclwalk %s\n", version)
			return nil
		}
		return cmd.Help()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check PATH USER KIND",
	Short: "Check whether a user holds a permission on a path",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, user := args[0], args[1]
		kind, err := authorization.ParsePermission(args[2])
		if err != nil {
			return err
		}

		auth, err := newAuthorizer()
		if err != nil {
			return err
		}

		granted := auth.HasPermission(user, path, kind)
		logging.Audit.Decision(user, path, kind.String(), granted)

		if granted {
			fmt.Printf("granted: %s has %s on %s\n", user, kind, path)
		} else {
			fmt.Printf("denied: %s does not have %s on %s\n", user, kind, path)
		}
		return nil
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain PATH USER",
	Short: "Explain a user's permissions on a path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, err := newAuthorizer()
		if err != nil {
			return err
		}
		fmt.Print(auth.Explain(args[1], args[0]))
		return nil
	},
}

var matchCmd = &cobra.Command{
	Use:   "match PATTERN PATH",
	Short: "Test a rule pattern against a path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if glob.Match(args[0], args[1]) {
			fmt.Println("match")
		} else {
			fmt.Println("no match")
		}
		return nil
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score PATTERN...",
	Short: "Rank rule patterns by specificity",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patterns := make([]string, len(args))
		copy(patterns, args)
		sort.SliceStable(patterns, func(i, j int) bool {
			return glob.Score(patterns[i]) > glob.Score(patterns[j])
		})
		for _, p := range patterns {
			fmt.Printf("%6d  %s\n", glob.Score(p), p)
		}
		return nil
	},
}

// newAuthorizer builds the resolver stack from the config file or the
// --root flag.
func newAuthorizer() (*authorization.Authorizer, error) {
	var config Config
	if cfgFile != "" {
		if err := LoadConfig(cfgFile, &config); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		config = Config{RootDir: rootDir}
		config.applyDefaults()
	}
	if config.RootDir == "" {
		return nil, fmt.Errorf("a rule tree is required (use --config or --root)")
	}

	if err := logging.Initialize(&logging.Config{
		AppLogPath:   config.AppLogPath,
		AuditLogPath: config.AuditLogPath,
		Level:        logging.Level(strings.ToLower(config.LogLevel)),
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	cache, err := authorization.NewCache(config.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create permission cache: %w", err)
	}

	source := ruleset.NewFileSource(config.RootDir)
	return authorization.NewAuthorizer(source, cache), nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "rule tree root directory")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show version")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(scoreCmd)
}
