package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/gitpick/internal/app"
	"github.com/quantmind-br/gitpick/internal/config"
	"github.com/quantmind-br/gitpick/internal/domain"
	"github.com/quantmind-br/gitpick/internal/utils"
	"github.com/quantmind-br/gitpick/pkg/version"
)

var (
	cfgFile string
	verbose bool

	// Dependencies for testing
	osStat       = os.Stat
	execLookPath = exec.LookPath
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, domain.FormatErrorChain(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gitpick",
	Short: "Pick files from a GitHub repository and download them",
	Long: `gitpick lists the file tree of a GitHub repository, hands the paths to
an interactive picker, and downloads the files you choose into the output
directory, keeping their repository-relative paths.`,
	Version:       version.Short(),
	SilenceErrors: true,
	SilenceUsage:  true,
}

var repoCmd = &cobra.Command{
	Use:   "repo [owner/name]",
	Short: "Pick and download files from a repository",
	Long: `Lists every file of the repository tree at the chosen ref, opens the
picker for a multi-select, and downloads the chosen files concurrently.

The ref defaults to main; pass --tree to list another branch, tag or
commit. Failed downloads are reported per file and never abort the rest
of the batch.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRepo,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.gitpick/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Repo flags
	repoCmd.Flags().StringP("tree", "t", "", "Tree (branch, tag or commit) to list instead of main")
	repoCmd.Flags().StringP("output", "o", ".", "Output directory")
	repoCmd.Flags().String("picker", "fzf", "Picker command (\"builtin\" for the in-process picker)")
	repoCmd.Flags().Duration("timeout", 30*time.Second, "Request timeout")
	repoCmd.Flags().Bool("no-progress", false, "Disable the progress bar")

	// Bind flags to viper
	_ = viper.BindPFlag("output.directory", repoCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("picker.command", repoCmd.Flags().Lookup("picker"))
	_ = viper.BindPFlag("github.timeout", repoCmd.Flags().Lookup("timeout"))

	// Add subcommands
	rootCmd.AddCommand(repoCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func runRepo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// "builtin" as the picker command selects the in-process picker
	if cfg.Picker.Command == "builtin" {
		cfg.Picker.Builtin = true
	}

	repoArg := ""
	if len(args) > 0 {
		repoArg = args[0]
	}

	ref, _ := cmd.Flags().GetString("tree")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	orchestrator, err := app.NewOrchestrator(app.OrchestratorOptions{
		Config:       cfg,
		Verbose:      verbose,
		ShowProgress: !noProgress,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	_, err = orchestrator.Run(context.Background(), repoArg, ref)
	return err
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  "Verifies that the picker binary, network access and output permissions are in place.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Checking system dependencies...")
		allPassed := true

		cfg, cfgErr := config.Load()
		pickerCommand := config.DefaultPickerCommand
		if cfgErr == nil && cfg.Picker.Command != "" {
			pickerCommand = cfg.Picker.Command
		}

		// Check 1: Picker binary
		fmt.Printf("  Picker (%s): ", pickerCommand)
		if pickerCommand == "builtin" {
			fmt.Println("OK (in-process)")
		} else if path := checkPicker(pickerCommand); path != "" {
			fmt.Printf("OK (%s)\n", path)
		} else {
			fmt.Println("NOT FOUND (install it or use --picker=builtin)")
			allPassed = false
		}

		// Check 2: GitHub API reachability
		fmt.Print("  GitHub API: ")
		if checkAPI() {
			fmt.Println("OK")
		} else {
			fmt.Println("FAILED")
			allPassed = false
		}

		// Check 3: Write permissions for the output dir
		fmt.Print("  Write permissions: ")
		if checkWritePermissions() {
			fmt.Println("OK")
		} else {
			fmt.Println("FAILED")
			allPassed = false
		}

		// Check 4: Config file
		fmt.Print("  Config file: ")
		if cfgErr != nil {
			fmt.Printf("WARN (%v)\n", cfgErr)
		} else {
			fmt.Println("OK")
		}

		// Check 5: Config directory
		fmt.Print("  Config directory: ")
		configDir := config.ConfigDir()
		if checkConfigDir(configDir) {
			fmt.Printf("OK (%s)\n", configDir)
		} else {
			fmt.Println("WARN (run 'gitpick config init' to create it)")
		}

		fmt.Println()
		if allPassed {
			fmt.Println("All critical checks passed!")
		} else {
			fmt.Println("Some checks failed. Please resolve the issues above.")
		}
		return nil
	},
}

// checkPicker checks if the picker binary is available
func checkPicker(command string) string {
	if _, err := osStat(command); err == nil {
		return command
	}

	if path, err := execLookPath(command); err == nil {
		return path
	}

	return ""
}

// checkAPI checks if the GitHub API host answers
func checkAPI() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, "https://api.github.com", nil)
	if err != nil {
		return false
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// checkWritePermissions checks if we can write to the current directory
func checkWritePermissions() bool {
	tmpFile := ".gitpick_test_write"
	f, err := os.Create(tmpFile)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(tmpFile)
	return true
}

// checkConfigDir checks if the config directory exists
func checkConfigDir(path string) bool {
	info, err := osStat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

// defaultConfigTemplate is written by `gitpick config init`
const defaultConfigTemplate = `# gitpick configuration
github:
  api_root: https://api.github.com/repos
  raw_root: https://raw.githubusercontent.com
  user_agent: gitpick
  timeout: 30s

picker:
  # External picker command; set to "builtin" for the in-process picker
  command: fzf
  height: "40%"

output:
  directory: .
  create_dirs: true

logging:
  level: info
  format: pretty
`

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ConfigFilePath()
		if utils.FileExists(path) {
			fmt.Printf("Config file already exists at %s\n", path)
			return nil
		}

		if err := config.EnsureConfigDir(); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0644); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		fmt.Printf("Created %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}

		fmt.Print(string(data))
		return nil
	},
}
