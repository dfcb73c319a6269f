package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"jobshell/internal/config"
	"jobshell/internal/shell"
)

const (
	VersionMajor = 1
	VersionMinor = 0
)

var (
	cfgPath     string
	showVersion bool
)

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default()
	}

	cfg, err := config.Load(afero.NewOsFs(), cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Couldn't load config %q", cfgPath)
	}
	return cfg, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "jobshell",
	Short:         "Interactive shell with job control",
	Long:          `An interactive shell that runs commands as foreground or background jobs.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintf(cmd.OutOrStdout(), "Version %02d.%02d\n", VersionMajor, VersionMinor)
			return nil
		}

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		s, err := shell.New(cfg, shell.Options{})
		if err != nil {
			return fmt.Errorf("error initializing shell: %w", err)
		}

		runErr := s.Run()
		return errors.Join(runErr, s.Close())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.Flags().StringVar(&cfgPath, "config", "", "config file path (built-in defaults when empty)")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print the version and exit")
}
