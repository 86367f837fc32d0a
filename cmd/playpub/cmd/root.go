// Copyright © 2018 One Concern

package cmd

import (
	"io/fs"
	"log"

	"github.com/oneconcern/playpub/pkg/dlogger"
	"github.com/oneconcern/playpub/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "playpub <package-name>",
	Short: "Playpub publishes Android app bundles on Google Play",
	Long: `Playpub publishes Android app bundles on Google Play, using a service account.

Without --aab, it lists the version codes of the bundles already uploaded for the package.

With --aab, it uploads the bundle and releases it on the track specified by --track,
optionally with release notes. The upload, the track update and the commit happen within
a single edit: the release goes live only when all these steps succeed.
`,
	Example: `# List uploaded bundles
% playpub com.example.app
versionCode: 12
versionCode: 13

# Upload and release a bundle
% playpub com.example.app --aab app-release.aab --track beta --release-notes '{"en-US": "Bug fixes."}'
Uploaded AAB versionCode: 42
AAB uploaded and released to beta track successfully.
`,
	Args: cobra.ExactArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		logger, err = dlogger.GetLogger(playpubFlags.root.logLevel)
		if err != nil {
			logger = zap.NewNop()
			wrapFatalWithCodef(exitInvalidInput, "invalid --loglevel %q: %v", playpubFlags.root.logLevel, err)
			return
		}
		if configFileUsed != "" {
			logger.Debug("using config file", zap.String("config", configFileUsed))
		}
	},
	Run: runPublish,
}

var (
	config         *CLIConfig
	configFileUsed string

	logger = zap.NewNop()

	// appFs is the file system holding bundles, keys and config files.
	// It is replaced during tests.
	appFs = afero.NewOsFs()
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		wrapFatalWithCodef(exitInvalidInput, "%v", err)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)
	rootCmd.SilenceErrors = true

	addAABFlag(rootCmd)
	addTrackFlag(rootCmd)
	addReleaseNotesFlag(rootCmd)
	addKeepEditFlag(rootCmd)
	addTemplateFlag(rootCmd)
	addChunkSizeFlag(rootCmd)
	addEmailFlag(rootCmd)
	addKeyFileFlag(rootCmd)
	addLogLevel(rootCmd)
	addTimeoutFlag(rootCmd)
}

// initConfig reads in .env, config file and ENV variables if set.
func initConfig() {
	loadDotEnv()

	settings := newSettings()
	configFileUsed = ""
	// If a config file is found, read it in.
	err := settings.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		configFileUsed = settings.ConfigFileUsed()
	case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
	default:
		wrapFatalln("could not read config file", err)
		return
	}

	config, err = newConfig(settings)
	if err != nil {
		wrapFatalln("could not read config", err)
		return
	}
	config.setPlaypubParams(&playpubFlags)
}
