package cmd

import (
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var configSet = &cobra.Command{
	Aliases: []string{"create"},
	Use:     "set",
	Short:   "Create a local config file",
	Long: `Creates a local config file to hold flags that do not change, like the service account identity and key.

	By default, this configuration file will be placed in ` + configFileLocation(false) + `.

	Use the ` + envConfigLocation + ` environment variable to change this default target.
	`,
	Example: `# Set the service account
% playpub config set --service-account-email publisher@my-project.iam.gserviceaccount.com --key-file /secrets/key.p12
config file created in /Users/mike/.playpub/playpub.yaml

# Generate config in some non-default location
% ` + envConfigLocation + `=~/.config/playpub/config.yaml playpub config set --key-file /secrets/key.json
config file created in /Users/mike/.config/playpub/config.yaml
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := playpubFlags.chunkSize(); err != nil {
			wrapFatalWithKind("invalid config", err)
			return
		}

		localConfig := CLIConfig{
			Email:     playpubFlags.auth.email,
			KeyFile:   playpubFlags.auth.keyFile,
			LogLevel:  playpubFlags.root.logLevel,
			ChunkSize: playpubFlags.publish.chunkSize,
		}
		if localConfig.ChunkSize == defaultChunkSize {
			localConfig.ChunkSize = ""
		}

		file := configFileLocation(true)

		if ext := filepath.Ext(file); ext != ".yaml" {
			infoLogger.Printf("warning: the generated config file will contain a yaml document, but the file extension is %q", ext)
		}
		o, err := localConfig.MarshalConfig()
		if err != nil {
			wrapFatalln("could not serialize config to yaml", err)
			return
		}

		if err = appFs.MkdirAll(filepath.Dir(file), 0700); err != nil {
			wrapFatalln("could not create directory to hold config "+filepath.Dir(file), err)
			return
		}

		if err = afero.WriteFile(appFs, file, o, 0600); err != nil {
			wrapFatalln("error writing config file "+file, err)
			return
		}

		infoLogger.Printf("config file created in %s", file)
	},
}

func init() {
	configCmd.AddCommand(configSet)
}
