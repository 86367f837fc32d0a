package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

const docHeader = `---
title: %q
version: %s
---

`

// docPrepender titles each page after its command path, e.g. "playpub config set"
// for playpub_config_set.md.
func docPrepender(file string) string {
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return fmt.Sprintf(docHeader, strings.ReplaceAll(name, "_", " "), NewVersionInfo().Version)
}

// docLink keeps cross references between generated pages relative to the target directory.
func docLink(name string) string {
	return "./" + name
}

func disableAutoGenTag(cmd *cobra.Command) {
	cmd.DisableAutoGenTag = true
	for _, sub := range cmd.Commands() {
		disableAutoGenTag(sub)
	}
}

var docCmd = &cobra.Command{
	Use:   "usage",
	Short: "Generates the playpub reference documentation",
	Long: `Writes one markdown page per playpub command into the target directory:
playpub.md for the publisher itself, then playpub_version.md, playpub_config_set.md
and so on for each subcommand.

Every page starts with a front matter block carrying the command path and the playpub
version, so the pages can be published as is by a static site generator.`,
	Example: `# Generate the reference pages into ./docs
% playpub usage --target-dir docs`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		target := playpubFlags.doc.docTarget
		if err := os.MkdirAll(target, 0o755); err != nil {
			wrapFatalln("could not create documentation directory "+target, err)
			return
		}

		// pages only change with the commands, not with the day they are generated
		disableAutoGenTag(rootCmd)
		if err := doc.GenMarkdownTreeCustom(rootCmd, target, docPrepender, docLink); err != nil {
			wrapFatalln("failed to generate doc", err)
			return
		}
		infoLogger.Printf("reference documentation written to %s", target)
	},
}

func init() {
	rootCmd.AddCommand(docCmd)
	addTargetFlag(docCmd)
}
