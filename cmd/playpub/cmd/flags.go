// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"time"

	"github.com/docker/go-units"
	"github.com/oneconcern/playpub/pkg/publisher/gplay"
	"github.com/oneconcern/playpub/pkg/publisher/status"
	"github.com/spf13/cobra"
)

// defaults apply to flags left empty by the command line and the config.
// Flags are declared with zero values so that the config may fill them.
const (
	defaultKeyFile   = "key.p12"
	defaultFormat    = `versionCode: {{.VersionCode}}`
	defaultTimeout   = 10 * time.Minute
	defaultLogLevel  = "info"
	defaultChunkSize = "8MiB"
)

type flagsT struct {
	publish struct {
		aab          string
		track        string
		releaseNotes string
		keepEdit     bool
		format       string
		chunkSize    string
	}
	auth struct {
		email   string
		keyFile string
	}
	root struct {
		logLevel string
		timeout  time.Duration
	}
	doc struct {
		docTarget string
	}
}

var playpubFlags = flagsT{}

func addAABFlag(cmd *cobra.Command) string {
	c := "aab"
	cmd.Flags().StringVar(&playpubFlags.publish.aab, c, "", "Path to the Android App Bundle to upload. When omitted, the bundles already uploaded are listed")
	return c
}

func addTrackFlag(cmd *cobra.Command) string {
	c := "track"
	cmd.Flags().StringVar(&playpubFlags.publish.track, c, "", "The track to release the uploaded bundle to, e.g. internal, alpha, beta, production. Required with --aab")
	return c
}

func addReleaseNotesFlag(cmd *cobra.Command) string {
	c := "release-notes"
	cmd.Flags().StringVar(&playpubFlags.publish.releaseNotes, c, "", `Release notes as a JSON object mapping languages to texts, e.g. '{"en-US": "Bug fixes."}'`)
	return c
}

func addKeepEditFlag(cmd *cobra.Command) string {
	c := "keep-edit"
	cmd.Flags().BoolVar(&playpubFlags.publish.keepEdit, c, false, "Do not discard the edit opened to list bundles, and let it expire")
	return c
}

func addTemplateFlag(cmd *cobra.Command) string {
	c := "format"
	cmd.Flags().StringVar(&playpubFlags.publish.format, c, "", `Pretty-print listed bundles using a Go template (default '`+defaultFormat+`'). Use '{{ printf "%#v" . }}' to explore available fields`)
	return c
}

func addChunkSizeFlag(cmd *cobra.Command) string {
	c := "chunk-size"
	cmd.PersistentFlags().StringVar(&playpubFlags.publish.chunkSize, c, "", "The size of the chunks sent when uploading a bundle, e.g. 256KiB, 16MiB (default "+defaultChunkSize+")")
	return c
}

func addEmailFlag(cmd *cobra.Command) string {
	c := "service-account-email"
	cmd.PersistentFlags().StringVar(&playpubFlags.auth.email, c, "", "The service account identity. Defaults to the SERVICE_ACCOUNT_EMAIL environment variable")
	return c
}

func addKeyFileFlag(cmd *cobra.Command) string {
	c := "key-file"
	cmd.PersistentFlags().StringVar(&playpubFlags.auth.keyFile, c, "", "The service account key, either a .p12 or a JSON key. Defaults to the PLAYPUB_KEY_FILE environment variable, then "+defaultKeyFile)
	return c
}

func addLogLevel(cmd *cobra.Command) string {
	loglevel := "loglevel"
	cmd.PersistentFlags().StringVar(&playpubFlags.root.logLevel, loglevel, "", "The logging level. Levels by increasing order of verbosity: none, error, warn, info, debug (default "+defaultLogLevel+")")
	return loglevel
}

func addTimeoutFlag(cmd *cobra.Command) string {
	c := "timeout"
	cmd.PersistentFlags().DurationVar(&playpubFlags.root.timeout, c, 0, "The maximum duration of the whole operation (default "+defaultTimeout.String()+")")
	return c
}

func addTargetFlag(cmd *cobra.Command) string {
	c := "target-dir"
	cmd.Flags().StringVar(&playpubFlags.doc.docTarget, c, "", "The target directory where to generate the markdown documentation (default \".\")")
	return c
}

// applyDefaults fills flags left empty by the command line and the config
func (f *flagsT) applyDefaults() {
	if f.auth.keyFile == "" {
		f.auth.keyFile = defaultKeyFile
	}
	if f.publish.format == "" {
		f.publish.format = defaultFormat
	}
	if f.publish.chunkSize == "" {
		f.publish.chunkSize = defaultChunkSize
	}
	if f.root.logLevel == "" {
		f.root.logLevel = defaultLogLevel
	}
	if f.root.timeout <= 0 {
		f.root.timeout = defaultTimeout
	}
	if f.doc.docTarget == "" {
		f.doc.docTarget = "."
	}
}

func (f *flagsT) chunkSize() (int, error) {
	size, err := units.RAMInBytes(f.publish.chunkSize)
	if err != nil {
		return 0, status.ErrInvalidInput.Wrap(fmt.Errorf("invalid --chunk-size: %w", err))
	}
	if size < 0 {
		return 0, status.ErrInvalidInput.Wrap(fmt.Errorf("invalid --chunk-size: %d", size))
	}
	if size == 0 {
		return gplay.DefaultChunkSize, nil
	}
	return int(size), nil
}
