package cmd

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/docker/go-units"
	"github.com/oneconcern/playpub/pkg/auth"
	"github.com/oneconcern/playpub/pkg/auth/google"
	"github.com/oneconcern/playpub/pkg/publisher"
	"github.com/oneconcern/playpub/pkg/publisher/gplay"
	"github.com/oneconcern/playpub/pkg/publisher/status"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

var (
	// used to patch over the authentication and the publishing API during test

	newAuthenticator = func(email, keyFile string) auth.Authenticator {
		return google.New(
			google.Email(email),
			google.KeyFile(keyFile),
			google.Fs(appFs),
			google.Logger(logger),
		)
	}

	newEditsService = func(ctx context.Context, tokenSource oauth2.TokenSource, chunkSize int) (publisher.EditsService, error) {
		return gplay.New(ctx, tokenSource,
			gplay.ChunkSize(chunkSize),
			gplay.Logger(logger),
		)
	}
)

func runPublish(cmd *cobra.Command, args []string) {
	packageName := args[0]
	if _, err := publisher.CheckPackageName(packageName); err != nil {
		wrapFatalWithKind("invalid package name", err)
		return
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), playpubFlags.root.timeout)
	defer cancel()
	ctx, stop := withSignals(ctx)
	defer stop()

	if playpubFlags.publish.aab == "" {
		listBundles(ctx, packageName)
		return
	}
	uploadAndRelease(ctx, packageName)
}

// newPublisher authenticates then opens a publishing session
func newPublisher(ctx context.Context, chunkSize int) (*publisher.Publisher, error) {
	tokenSource, err := newAuthenticator(playpubFlags.auth.email, playpubFlags.auth.keyFile).TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	edits, err := newEditsService(ctx, tokenSource, chunkSize)
	if err != nil {
		return nil, err
	}
	return publisher.New(edits,
		publisher.Logger(logger),
		publisher.KeepListEdits(playpubFlags.publish.keepEdit),
	), nil
}

func listBundles(ctx context.Context, packageName string) {
	listLineTemplate, err := template.New("list line").Parse(playpubFlags.publish.format)
	if err != nil {
		wrapFatalWithKind("invalid --format", status.ErrInvalidInput.Wrap(err))
		return
	}

	pub, err := newPublisher(ctx, gplay.DefaultChunkSize)
	if err != nil {
		wrapFatalWithKind("could not open publishing session", err)
		return
	}

	bundles, err := pub.ListBundles(ctx, packageName)
	if err != nil {
		wrapFatalWithKind("could not list bundles for "+packageName, err)
		return
	}

	for _, bundle := range bundles {
		var buf bytes.Buffer
		if err = listLineTemplate.Execute(&buf, bundle); err != nil {
			wrapFatalWithKind("executing template", status.ErrInvalidInput.Wrap(err))
			return
		}
		infoLogger.Println(buf.String())
	}
}

// uploadRequest holds the validated inputs of an upload
type uploadRequest struct {
	track        publisher.TrackName
	releaseNotes []publisher.LocalizedText
	chunkSize    int
	size         int64
}

// checkUploadFlags validates all inputs of an upload before any remote call is made
func checkUploadFlags() (uploadRequest, error) {
	var (
		req  uploadRequest
		errs error
		err  error
	)

	req.track = publisher.TrackName(playpubFlags.publish.track)
	if err = req.track.Validate(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("--track is required with --aab: %w", err))
	}

	if req.releaseNotes, err = publisher.ParseReleaseNotes(playpubFlags.publish.releaseNotes); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("--release-notes: %w", err))
	}

	if req.chunkSize, err = playpubFlags.chunkSize(); err != nil {
		errs = multierr.Append(errs, err)
	}

	info, err := appFs.Stat(playpubFlags.publish.aab)
	switch {
	case err != nil:
		errs = multierr.Append(errs, status.ErrInvalidInput.Wrap(fmt.Errorf("cannot access bundle: %w", err)))
	case info.IsDir():
		errs = multierr.Append(errs, status.ErrInvalidInput.Wrap(fmt.Errorf("bundle %s is a directory", playpubFlags.publish.aab)))
	default:
		req.size = info.Size()
	}

	return req, errs
}

func uploadAndRelease(ctx context.Context, packageName string) {
	req, err := checkUploadFlags()
	if err != nil {
		wrapFatalWithKind("invalid upload request", err)
		return
	}

	pub, err := newPublisher(ctx, req.chunkSize)
	if err != nil {
		wrapFatalWithKind("could not open publishing session", err)
		return
	}

	artifact, err := appFs.Open(playpubFlags.publish.aab)
	if err != nil {
		wrapFatalWithKind("could not open bundle", status.ErrInvalidInput.Wrap(err))
		return
	}
	defer func(f afero.File) {
		_ = f.Close()
	}(artifact)

	logger.Info("uploading bundle",
		zap.String("package", packageName),
		zap.String("aab", playpubFlags.publish.aab),
		zap.String("size", units.BytesSize(float64(req.size))),
		zap.Stringer("track", req.track),
	)

	res, err := pub.UploadAndRelease(ctx, publisher.Release{
		PackageName:  packageName,
		Artifact:     artifact,
		Track:        req.track,
		ReleaseNotes: req.releaseNotes,
	})
	if res.Uploaded() {
		infoLogger.Printf("Uploaded AAB versionCode: %d", res.VersionCode)
	}
	if err != nil {
		wrapFatalWithKind("could not release bundle", err)
		return
	}

	infoLogger.Printf("AAB uploaded and released to %s track successfully.", req.track)
}
