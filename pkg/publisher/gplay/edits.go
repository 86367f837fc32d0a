// Package gplay implements the publisher.EditsService over the Google Play Developer API (androidpublisher v3).
package gplay

import (
	"context"
	"fmt"
	"io"
	"strconv"

	units "github.com/docker/go-units"
	"github.com/oneconcern/playpub/pkg/publisher"
	"github.com/oneconcern/playpub/pkg/publisher/status"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/androidpublisher/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	// Scope is the single authorization scope required by the publishing API
	Scope = androidpublisher.AndroidpublisherScope

	// DefaultChunkSize is the default size of chunks sent during resumable uploads
	DefaultChunkSize = 8 * units.MiB

	bundleContentType = "application/octet-stream"
)

var _ publisher.EditsService = &Edits{}

// Edits is an authenticated session to the Google Play Developer API
type Edits struct {
	svc           *androidpublisher.Service
	l             *zap.Logger
	chunkSize     int
	clientOptions []option.ClientOption
}

// New session to the publishing API, authenticated by some token source.
//
// A nil token source is only useful with a client option providing its own http client.
func New(ctx context.Context, tokenSource oauth2.TokenSource, opts ...Option) (*Edits, error) {
	e := &Edits{
		l:         zap.NewNop(),
		chunkSize: DefaultChunkSize,
	}
	for _, apply := range opts {
		apply(e)
	}

	clientOptions := make([]option.ClientOption, 0, len(e.clientOptions)+2)
	if tokenSource != nil {
		clientOptions = append(clientOptions, option.WithTokenSource(tokenSource), option.WithScopes(Scope))
	}
	clientOptions = append(clientOptions, e.clientOptions...)

	svc, err := androidpublisher.NewService(ctx, clientOptions...)
	if err != nil {
		return nil, status.ErrPublisherAPI.Wrap(fmt.Errorf("could not create publisher service: %w", err))
	}
	e.svc = svc
	return e, nil
}

// InsertEdit opens a new edit for a package
func (e *Edits) InsertEdit(ctx context.Context, packageName string) (string, error) {
	logger := e.l.With(zap.String("package", packageName))
	logger.Debug("start InsertEdit")

	edit, err := e.svc.Edits.Insert(packageName, &androidpublisher.AppEdit{}).Context(ctx).Do()
	if err != nil {
		logger.Debug("end InsertEdit", zap.Error(err))
		return "", toSentinelErrors(err)
	}
	logger.Debug("end InsertEdit", zap.String("edit", edit.Id), zap.String("expires", edit.ExpiryTimeSeconds))
	return edit.Id, nil
}

// ListBundles lists the bundles visible within an edit
func (e *Edits) ListBundles(ctx context.Context, packageName, editID string) ([]publisher.Bundle, error) {
	logger := e.l.With(zap.String("package", packageName), zap.String("edit", editID))
	logger.Debug("start ListBundles")

	resp, err := e.svc.Edits.Bundles.List(packageName, editID).Context(ctx).Do()
	if err != nil {
		logger.Debug("end ListBundles", zap.Error(err))
		return nil, toSentinelErrors(err)
	}

	bundles := make([]publisher.Bundle, 0, len(resp.Bundles))
	for _, b := range resp.Bundles {
		if b == nil {
			continue
		}
		bundles = append(bundles, publisher.Bundle{
			VersionCode: b.VersionCode,
			SHA256:      b.Sha256,
		})
	}
	logger.Debug("end ListBundles", zap.Int("bundles", len(bundles)))
	return bundles, nil
}

// UploadBundle uploads an app bundle within an edit.
//
// The artifact is read sequentially. A bundle smaller than the configured chunk size is
// sent in a single multipart request. Larger bundles open a resumable upload session and
// are sent one chunk at a time.
func (e *Edits) UploadBundle(ctx context.Context, packageName, editID string, artifact io.Reader) (publisher.Bundle, error) {
	logger := e.l.With(zap.String("package", packageName), zap.String("edit", editID))
	logger.Debug("start UploadBundle", zap.String("chunkSize", units.BytesSize(float64(e.chunkSize))))

	bundle, err := e.svc.Edits.Bundles.Upload(packageName, editID).
		Media(artifact,
			googleapi.ContentType(bundleContentType),
			googleapi.ChunkSize(e.chunkSize),
		).
		ProgressUpdater(func(current, total int64) {
			logger.Debug("upload progress",
				zap.String("sent", units.BytesSize(float64(current))),
				zap.Int64("bytes", current),
			)
		}).
		Context(ctx).
		Do()
	if err != nil {
		logger.Debug("end UploadBundle", zap.Error(err))
		return publisher.Bundle{}, toSentinelErrors(err)
	}

	logger.Debug("end UploadBundle", zap.Int64("versionCode", bundle.VersionCode))
	return publisher.Bundle{
		VersionCode: bundle.VersionCode,
		SHA256:      bundle.Sha256,
	}, nil
}

// UpdateTrack replaces the releases of a track within an edit
func (e *Edits) UpdateTrack(ctx context.Context, packageName, editID string, update publisher.TrackUpdate) error {
	logger := e.l.With(zap.String("package", packageName), zap.String("edit", editID), zap.Stringer("track", update.Track))
	logger.Debug("start UpdateTrack")

	track, err := toTrack(update)
	if err != nil {
		return err
	}

	_, err = e.svc.Edits.Tracks.Update(packageName, editID, string(update.Track), track).Context(ctx).Do()
	if err != nil {
		logger.Debug("end UpdateTrack", zap.Error(err))
		return toSentinelErrors(err)
	}
	logger.Debug("end UpdateTrack")
	return nil
}

// CommitEdit commits all changes made within an edit
func (e *Edits) CommitEdit(ctx context.Context, packageName, editID string) error {
	logger := e.l.With(zap.String("package", packageName), zap.String("edit", editID))
	logger.Debug("start CommitEdit")

	_, err := e.svc.Edits.Commit(packageName, editID).Context(ctx).Do()
	if err != nil {
		logger.Debug("end CommitEdit", zap.Error(err))
		return toSentinelErrors(err)
	}
	logger.Debug("end CommitEdit")
	return nil
}

// DeleteEdit discards an edit and all the changes made within it
func (e *Edits) DeleteEdit(ctx context.Context, packageName, editID string) error {
	logger := e.l.With(zap.String("package", packageName), zap.String("edit", editID))
	logger.Debug("start DeleteEdit")

	if err := e.svc.Edits.Delete(packageName, editID).Context(ctx).Do(); err != nil {
		logger.Debug("end DeleteEdit", zap.Error(err))
		return toSentinelErrors(err)
	}
	logger.Debug("end DeleteEdit")
	return nil
}

// toTrack converts a track update into the API representation
func toTrack(update publisher.TrackUpdate) (*androidpublisher.Track, error) {
	track := &androidpublisher.Track{
		Track:    string(update.Track),
		Releases: make([]*androidpublisher.TrackRelease, 0, len(update.Releases)),
	}

	for _, release := range update.Releases {
		codes := make(googleapi.Int64s, 0, len(release.VersionCodes))
		for _, code := range release.VersionCodes {
			versionCode, err := strconv.ParseInt(code, 10, 64)
			if err != nil {
				return nil, status.ErrInvalidTrackUpdate.Wrap(fmt.Errorf("invalid version code %q: %w", code, err))
			}
			codes = append(codes, versionCode)
		}

		var notes []*androidpublisher.LocalizedText
		for _, note := range release.ReleaseNotes {
			notes = append(notes, &androidpublisher.LocalizedText{
				Language: note.Language,
				Text:     note.Text,
			})
		}

		track.Releases = append(track.Releases, &androidpublisher.TrackRelease{
			VersionCodes: codes,
			Status:       string(release.Status),
			ReleaseNotes: notes,
		})
	}
	return track, nil
}
