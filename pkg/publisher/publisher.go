package publisher

import (
	"context"
	"fmt"
	"io"

	"github.com/oneconcern/playpub/pkg/errors"
	"github.com/oneconcern/playpub/pkg/publisher/status"
	"go.uber.org/zap"
)

// EditsService knows how to carry out the remote calls scoped to an edit.
//
// Implementations translate remote failures into the sentinel errors declared
// by the status package, in particular status.ErrAuthorizationExpired.
type EditsService interface {
	InsertEdit(ctx context.Context, packageName string) (string, error)
	ListBundles(ctx context.Context, packageName, editID string) ([]Bundle, error)
	UploadBundle(ctx context.Context, packageName, editID string, artifact io.Reader) (Bundle, error)
	UpdateTrack(ctx context.Context, packageName, editID string, update TrackUpdate) error
	CommitEdit(ctx context.Context, packageName, editID string) error
	DeleteEdit(ctx context.Context, packageName, editID string) error
}

// Publisher publishes app bundles over an authenticated session
type Publisher struct {
	edits         EditsService
	l             *zap.Logger
	keepListEdits bool
}

// New publisher operating on an authenticated edits session
func New(edits EditsService, opts ...Option) *Publisher {
	p := &Publisher{
		edits: edits,
		l:     zap.NewNop(),
	}
	for _, apply := range opts {
		apply(p)
	}
	return p
}

// Release describes the upload of an app bundle and its promotion to a track
type Release struct {
	PackageName  string
	Artifact     io.Reader
	Track        TrackName
	ReleaseNotes []LocalizedText
}

// Validate a release before any remote call is made
func (r Release) Validate() error {
	if _, err := CheckPackageName(r.PackageName); err != nil {
		return err
	}
	if r.Artifact == nil {
		return status.ErrInvalidInput.Wrap(errors.New("a bundle artifact is required"))
	}
	return r.Track.Validate()
}

func (p *Publisher) checkPackageName(packageName string) error {
	looksGood, err := CheckPackageName(packageName)
	if err != nil {
		return err
	}
	if !looksGood {
		p.l.Warn("package name does not look like an application id", zap.String("package", packageName))
	}
	return nil
}

func (p *Publisher) checkRelease(release Release) error {
	if err := p.checkPackageName(release.PackageName); err != nil {
		return err
	}
	return release.Validate()
}

// ListBundles returns the bundles uploaded for a package, in the order returned by the publishing API.
//
// The result is never nil: on failure, an empty slice is returned.
func (p *Publisher) ListBundles(ctx context.Context, packageName string) ([]Bundle, error) {
	none := []Bundle{}
	if err := p.checkPackageName(packageName); err != nil {
		return none, err
	}
	logger := p.l.With(zap.String("package", packageName))

	editID, err := p.edits.InsertEdit(ctx, packageName)
	if err != nil {
		return none, fmt.Errorf("%s: %w", StageEditOpen.step(), err)
	}
	logger = logger.With(zap.String("edit", editID))
	logger.Debug("edit opened to list bundles")

	if !p.keepListEdits {
		defer p.discard(ctx, logger, packageName, editID)
	}

	bundles, err := p.edits.ListBundles(ctx, packageName, editID)
	if err != nil {
		return none, fmt.Errorf("list bundles: %w", err)
	}
	logger.Debug("bundles listed", zap.Int("bundles", len(bundles)))

	if bundles == nil {
		return none, nil
	}
	return bundles, nil
}

// discard a read-only edit. Failures are not reported: the edit eventually expires.
func (p *Publisher) discard(ctx context.Context, logger *zap.Logger, packageName, editID string) {
	if err := p.edits.DeleteEdit(ctx, packageName, editID); err != nil {
		logger.Warn("could not discard edit", zap.Error(err))
		return
	}
	logger.Debug("edit discarded")
}

// UploadAndRelease uploads an app bundle then releases it on a track, all within a single edit.
//
// The returned Result tells how far the attempt went. When the upload succeeded but a later step
// failed, the version code is still reported even though the release is not live.
//
// Errors are reported as *StageError.
func (p *Publisher) UploadAndRelease(ctx context.Context, release Release) (Result, error) {
	a := &attempt{
		l: p.l.With(zap.String("package", release.PackageName), zap.Stringer("track", release.Track)),
	}
	if err := p.checkRelease(release); err != nil {
		return a.fail(StageEditOpen, err)
	}

	editID, err := p.edits.InsertEdit(ctx, release.PackageName)
	if err != nil {
		return a.fail(StageEditOpen, err)
	}
	a.result.EditID = editID
	a.l = a.l.With(zap.String("edit", editID))
	a.advance(StageEditOpen)

	bundle, err := p.edits.UploadBundle(ctx, release.PackageName, editID, release.Artifact)
	if err != nil {
		return a.fail(StageUploaded, err)
	}
	if bundle.VersionCode <= 0 {
		return a.fail(StageUploaded, status.ErrPublisherAPI.Wrap(
			fmt.Errorf("no valid version code assigned to the uploaded bundle (got %d)", bundle.VersionCode),
		))
	}
	a.result.VersionCode = bundle.VersionCode
	a.advance(StageUploaded, zap.Int64("versionCode", bundle.VersionCode), zap.String("sha256", bundle.SHA256))

	update := completedRelease(release.Track, bundle.VersionCode, release.ReleaseNotes)
	if err = update.Validate(); err != nil {
		return a.fail(StageTrackUpdated, err)
	}
	if err = p.edits.UpdateTrack(ctx, release.PackageName, editID, update); err != nil {
		return a.fail(StageTrackUpdated, err)
	}
	a.advance(StageTrackUpdated)

	if err = p.edits.CommitEdit(ctx, release.PackageName, editID); err != nil {
		return a.fail(StageCommitted, err)
	}
	a.advance(StageCommitted)

	return a.result, nil
}

// attempt tracks the stages of a single publishing attempt
type attempt struct {
	result Result
	l      *zap.Logger
}

func (a *attempt) advance(stage Stage, fields ...zap.Field) {
	a.result.Reached = stage
	a.result.Stage = stage
	a.l.Info("publishing stage reached", append(fields, zap.Stringer("stage", stage))...)
}

func (a *attempt) fail(step Stage, err error) (Result, error) {
	a.result.Stage = StageFailed
	a.l.Debug("publishing attempt failed",
		zap.Stringer("step", step),
		zap.Stringer("reached", a.result.Reached),
		zap.Error(err),
	)
	return a.result, &StageError{Step: step, Err: err}
}
