package publisher

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/oneconcern/playpub/pkg/errors"
	"github.com/oneconcern/playpub/pkg/publisher/status"
	"go.uber.org/multierr"
)

var packageNameRex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*(\.[A-Za-z][A-Za-z0-9_]*)+$`)

// CheckPackageName verifies that a package name is provided.
//
// It returns true when the name looks like a reverse-domain application id.
// This check is advisory: only the publishing API knows if a package exists.
func CheckPackageName(name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, status.ErrInvalidInput.Wrap(errors.New("a package name is required"))
	}
	return packageNameRex.MatchString(name), nil
}

// Bundle describes an app bundle known to the publishing API
type Bundle struct {
	VersionCode int64  `json:"versionCode" yaml:"versionCode"`
	SHA256      string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
}

// TrackName identifies a release track, e.g. "internal", "alpha", "beta", "production".
//
// Custom tracks exist, so the name remains opaque: only the publishing API validates it.
type TrackName string

// Validate a track name
func (t TrackName) Validate() error {
	if strings.TrimSpace(string(t)) == "" {
		return status.ErrInvalidInput.Wrap(errors.New("a track name is required"))
	}
	return nil
}

func (t TrackName) String() string {
	return string(t)
}

// ReleaseStatus is the status of a release on a track
type ReleaseStatus string

// Release statuses known to the publishing API
const (
	StatusDraft      ReleaseStatus = "draft"
	StatusInProgress ReleaseStatus = "inProgress"
	StatusHalted     ReleaseStatus = "halted"
	StatusCompleted  ReleaseStatus = "completed"
)

// Valid release status
func (s ReleaseStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusHalted, StatusCompleted:
		return true
	default:
		return false
	}
}

// LocalizedText is some text in a given language, identified by a BCP-47 tag
type LocalizedText struct {
	Language string `json:"language" yaml:"language"`
	Text     string `json:"text" yaml:"text"`
}

// TrackRelease is one release on a track
type TrackRelease struct {
	VersionCodes []string        `json:"versionCodes" yaml:"versionCodes"`
	Status       ReleaseStatus   `json:"status" yaml:"status"`
	ReleaseNotes []LocalizedText `json:"releaseNotes,omitempty" yaml:"releaseNotes,omitempty"`
}

// TrackUpdate is the payload sent to update a track
type TrackUpdate struct {
	Track    TrackName      `json:"track" yaml:"track"`
	Releases []TrackRelease `json:"releases" yaml:"releases"`
}

// Validate a track update payload. All violations are reported at once.
func (u TrackUpdate) Validate() error {
	var err error
	if e := u.Track.Validate(); e != nil {
		err = multierr.Append(err, e)
	}
	if len(u.Releases) == 0 {
		err = multierr.Append(err, errors.New("at least one release is required"))
	}
	for i, release := range u.Releases {
		if !release.Status.Valid() {
			err = multierr.Append(err, fmt.Errorf("release %d: unknown status %q", i, release.Status))
		}
		if len(release.VersionCodes) == 0 {
			err = multierr.Append(err, fmt.Errorf("release %d: no version code", i))
		}
		for _, code := range release.VersionCodes {
			if v, e := strconv.ParseInt(code, 10, 64); e != nil || v <= 0 {
				err = multierr.Append(err, fmt.Errorf("release %d: invalid version code %q", i, code))
			}
		}
		for _, note := range release.ReleaseNotes {
			if strings.TrimSpace(note.Language) == "" {
				err = multierr.Append(err, fmt.Errorf("release %d: release notes without a language", i))
			}
		}
	}
	if err != nil {
		return status.ErrInvalidTrackUpdate.Wrap(err)
	}
	return nil
}

// completedRelease builds a track update promoting a single version code
func completedRelease(track TrackName, versionCode int64, notes []LocalizedText) TrackUpdate {
	releaseNotes := make([]LocalizedText, len(notes))
	copy(releaseNotes, notes)

	return TrackUpdate{
		Track: track,
		Releases: []TrackRelease{
			{
				VersionCodes: []string{strconv.FormatInt(versionCode, 10)},
				Status:       StatusCompleted,
				ReleaseNotes: releaseNotes,
			},
		},
	}
}
