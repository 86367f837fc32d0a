package publisher

import "fmt"

// Stage of a publishing attempt
type Stage uint8

// Stages of a publishing attempt, in order
const (
	StageStart Stage = iota
	StageEditOpen
	StageUploaded
	StageTrackUpdated
	StageCommitted
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "START"
	case StageEditOpen:
		return "EDIT_OPEN"
	case StageUploaded:
		return "UPLOADED"
	case StageTrackUpdated:
		return "TRACK_UPDATED"
	case StageCommitted:
		return "COMMITTED"
	case StageFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// step describes the action that moves an attempt into this stage
func (s Stage) step() string {
	switch s {
	case StageEditOpen:
		return "insert edit"
	case StageUploaded:
		return "upload bundle"
	case StageTrackUpdated:
		return "update track"
	case StageCommitted:
		return "commit edit"
	default:
		return "publish"
	}
}

// StageError reports the step at which a publishing attempt failed.
//
// Step is the stage the attempt was trying to reach.
type StageError struct {
	Step Stage
	Err  error
}

func (e *StageError) Error() string {
	return e.Step.step() + ": " + e.Err.Error()
}

// Unwrap the cause of the failure
func (e *StageError) Unwrap() error {
	return e.Err
}

// Result of a publishing attempt
type Result struct {
	// EditID is the identifier of the edit opened for this attempt, if any
	EditID string
	// VersionCode is the version code assigned to the uploaded bundle. It is set as soon as the upload succeeds.
	VersionCode int64
	// Reached is the last stage successfully reached
	Reached Stage
	// Stage is the current stage of the attempt: COMMITTED when successful, FAILED otherwise
	Stage Stage
}

// Uploaded tells if the bundle was uploaded, even though the attempt may have failed later on
func (r Result) Uploaded() bool {
	return r.Reached >= StageUploaded
}
