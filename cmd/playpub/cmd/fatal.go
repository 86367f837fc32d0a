package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/oneconcern/playpub/pkg/errors"
	"github.com/oneconcern/playpub/pkg/publisher/status"
)

// exit codes
const (
	exitRemote        = 1
	exitInvalidInput  = 2
	exitAuthorization = 3
)

const reauthorizeHint = "please check the service account credentials and re-run the application to re-authorize"

var (
	// globals used to patch over calls to os.Exit() during test

	logFatalln = log.Fatalln
	logFatalf  = log.Fatalf
	osExit     = os.Exit

	// infoLogger wraps informative messages to os.Stdout without cluttering expected output in tests.
	// To be used instead on fmt.Printf(os.Stdout, ...)
	infoLogger = log.New(os.Stdout, "", 0)

	// errOut receives error messages
	errOut io.Writer = color.Error
)

func wrapFatalln(msg string, err error) {
	if err == nil {
		logFatalln(msg)
	} else {
		logFatalf("%v", fmt.Errorf(msg+": %w", err))
	}
}

func wrapFatalWithCodef(code int, format string, args ...interface{}) {
	_, _ = color.New(color.FgRed).Fprintf(errOut, format+"\n", args...)
	osExit(code)
}

// exitCode tells the exit code for some error
func exitCode(err error) int {
	switch status.KindOf(err) {
	case status.KindValidation:
		return exitInvalidInput
	case status.KindAuthorization:
		return exitAuthorization
	default:
		return exitRemote
	}
}

// wrapFatalWithKind exits with a code depending on the kind of error
func wrapFatalWithKind(msg string, err error) {
	code := exitCode(err)
	if code == exitAuthorization && !errors.Is(err, status.ErrAuthorizationExpired) {
		wrapFatalWithCodef(code, "%s: %v\n%s", msg, err, reauthorizeHint)
		return
	}
	wrapFatalWithCodef(code, "%s: %v", msg, err)
}
