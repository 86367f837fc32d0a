package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oneconcern/playpub/pkg/auth"
	"github.com/oneconcern/playpub/pkg/publisher"
	"github.com/oneconcern/playpub/pkg/publisher/mocks"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const (
	testPackage = "com.example.app"
	testEmail   = "publisher@example.iam.gserviceaccount.com"
)

type ExitMocks struct {
	mock.Mock
	exitStatuses []int
}

func (m *ExitMocks) Fatalf(format string, v ...interface{}) {
	m.exitStatuses = append(m.exitStatuses, 1)
}

func (m *ExitMocks) Fatalln(v ...interface{}) {
	m.exitStatuses = append(m.exitStatuses, 1)
}

func (m *ExitMocks) Exit(code int) {
	m.exitStatuses = append(m.exitStatuses, code)
}

func (m *ExitMocks) fatalCalls() int {
	return len(m.exitStatuses)
}

func (m *ExitMocks) lastStatus() int {
	if len(m.exitStatuses) == 0 {
		return 0
	}
	return m.exitStatuses[len(m.exitStatuses)-1]
}

func NewExitMocks() *ExitMocks {
	return &ExitMocks{
		exitStatuses: make([]int, 0),
	}
}

// https://github.com/stretchr/testify/issues/610
func MakeFatalfMock(m *ExitMocks) func(string, ...interface{}) {
	return func(format string, v ...interface{}) {
		m.Fatalf(format, v...)
	}
}

func MakeFatallnMock(m *ExitMocks) func(...interface{}) {
	return func(v ...interface{}) {
		m.Fatalln(v...)
	}
}

func MakeExitMock(m *ExitMocks) func(int) {
	return func(code int) {
		m.Exit(code)
	}
}

var _ auth.Authenticator = &AuthMock{}

// AuthMock mocks the service account authentication
type AuthMock struct {
	mock.Mock
}

func (a *AuthMock) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	args := a.Called(ctx)
	source, _ := args.Get(0).(oauth2.TokenSource)
	return source, args.Error(1)
}

func staticToken() oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "ya29.test", TokenType: "Bearer"})
}

// credentials seen by the authenticator factory
type credentials struct {
	email   string
	keyFile string
}

type testEnv struct {
	exitMocks   *ExitMocks
	authMock    *AuthMock
	edits       *mocks.Edits
	fs          afero.Fs
	stdout      *bytes.Buffer
	stderr      *bytes.Buffer
	credentials []credentials
	chunkSizes  []int
}

// setupTests patches the CLI globals with test doubles. Globals are restored when the test completes.
func setupTests(t *testing.T) *testEnv {
	env := &testEnv{
		exitMocks: NewExitMocks(),
		authMock:  &AuthMock{},
		edits:     mocks.NewEdits(),
		fs:        afero.NewMemMapFs(),
		stdout:    new(bytes.Buffer),
		stderr:    new(bytes.Buffer),
	}

	// isolate tests from the environment of the host
	t.Setenv("SERVICE_ACCOUNT_EMAIL", testEmail)
	t.Setenv("PLAYPUB_KEY_FILE", "")
	t.Setenv("PLAYPUB_LOGLEVEL", "none")
	t.Setenv("PLAYPUB_CHUNK_SIZE", "")
	t.Setenv(envConfigLocation, "")

	var (
		savedFatalf       = logFatalf
		savedFatalln      = logFatalln
		savedExit         = osExit
		savedInfoLogger   = infoLogger
		savedErrOut       = errOut
		savedFs           = appFs
		savedAuth         = newAuthenticator
		savedEditsService = newEditsService
	)
	t.Cleanup(func() {
		logFatalf = savedFatalf
		logFatalln = savedFatalln
		osExit = savedExit
		infoLogger = savedInfoLogger
		errOut = savedErrOut
		appFs = savedFs
		newAuthenticator = savedAuth
		newEditsService = savedEditsService
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		playpubFlags = flagsT{}
	})

	logFatalf = MakeFatalfMock(env.exitMocks)
	logFatalln = MakeFatallnMock(env.exitMocks)
	osExit = MakeExitMock(env.exitMocks)
	infoLogger = log.New(env.stdout, "", 0)
	errOut = env.stderr
	appFs = env.fs
	rootCmd.SetOut(env.stderr)
	rootCmd.SetErr(env.stderr)

	newAuthenticator = func(email, keyFile string) auth.Authenticator {
		env.credentials = append(env.credentials, credentials{email: email, keyFile: keyFile})
		return env.authMock
	}
	newEditsService = func(_ context.Context, _ oauth2.TokenSource, chunkSize int) (publisher.EditsService, error) {
		env.chunkSizes = append(env.chunkSizes, chunkSize)
		return env.edits, nil
	}

	return env
}

func (env *testEnv) authenticates() {
	env.authMock.On("TokenSource", mock.Anything).Return(staticToken(), nil)
}

func (env *testEnv) writeFile(t testing.TB, name string, content []byte) {
	require.NoError(t, env.fs.MkdirAll(filepath.Dir(name), 0700))
	require.NoError(t, afero.WriteFile(env.fs, name, content, 0600))
}

// runCmd executes the CLI with args. With expectedCode 0, no fatal exit is expected.
func runCmd(t *testing.T, env *testEnv, cmd []string, intentMsg string, expectedCode int) {
	fatalCallsBefore := env.exitMocks.fatalCalls()

	playpubFlags = flagsT{}
	rootCmd.SetArgs(cmd)
	require.NoError(t, rootCmd.Execute(), "error executing '"+strings.Join(cmd, " ")+"' : "+intentMsg)

	if expectedCode == 0 {
		require.Equal(t, fatalCallsBefore, env.exitMocks.fatalCalls(),
			fmt.Sprintf("unexpected error in mocks on '%s' : %s\n%s", strings.Join(cmd, " "), intentMsg, env.stderr.String()))
		return
	}
	require.Equal(t, fatalCallsBefore+1, env.exitMocks.fatalCalls(),
		"ran '"+strings.Join(cmd, " ")+"' expecting error and didn't see one in mocks : "+intentMsg)
	require.Equal(t, expectedCode, env.exitMocks.lastStatus(), "unexpected exit code: "+env.stderr.String())
}
