package execshell_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/niels-nijens/chrono/internal/execshell"
	"github.com/niels-nijens/chrono/internal/filesystem"
)

type deadlineRecordingExecutor struct {
	result      execshell.ExecutionResult
	err         error
	hadDeadline bool
}

func (executor *deadlineRecordingExecutor) Execute(executionContext context.Context, _ execshell.ShellCommand) (execshell.ExecutionResult, error) {
	_, executor.hadDeadline = executionContext.Deadline()
	return executor.result, executor.err
}

type failingFileInspector struct{}

func (failingFileInspector) Stat(string) (fs.FileInfo, error) {
	return nil, fs.ErrNotExist
}

func TestNewProcessExecutorValidatesDependencies(testInstance *testing.T) {
	_, creationError := execshell.NewProcessExecutor(nil, filesystem.OSFileSystem{}, 0)
	require.ErrorIs(testInstance, creationError, execshell.ErrShellExecutorNotConfigured)

	_, creationError = execshell.NewProcessExecutor(&deadlineRecordingExecutor{}, nil, 0)
	require.ErrorIs(testInstance, creationError, execshell.ErrFileSystemNotConfigured)
}

func TestProcessExecutorExecuteReportsOutcome(testInstance *testing.T) {
	testCases := []struct {
		name               string
		runnerResult       execshell.ExecutionResult
		runnerError        error
		expectedSuccessful bool
		expectedLines      []string
	}{
		{
			name:               "successful_listing",
			runnerResult:       execshell.ExecutionResult{StandardOutput: "     12 alice  Jan 01 10:00 ./\n     10 bob    Jan 01 09:00 feature-x/\n"},
			expectedSuccessful: true,
			expectedLines:      []string{"     12 alice  Jan 01 10:00 ./", "     10 bob    Jan 01 09:00 feature-x/"},
		},
		{
			name:               "failing_command_keeps_output",
			runnerResult:       execshell.ExecutionResult{StandardOutput: "partial\r\n", ExitCode: 1},
			expectedSuccessful: false,
			expectedLines:      []string{"partial"},
		},
		{
			name:               "runner_failure",
			runnerError:        errors.New("exec: \"svn\": executable file not found in $PATH"),
			expectedSuccessful: false,
			expectedLines:      nil,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			shellExecutor, creationError := execshell.NewShellExecutor(zap.NewNop(), &recordingCommandRunner{
				executionResult: testCase.runnerResult,
				executionError:  testCase.runnerError,
			})
			require.NoError(testInstance, creationError)

			processExecutor, creationError := execshell.NewProcessExecutor(shellExecutor, filesystem.OSFileSystem{}, 0)
			require.NoError(testInstance, creationError)

			processResult := processExecutor.Execute(context.Background(), execshell.ShellCommand{Name: execshell.CommandSubversion})

			require.Equal(testInstance, testCase.expectedSuccessful, processResult.Successful)
			require.Equal(testInstance, testCase.expectedLines, processResult.OutputLines())
		})
	}
}

func TestProcessExecutorAppliesCommandTimeout(testInstance *testing.T) {
	recordingExecutor := &deadlineRecordingExecutor{}

	processExecutor, creationError := execshell.NewProcessExecutor(recordingExecutor, filesystem.OSFileSystem{}, time.Minute)
	require.NoError(testInstance, creationError)
	processExecutor.Execute(context.Background(), execshell.ShellCommand{Name: execshell.CommandGit})
	require.True(testInstance, recordingExecutor.hadDeadline)

	processExecutor, creationError = execshell.NewProcessExecutor(recordingExecutor, filesystem.OSFileSystem{}, 0)
	require.NoError(testInstance, creationError)
	processExecutor.Execute(context.Background(), execshell.ShellCommand{Name: execshell.CommandGit})
	require.False(testInstance, recordingExecutor.hadDeadline)
}

func TestProcessExecutorIsDirectory(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	regularFilePath := filepath.Join(temporaryDirectory, "README")
	require.NoError(testInstance, os.WriteFile(regularFilePath, []byte("chrono"), 0o600))

	processExecutor, creationError := execshell.NewProcessExecutor(&deadlineRecordingExecutor{}, filesystem.OSFileSystem{}, 0)
	require.NoError(testInstance, creationError)

	require.True(testInstance, processExecutor.IsDirectory(temporaryDirectory))
	require.False(testInstance, processExecutor.IsDirectory(regularFilePath))
	require.False(testInstance, processExecutor.IsDirectory(filepath.Join(temporaryDirectory, "missing")))
	require.False(testInstance, processExecutor.IsDirectory(""))

	failingExecutor, creationError := execshell.NewProcessExecutor(&deadlineRecordingExecutor{}, failingFileInspector{}, 0)
	require.NoError(testInstance, creationError)
	require.False(testInstance, failingExecutor.IsDirectory(temporaryDirectory))
}
