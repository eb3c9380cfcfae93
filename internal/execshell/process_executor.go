package execshell

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"time"
)

const (
	shellExecutorNotConfiguredMessageConstant = "process executor requires a shell executor"
	fileSystemNotConfiguredMessageConstant    = "process executor requires a file system"
	outputLineSeparatorConstant               = "\n"
	carriageReturnConstant                    = "\r"
)

// ErrShellExecutorNotConfigured indicates that NewProcessExecutor received a nil executor.
var ErrShellExecutorNotConfigured = errors.New(shellExecutorNotConfiguredMessageConstant)

// ErrFileSystemNotConfigured indicates that NewProcessExecutor received a nil file system.
var ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)

// CommandExecutor runs a ShellCommand and reports failures as errors.
type CommandExecutor interface {
	Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// FileInspector exposes the file metadata lookups used to classify working directories.
type FileInspector interface {
	Stat(path string) (fs.FileInfo, error)
}

// ProcessResult reports whether a command succeeded along with whatever output it produced.
type ProcessResult struct {
	Successful bool
	ExecutionResult
}

// OutputLines splits standard output into lines. A trailing newline does not yield an empty line.
func (result ProcessResult) OutputLines() []string {
	if len(result.StandardOutput) == 0 {
		return nil
	}

	trimmedOutput := strings.TrimSuffix(result.StandardOutput, outputLineSeparatorConstant)
	outputLines := strings.Split(trimmedOutput, outputLineSeparatorConstant)
	for lineIndex, outputLine := range outputLines {
		outputLines[lineIndex] = strings.TrimSuffix(outputLine, carriageReturnConstant)
	}
	return outputLines
}

// ProcessExecutor converts command errors into unsuccessful results so that callers probing
// for tool support never have to handle them.
type ProcessExecutor struct {
	executor       CommandExecutor
	fileInspector  FileInspector
	commandTimeout time.Duration
}

// NewProcessExecutor constructs a ProcessExecutor. A zero commandTimeout imposes no deadline.
func NewProcessExecutor(executor CommandExecutor, fileInspector FileInspector, commandTimeout time.Duration) (*ProcessExecutor, error) {
	if executor == nil {
		return nil, ErrShellExecutorNotConfigured
	}
	if fileInspector == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &ProcessExecutor{executor: executor, fileInspector: fileInspector, commandTimeout: commandTimeout}, nil
}

// Execute runs the command and reports its outcome. Output captured from a failing command is
// preserved on the result.
func (processExecutor *ProcessExecutor) Execute(executionContext context.Context, command ShellCommand) ProcessResult {
	if executionContext == nil {
		executionContext = context.Background()
	}
	if processExecutor.commandTimeout > 0 {
		var cancel context.CancelFunc
		executionContext, cancel = context.WithTimeout(executionContext, processExecutor.commandTimeout)
		defer cancel()
	}

	executionResult, executionError := processExecutor.executor.Execute(executionContext, command)
	if executionError == nil {
		return ProcessResult{Successful: true, ExecutionResult: executionResult}
	}

	var failedError CommandFailedError
	if errors.As(executionError, &failedError) {
		return ProcessResult{Successful: false, ExecutionResult: failedError.Result}
	}
	return ProcessResult{Successful: false}
}

// IsDirectory reports whether path exists and is a directory.
func (processExecutor *ProcessExecutor) IsDirectory(path string) bool {
	if len(strings.TrimSpace(path)) == 0 {
		return false
	}
	fileInfo, statError := processExecutor.fileInspector.Stat(path)
	if statError != nil {
		return false
	}
	return fileInfo.IsDir()
}
