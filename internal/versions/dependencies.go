package versions

import (
	"time"

	"go.uber.org/zap"

	"github.com/niels-nijens/chrono/internal/execshell"
	"github.com/niels-nijens/chrono/internal/filesystem"
	"github.com/niels-nijens/chrono/internal/ui"
	"github.com/niels-nijens/chrono/internal/vcs"
)

// ResolveProcessExecutor returns the provided executor or builds one that runs svn and git on
// the host. Console feedback is attached when human-readable logging is active.
func ResolveProcessExecutor(existing vcs.ProcessExecutor, logger *zap.Logger, humanReadableLogging bool, commandTimeout time.Duration) (vcs.ProcessExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	observers := make([]execshell.CommandEventObserver, 0, 1)
	if humanReadableLogging {
		observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
	}

	shellExecutor, shellExecutorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), observers...)
	if shellExecutorError != nil {
		return nil, shellExecutorError
	}

	processExecutor, processExecutorError := execshell.NewProcessExecutor(shellExecutor, filesystem.OSFileSystem{}, commandTimeout)
	if processExecutorError != nil {
		return nil, processExecutorError
	}
	return processExecutor, nil
}
