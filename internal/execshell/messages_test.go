package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandMessageFormatterDescribesSubversionCommands(t *testing.T) {
	testCases := []struct {
		name            string
		command         ShellCommand
		result          ExecutionResult
		failure         error
		stage           messageStage
		expectedMessage string
	}{
		{
			name:            "VersionStart",
			command:         ShellCommand{Name: CommandSubversion, Details: CommandDetails{Arguments: []string{"--version"}}},
			stage:           messageStageStart,
			expectedMessage: "Checking for a Subversion client",
		},
		{
			name:            "RemoteInfoSuccess",
			command:         ShellCommand{Name: CommandSubversion, Details: CommandDetails{Arguments: []string{"info", "--non-interactive", "https://example.org/repo"}}},
			stage:           messageStageSuccess,
			expectedMessage: "https://example.org/repo is a Subversion repository",
		},
		{
			name:            "WorkingCopyInfoFailure",
			command:         ShellCommand{Name: CommandSubversion, Details: CommandDetails{Arguments: []string{"info", "--non-interactive"}, WorkingDirectory: "/srv/app"}},
			result:          ExecutionResult{ExitCode: 1, StandardError: "svn: E155007: not a working copy\n"},
			stage:           messageStageFailure,
			expectedMessage: "/srv/app is not a Subversion working copy (exit code 1: svn: E155007: not a working copy)",
		},
		{
			name:            "ListStart",
			command:         ShellCommand{Name: CommandSubversion, Details: CommandDetails{Arguments: []string{"ls", "--non-interactive", "--verbose", "svn://example.org/repo/tags"}}},
			stage:           messageStageStart,
			expectedMessage: "Listing svn://example.org/repo/tags",
		},
		{
			name:            "SwitchSuccess",
			command:         ShellCommand{Name: CommandSubversion, Details: CommandDetails{Arguments: []string{"switch", "--non-interactive", "svn://example.org/repo/trunk"}, WorkingDirectory: "/srv/app"}},
			stage:           messageStageSuccess,
			expectedMessage: "Switched /srv/app to svn://example.org/repo/trunk",
		},
		{
			name:            "CheckoutExecutionFailure",
			command:         ShellCommand{Name: CommandSubversion, Details: CommandDetails{Arguments: []string{"checkout", "--non-interactive", "svn://example.org/repo/trunk", "/srv/app"}}},
			failure:         errors.New("signal: killed"),
			stage:           messageStageExecutionFailure,
			expectedMessage: "Unable to check out svn://example.org/repo/trunk into /srv/app: signal: killed",
		},
	}

	formatter := CommandMessageFormatter{}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			message := formatter.buildMessage(testCase.command, testCase.result, testCase.failure, testCase.stage)
			require.Equal(t, testCase.expectedMessage, message)
		})
	}
}

func TestBuildStartedMessageForGitListingIncludesReferenceKind(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"ls-remote", "--heads", "https://github.com/acme/app.git"}},
	}

	require.Equal(t, "Querying branches on https://github.com/acme/app.git", formatter.BuildStartedMessage(command))
}

func TestBuildSuccessMessageForGitCheckoutNamesVersion(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"checkout", "v1.2.0"}, WorkingDirectory: "/srv/app"},
	}

	require.Equal(t, "v1.2.0 in /srv/app now checked out", formatter.BuildSuccessMessage(command))
}

func TestBuildFailureMessageFallsBackToQuotedCommandLine(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandSubversion,
		Details: CommandDetails{Arguments: []string{"propget", "svn:externals", "my dir"}},
	}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 2})

	require.Equal(t, "svn propget svn:externals 'my dir' failed with exit code 2", message)
}
