package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	subversionVersionSubcommandConstant  = "--version"
	subversionInfoSubcommandConstant     = "info"
	subversionListSubcommandConstant     = "ls"
	subversionListLongSubcommandConstant = "list"
	subversionSwitchSubcommandConstant   = "switch"
	subversionCheckoutSubcommandConstant = "checkout"
	subversionCheckoutShortConstant      = "co"
	gitVersionSubcommandConstant         = "--version"
	gitLSRemoteSubcommandConstant        = "ls-remote"
	gitRevParseSubcommandConstant        = "rev-parse"
	gitFetchSubcommandConstant           = "fetch"
	gitCloneSubcommandConstant           = "clone"
	gitCheckoutSubcommandConstant        = "checkout"
	gitHeadsFlagConstant                 = "--heads"
	gitTagsFlagConstant                  = "--tags"
)

// stageTemplates holds one message template per lifecycle stage. Start and success templates
// receive the subject; failure templates additionally receive the exit code and stderr suffix,
// execution failure templates receive the failure description.
type stageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

var (
	subversionVersionTemplates = stageTemplates{
		start:            "Checking for a Subversion client%s",
		success:          "Subversion client available%s",
		failure:          "Subversion client unavailable%s (exit code %d%s)",
		executionFailure: "Subversion client unavailable%s: %s",
	}
	subversionRemoteInfoTemplates = stageTemplates{
		start:            "Probing Subversion repository %s",
		success:          "%s is a Subversion repository",
		failure:          "%s is not a reachable Subversion repository (exit code %d%s)",
		executionFailure: "Unable to probe %s: %s",
	}
	subversionWorkingCopyInfoTemplates = stageTemplates{
		start:            "Inspecting working copy %s",
		success:          "%s is a Subversion working copy",
		failure:          "%s is not a Subversion working copy (exit code %d%s)",
		executionFailure: "Unable to inspect %s: %s",
	}
	subversionListTemplates = stageTemplates{
		start:            "Listing %s",
		success:          "Listed %s",
		failure:          "Failed to list %s (exit code %d%s)",
		executionFailure: "Unable to list %s: %s",
	}
	subversionSwitchTemplates = stageTemplates{
		start:            "Switching %s",
		success:          "Switched %s",
		failure:          "Failed to switch %s (exit code %d%s)",
		executionFailure: "Unable to switch %s: %s",
	}
	subversionCheckoutTemplates = stageTemplates{
		start:            "Checking out %s",
		success:          "Checked out %s",
		failure:          "Failed to check out %s (exit code %d%s)",
		executionFailure: "Unable to check out %s: %s",
	}
	gitVersionTemplates = stageTemplates{
		start:            "Checking for a Git client%s",
		success:          "Git client available%s",
		failure:          "Git client unavailable%s (exit code %d%s)",
		executionFailure: "Git client unavailable%s: %s",
	}
	gitLSRemoteTemplates = stageTemplates{
		start:            "Querying %s",
		success:          "Queried %s",
		failure:          "Failed to query %s (exit code %d%s)",
		executionFailure: "Unable to query %s: %s",
	}
	gitWorkTreeTemplates = stageTemplates{
		start:            "Inspecting work tree %s",
		success:          "%s is a Git work tree",
		failure:          "%s is not a Git work tree (exit code %d%s)",
		executionFailure: "Unable to inspect %s: %s",
	}
	gitFetchTemplates = stageTemplates{
		start:            "Fetching into %s",
		success:          "Fetched into %s",
		failure:          "Failed to fetch into %s (exit code %d%s)",
		executionFailure: "Unable to fetch into %s: %s",
	}
	gitCloneTemplates = stageTemplates{
		start:            "Cloning %s",
		success:          "Cloned %s",
		failure:          "Failed to clone %s (exit code %d%s)",
		executionFailure: "Unable to clone %s: %s",
	}
	gitCheckoutTemplates = stageTemplates{
		start:            "Switching %s",
		success:          "%s now checked out",
		failure:          "Failed to switch %s (exit code %d%s)",
		executionFailure: "Unable to switch %s: %s",
	}
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	positional := positionalArguments(command.Details.Arguments[1:])

	switch command.Name {
	case CommandSubversion:
		return formatter.describeSubversionMessage(command, subcommand, positional, result, failure, stage)
	case CommandGit:
		return formatter.describeGitMessage(command, subcommand, positional, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeSubversionMessage(command ShellCommand, subcommand string, positional []string, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch subcommand {
	case subversionVersionSubcommandConstant:
		return formatter.render(subversionVersionTemplates, emptyStringConstant, result, failure, stage)
	case subversionInfoSubcommandConstant:
		if len(positional) == 0 {
			return formatter.render(subversionWorkingCopyInfoTemplates, workingDirectory, result, failure, stage)
		}
		return formatter.render(subversionRemoteInfoTemplates, positional[0], result, failure, stage)
	case subversionListSubcommandConstant, subversionListLongSubcommandConstant:
		return formatter.render(subversionListTemplates, formatter.argumentAtIndex(positional, 0), result, failure, stage)
	case subversionSwitchSubcommandConstant:
		subject := fmt.Sprintf("%s to %s", workingDirectory, formatter.argumentAtIndex(positional, 0))
		return formatter.render(subversionSwitchTemplates, subject, result, failure, stage)
	case subversionCheckoutSubcommandConstant, subversionCheckoutShortConstant:
		subject := fmt.Sprintf("%s into %s", formatter.argumentAtIndex(positional, 0), formatter.argumentAtIndex(positional, 1))
		return formatter.render(subversionCheckoutTemplates, subject, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, subcommand string, positional []string, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch subcommand {
	case gitVersionSubcommandConstant:
		return formatter.render(gitVersionTemplates, emptyStringConstant, result, failure, stage)
	case gitLSRemoteSubcommandConstant:
		subject := formatter.argumentAtIndex(positional, 0)
		switch {
		case containsArgument(command.Details.Arguments, gitHeadsFlagConstant):
			subject = "branches on " + subject
		case containsArgument(command.Details.Arguments, gitTagsFlagConstant):
			subject = "tags on " + subject
		}
		return formatter.render(gitLSRemoteTemplates, subject, result, failure, stage)
	case gitRevParseSubcommandConstant:
		return formatter.render(gitWorkTreeTemplates, workingDirectory, result, failure, stage)
	case gitFetchSubcommandConstant:
		return formatter.render(gitFetchTemplates, workingDirectory, result, failure, stage)
	case gitCloneSubcommandConstant:
		subject := fmt.Sprintf("%s into %s", formatter.argumentAtIndex(positional, 0), formatter.argumentAtIndex(positional, 1))
		return formatter.render(gitCloneTemplates, subject, result, failure, stage)
	case gitCheckoutSubcommandConstant:
		subject := fmt.Sprintf("%s to %s", workingDirectory, formatter.argumentAtIndex(positional, 0))
		if stage == messageStageSuccess {
			subject = fmt.Sprintf("%s in %s", formatter.argumentAtIndex(positional, 0), workingDirectory)
		}
		return formatter.render(gitCheckoutTemplates, subject, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) render(templates stageTemplates, subject string, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, subject)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, subject)
	case messageStageFailure:
		return fmt.Sprintf(templates.failure, subject, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(templates.executionFailure, subject, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := command.CommandLine()
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) {
		return fallbackUnknownValueLabelConstant
	}
	trimmedArgument := strings.TrimSpace(arguments[index])
	if len(trimmedArgument) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmedArgument
}

func positionalArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			continue
		}
		positional = append(positional, trimmedArgument)
	}
	return positional
}

func containsArgument(arguments []string, target string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == target {
			return true
		}
	}
	return false
}
