package execshell

import (
	"strings"

	"al.essio.dev/pkg/shellescape"
)

const commandLineSeparatorConstant = " "

// EscapeArgument returns a shell-safe rendering of value.
func EscapeArgument(value string) string {
	return shellescape.Quote(value)
}

// CommandLine renders the command as a single shell-safe line. It is used for logs and
// console messages only; commands are always executed from their argument list.
func (command ShellCommand) CommandLine() string {
	commandParts := make([]string, 0, len(command.Details.Arguments)+1)
	commandParts = append(commandParts, EscapeArgument(string(command.Name)))
	for _, argument := range command.Details.Arguments {
		commandParts = append(commandParts, EscapeArgument(argument))
	}
	return strings.Join(commandParts, commandLineSeparatorConstant)
}
