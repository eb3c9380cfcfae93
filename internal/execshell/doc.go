// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and adapts both to the ProcessExecutor contract
// that the version-control adapters use to run svn and git in a testable
// manner.
package execshell
