// Package vcs defines the contract shared by the version-control adapters.
//
// An Adapter probes a repository URL, enumerates its branches and tags, and
// checks a version out into a local directory. Adapters never return errors:
// every failure collapses to false or an empty Versions map so that callers
// can probe adapters speculatively until one accepts the repository.
package vcs
