// Package runtime provides the execution context for prflow commands.
//
// It bundles the shared dependencies needed by actions: the logger, the
// loaded configuration, the git reader, the GitHub client and the prompter.
package runtime
