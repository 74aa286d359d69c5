// Package config manages prflow configuration.
//
// It handles:
//   - Locating .pr_creator_config.json in the working and home directories
//   - Merging the file over the built-in defaults
//   - Remembering GitHub handles resolved for commit author emails
package config
