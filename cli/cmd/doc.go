// Package cmd implements the sitegen subcommands.
//
// Every command is a kong command struct with a Run(context.Context) error
// method. Values shared by several commands (the parsed [kong.Context] and
// the site flags) travel in the context, installed by [WithContext] and
// [WithSite] before the selected command runs.
package cmd

// ConfigIdentifier is the kong variable holding the path of the user
// configuration file written by init --global.
const ConfigIdentifier = "config"

// ProjectIdentifier is the kong variable holding the path of the project
// configuration file written by init.
const ProjectIdentifier = "project"

// HistoryIdentifier is the kong variable holding the path of the repl
// history file.
const HistoryIdentifier = "history"
