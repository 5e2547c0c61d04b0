package clicommand

import "github.com/urfave/cli"

var JenkinsTailCommands = []cli.Command{
	TailCommand,
}

// DefaultFlags and DefaultAction let `jenkins-tail <job>` work without naming
// the tail command. Flags must come before the job in that form.
var (
	DefaultFlags  = tailFlags()
	DefaultAction = NewConfigAndLogger(TailAction)
)
