package main

import (
	"fmt"
	"os"

	"github.com/buildkite/jenkins-tail/clicommand"
	"github.com/buildkite/jenkins-tail/version"
	"github.com/urfave/cli"
)

const appHelpTemplate = `Usage:

  {{.Name}} [options...] <job>
  {{.Name}} <command> [options...]

Available commands are:

  {{range .Commands}}{{.Name}}{{with .ShortName}}, {{.}}{{end}}{{ "\t" }}{{.Usage}}
  {{end}}
Use "{{.Name}} <command> --help" for more information about a command.

`

func main() {
	cli.AppHelpTemplate = appHelpTemplate
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(c.App.Writer, "%s version %s\n", c.App.Name, c.App.Version)
	}

	app := cli.NewApp()
	app.Name = "jenkins-tail"
	app.Usage = "Follow the console log of a Jenkins build"
	app.Version = version.FullVersion()
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	app.Commands = clicommand.JenkinsTailCommands
	app.Flags = clicommand.DefaultFlags
	app.Action = clicommand.DefaultAction

	os.Exit(clicommand.PrintMessageAndReturnExitCode(app.Run(os.Args)))
}
