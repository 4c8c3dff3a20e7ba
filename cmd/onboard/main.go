package main

import (
	onboardcmd "github.com/devshahoriar/custom-form/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	onboardcmd.SetVersionInfo(version, commit)
	onboardcmd.Execute()
}
