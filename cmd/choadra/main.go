// choadra is a CLI client for the Minecraft Java Edition session
// protocol: status pings, offline or online login, and an interactive
// play-phase shell.
package main

import "github.com/dantte-lp/choadra/cmd/choadra/commands"

func main() {
	commands.Execute()
}
