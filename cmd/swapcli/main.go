package main

import (
	"os"

	"github.com/duongtuttbn/swapkit/cmd/swapcli/commands"
	"github.com/duongtuttbn/swapkit/log"
)

func main() {
	commands.RootCmd.AddCommand(
		commands.NewCmd_Balance(),
		commands.NewCmd_Watch(),
		commands.NewCmd_Price(),
		commands.NewCmd_Token(),
		commands.NewCmd_Quote(),
		commands.NewCmd_Swap(),
	)
	if err := commands.RootCmd.Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
