package main

import (
	"os"

	"github.com/hookwright/copyright-hooks/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
