package main

import (
	"github.com/daedaleanai/sqcfg/cmd"
)

func main() {
	cmd.Execute()
}
