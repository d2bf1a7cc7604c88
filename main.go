package main

import (
	"github.com/atmdb/atmdb/cmd"
)

func main() {
	cmd.Execute()
}
