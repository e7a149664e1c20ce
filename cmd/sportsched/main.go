package main

import (
	"github.com/example/sport-scheduler/cmd"
)

func main() {
	cmd.Execute()
}
