package main

import (
	"audiocheck/cmd/audiocheck/cmd"
)

func main() {
	cmd.Execute()
}
