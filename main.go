package main

import "github.com/wastenot/brik/cmd"

func main() {
	cmd.Execute()
}
