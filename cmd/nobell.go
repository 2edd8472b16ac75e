package cmd

import (
	"io"
	"os"
)

// bellSkipper filters the ASCII bell promptui rings on every keystroke
// of a Select, which is obnoxious in terminals that flash or beep.
type bellSkipper struct{}

func (bellSkipper) Write(b []byte) (int, error) {
	const bell = 7
	if len(b) == 1 && b[0] == bell {
		return 0, nil
	}
	return os.Stdout.Write(b)
}

func (bellSkipper) Close() error {
	return os.Stdout.Close()
}

// NoBellStdout is handed to promptui prompts as their Stdout.
var NoBellStdout io.WriteCloser = bellSkipper{}
