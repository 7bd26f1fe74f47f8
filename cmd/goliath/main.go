package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Generate GenerateCommand `command:"generate" alias:"gen" description:"Generate a dense trajectory from keyframes"`
	Preview  PreviewCommand  `command:"preview" description:"Plot a trajectory in the terminal"`
	Play     PlayCommand     `command:"play" description:"Stream a trajectory to the arm"`
	Setup    SetupCommand    `command:"setup" description:"Scan for the arm and calibrate it"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "Goliath - organic motion generator for the Goliath arm"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
