package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/gwillem/servocombo/pkg/config"
	"github.com/gwillem/servocombo/pkg/logger"
)

type Options struct {
	Config    string `short:"c" long:"config" description:"Config file, .json, .yaml or .yml (default: servocombo.json)"`
	LogLevel  string `long:"log-level" default:"info" description:"Log level (trace, debug, info, warn, error)"`
	LogFormat string `long:"log-format" default:"console" choice:"console" choice:"json" description:"Log output format"`

	Setup   SetupCommand   `command:"setup" description:"Pick the serial port and save the configuration"`
	Compile CompileCommand `command:"compile" description:"Compile a combo script into a command file"`
	Send    SendCommand    `command:"send" description:"Send a command file to the device"`
	Run     RunCommand     `command:"run" description:"Compile a combo script and send it"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "servocombo - compile key combos into servo commands and send them over serial"

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

// configPath returns the file named by --config or the default config file.
func configPath() string {
	if opts.Config == "" {
		return config.DefaultConfigFile
	}
	return opts.Config
}

// loadConfig reads the config file, or defaults when it is absent.
func loadConfig() (*config.Config, error) {
	return config.LoadOrDefault(configPath())
}

func newLogger() zerolog.Logger {
	return logger.New(logger.Options{
		Level:  opts.LogLevel,
		Format: opts.LogFormat,
	})
}
