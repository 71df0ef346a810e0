package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gwillem/servocombo/pkg/config"
	"github.com/gwillem/servocombo/pkg/link"
	"github.com/gwillem/servocombo/pkg/session"
)

// LinkOptions override the serial settings from the config file.
type LinkOptions struct {
	Port       string        `short:"p" long:"port" description:"Serial device (default from config)"`
	Baud       int           `short:"b" long:"baud" description:"Baud rate (default from config)"`
	AckTimeout time.Duration `long:"ack-timeout" description:"Wait for a device reply after each line (default from config)"`
	Strict     bool          `long:"strict" description:"Reject lines with text around the command tuples"`
	TUI        bool          `long:"tui" description:"Show a live transmission view"`
}

func (o LinkOptions) apply(cfg *config.Config) {
	if o.Port != "" {
		cfg.Port = o.Port
	}
	if o.Baud > 0 {
		cfg.Baud = o.Baud
	}
	if o.AckTimeout > 0 {
		cfg.AckTimeout = config.Duration(o.AckTimeout)
	}
	if o.Strict {
		cfg.Strict = true
	}
}

type SendCommand struct {
	LinkOptions
	File string `short:"f" long:"file" description:"Command file to send (default from config)"`
}

func (c *SendCommand) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if c.File != "" {
		cfg.CommandFile = c.File
	}

	src, err := os.Open(cfg.CommandFile)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("command file %s not found", cfg.CommandFile)
	}
	if err != nil {
		return fmt.Errorf("open command file: %w", err)
	}
	defer src.Close()

	return replay(cfg, src, c.TUI)
}

type RunCommand struct {
	LinkOptions
	In  string `short:"i" long:"in" description:"Combo script (default from config)"`
	Out string `short:"o" long:"out" description:"Command file to write (default from config)"`
}

func (c *RunCommand) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if c.In != "" {
		cfg.ComboFile = c.In
	}
	if c.Out != "" {
		cfg.CommandFile = c.Out
	}

	var compiled bytes.Buffer
	if _, err := compileFile(cfg.ComboFile, cfg.CommandFile, &compiled, newLogger()); err != nil {
		return err
	}
	return replay(cfg, &compiled, c.TUI)
}

// replay sends src over the configured serial port and prints a summary.
func replay(cfg *config.Config, src io.Reader, tui bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := newLogger()
	if tui {
		fileLog, closer, err := tuiLogger(tuiLogFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer closer.Close()
		log = fileLog
	}
	log = log.With().Str("port", cfg.Port).Logger()

	dial := func() (session.Transport, error) {
		l, err := link.Open(link.Config{
			Port:       cfg.Port,
			BaudRate:   cfg.Baud,
			AckTimeout: cfg.AckTimeout.Std(),
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("device", l.Name()).Int("baud", cfg.Baud).Msg("port opened")
		if !tui {
			fmt.Println(headerStyle.Render("Sending to " + l.Name()))
		}
		return l, nil
	}

	var (
		report session.Report
		err    error
	)
	if tui {
		report, err = replayTUI(ctx, cfg, dial, src, log)
	} else {
		ctrl := session.NewController(dial, session.Config{
			Strict: cfg.Strict,
			Logger: log,
		})
		report, err = ctrl.Replay(ctx, src)
	}
	return finishReplay(report, err)
}

// finishReplay prints the report and returns the error that should fail the
// command. A stop requested by the user is not a failure.
func finishReplay(report session.Report, err error) error {
	if errors.Is(err, session.ErrOpen) {
		return err
	}
	printReport(report)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
