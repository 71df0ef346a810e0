package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/gwillem/servocombo/pkg/link"
)

var baudRates = []int{9600, 19200, 38400, 57600, 115200}

type SetupCommand struct{}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("servocombo setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━"))
	fmt.Println()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ports, err := link.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		return errors.New("no serial ports found, make sure the controller is connected")
	}
	fmt.Printf("Found %d serial port(s).\n\n", len(ports))

	portOptions := make([]huh.Option[string], 0, len(ports))
	for _, p := range ports {
		portOptions = append(portOptions, huh.NewOption(p.Label(), p.Name))
	}
	baudOptions := make([]huh.Option[int], 0, len(baudRates))
	for _, b := range baudRates {
		baudOptions = append(baudOptions, huh.NewOption(strconv.Itoa(b), b))
	}

	port, baud := cfg.Port, cfg.Baud
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which port is the servo controller on?").
				Options(portOptions...).
				Value(&port),
			huh.NewSelect[int]().
				Title("Baud rate").
				Description("Must match the controller firmware").
				Options(baudOptions...).
				Value(&baud),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	cfg.Port, cfg.Baud = port, baud
	if err := cfg.SaveTo(configPath()); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Println()
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", configPath())
	fmt.Println()
	fmt.Println("Compile and send a combo script with: " + headerStyle.Render("servocombo run"))
	return nil
}
