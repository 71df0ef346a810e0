package link

import (
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
)

// PortInfo describes a serial port found on the system.
type PortInfo struct {
	Name    string
	IsUSB   bool
	VID     string
	PID     string
	Serial  string
	Product string
}

// Label returns a short human readable description of the port.
func (p PortInfo) Label() string {
	if !p.IsUSB {
		return p.Name
	}
	desc := fmt.Sprintf("USB %s:%s", p.VID, p.PID)
	if p.Product != "" {
		desc += " " + p.Product
	}
	if p.Serial != "" {
		desc += " SN " + p.Serial
	}
	return fmt.Sprintf("%s (%s)", p.Name, desc)
}

// ListPorts returns the serial ports available on the system.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("list ports: %w", err)
	}

	var ports []PortInfo
	for _, d := range details {
		// Skip Bluetooth ports on macOS
		if strings.Contains(d.Name, "Bluetooth") {
			continue
		}
		ports = append(ports, PortInfo{
			Name:    d.Name,
			IsUSB:   d.IsUSB,
			VID:     d.VID,
			PID:     d.PID,
			Serial:  d.SerialNumber,
			Product: d.Product,
		})
	}
	return ports, nil
}
