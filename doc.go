// Package servocombo drives a bank of key-pressing servos from combo scripts.
//
// A combo script has one combo per line. Each whitespace separated run of
// keys (A S D H J K W U I O) is pressed together, and a '~' inserts a hold
// beat. Every line ends by releasing all keys it used. Scripts compile to a
// command file of (id,angle,duration) tuples which is sent line by line to a
// microcontroller over serial.
//
// # Installation
//
//	go install github.com/gwillem/servocombo/cmd/servocombo@latest
//
// # Usage
//
// Pick the serial port once:
//
//	servocombo setup
//
// Then compile and send a script:
//
//	servocombo compile --in action.txt --preview
//	servocombo send --file servo_commands.txt
//	servocombo run --tui
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/servocombo: CLI with setup, compile, send and run commands
//   - pkg/combo: key table, lexer, compiler, encoder and tuple parser
//   - pkg/link: serial line transport
//   - pkg/session: command file replay over a link
//   - pkg/config: configuration file handling
//   - pkg/logger: zerolog setup
package servocombo
