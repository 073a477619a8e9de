package serial

import (
	bugst "go.bug.st/serial"
)

// ListPorts returns the serial device paths present on this machine.
// tarm/serial has no enumeration support, so discovery goes through
// go.bug.st/serial instead.
func ListPorts() ([]string, error) {
	return bugst.GetPortsList()
}
