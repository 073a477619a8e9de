package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/shlex"

	"commutator/host/commutator"
	"commutator/host/serial"
)

var (
	device    = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud      = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	sense     = flag.Int("sense", 1, "Sense of rotation for positive angles (+1 or -1)")
	microstep = flag.Bool("microstep", true, "Enable the fine drive mode")
	stepTime  = flag.Int("steptime", 312, "Full-speed step interval in microseconds")
	list      = flag.Bool("list", false, "List serial ports and exit")
)

func main() {
	flag.Parse()

	if *list {
		ports, err := serial.ListPorts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to list ports: %v\n", err)
			os.Exit(1)
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return
	}

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	fmt.Printf("Connecting to commutator on %s...\n", *device)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	ctl, err := commutator.New(port, commutator.Config{
		Sense:     *sense,
		Microstep: *microstep,
		StepTime:  *stepTime,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Connected. %d steps per turn, %d us step time.\n", ctl.StepsPerTurn(), ctl.StepTime())

	// Interactive command loop
	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		parts, err := shlex.Split(scanner.Text())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if len(parts) == 0 {
			continue
		}

		if quit := dispatch(ctl, parts); quit {
			return
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

// dispatch runs one console command. It reports whether the loop should exit.
func dispatch(ctl *commutator.Controller, parts []string) bool {
	switch cmd := parts[0]; cmd {
	case "quit", "exit", "q":
		fmt.Println("Goodbye!")
		return true

	case "help", "?":
		printHelp()

	case "pos":
		if len(parts) != 2 {
			fmt.Println("Usage: pos <radians>")
			break
		}
		angle, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: bad angle %q: %v\n", parts[1], err)
			break
		}
		if err := ctl.SetPosition(angle); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

	case "steptime":
		if len(parts) != 2 {
			fmt.Println("Usage: steptime <microseconds>")
			break
		}
		us, err := strconv.Atoi(parts[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: bad step time %q: %v\n", parts[1], err)
			break
		}
		if err := ctl.SetStepTime(us); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

	case "query":
		angle, err := ctl.QueryPosition()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		fmt.Printf("Position: %.4f rad\n", angle)

	case "stop":
		if err := ctl.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

	case "resume":
		if err := ctl.Resume(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

	case "reset":
		if err := ctl.Reset(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

	case "posreset":
		if err := ctl.PosReset(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

	case "identify":
		if err := ctl.Identify(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

	case "micro":
		if len(parts) != 2 || (parts[1] != "on" && parts[1] != "off") {
			fmt.Println("Usage: micro on|off")
			break
		}
		var err error
		if parts[1] == "on" {
			err = ctl.EnableMicrostep()
		} else {
			err = ctl.DisableMicrostep()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		fmt.Printf("%d steps per turn\n", ctl.StepsPerTurn())

	default:
		fmt.Printf("Unknown command: %s (type 'help' for available commands)\n", cmd)
	}

	return false
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  pos <radians>       - Command a new target angle")
	fmt.Println("  query               - Read back the current angle")
	fmt.Println("  steptime <us>       - Set the full-speed step interval")
	fmt.Println("  stop                - Pause motion")
	fmt.Println("  resume              - Resume motion")
	fmt.Println("  reset               - Reset the firmware (fine mode, default step time)")
	fmt.Println("  posreset            - Re-zero the position, keeping current settings")
	fmt.Println("  identify            - Flash the status indicator")
	fmt.Println("  micro on|off        - Switch between fine and coarse drive modes")
	fmt.Println("  help                - Show this help message")
	fmt.Println("  quit/exit/q         - Exit the program")
	fmt.Println()
}
