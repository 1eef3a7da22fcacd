package opener

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Operating system identifiers
const (
	OSWindows = "windows"
	OSDarwin  = "darwin"
)

// Command constants
const (
	OpenCommand    = "open"
	XDGOpenCommand = "xdg-open"
	CmdCommand     = "cmd"
	StartCommand   = "start"
	WindowsCmdFlag = "/c"
)

// Runner executes a command and waits for it to exit.
type Runner func(name string, args ...string) error

// Opener opens files with the default handler of the current platform.
type Opener struct {
	goos string
	run  Runner
}

// New returns an Opener for the running platform.
func New() *Opener {
	return NewFor(runtime.GOOS, runCommand)
}

// NewFor returns an Opener for goos that executes commands with run.
func NewFor(goos string, run Runner) *Opener {
	if run == nil {
		run = runCommand
	}
	return &Opener{goos: goos, run: run}
}

// Open hands path to the platform's default application.
func (o *Opener) Open(path string) error {
	name, args := o.Command(path)
	if err := o.run(name, args...); err != nil {
		return fmt.Errorf("%s %s: %w", name, path, err)
	}
	return nil
}

// Command returns the executable and arguments used to open path.
func (o *Opener) Command(path string) (string, []string) {
	switch o.goos {
	case OSWindows:
		// The empty argument is the window title expected by start.
		return CmdCommand, []string{WindowsCmdFlag, StartCommand, "", path}
	case OSDarwin:
		return OpenCommand, []string{path}
	default:
		return XDGOpenCommand, []string{path}
	}
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}
