package cli

import "fmt"

// ColorMode controls when colored output is used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // color when stdout is a terminal
	ColorAlways                  // always use color
	ColorNever                   // never use color
)

// Config holds all configuration for an rpipe invocation.
type Config struct {
	Count   int // maximum bytes requested per read call
	Hex     bool
	Follow  bool
	Quiet   bool // discard port diagnostics
	Color   ColorMode
	Workers int
	Paths   []string
}

// Validate checks that the config is valid and returns an error if not.
func (c *Config) Validate() error {
	if len(c.Paths) == 0 {
		return fmt.Errorf("no path specified")
	}
	if c.Count <= 0 {
		return fmt.Errorf("invalid read count: %d", c.Count)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", c.Workers)
	}
	if c.Follow && len(c.Paths) > 1 {
		return fmt.Errorf("follow mode takes exactly one path")
	}
	if c.Follow && c.Hex {
		return fmt.Errorf("cannot use -x (hex) and -f (follow) together")
	}
	return nil
}
