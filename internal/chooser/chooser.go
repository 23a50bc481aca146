// Package chooser reads file paths from the console.
package chooser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const maxAttempts = 3

// Chooser prompts for file paths. Reader and writer are injectable so
// tests don't need a terminal.
type Chooser struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Chooser {
	return NewFromScanner(bufio.NewScanner(in), out)
}

// NewFromScanner shares an existing scanner, so the caller's other
// console reads don't fight the chooser over buffered input.
func NewFromScanner(sc *bufio.Scanner, out io.Writer) *Chooser {
	return &Chooser{in: sc, out: out}
}

// Single prompts for one non-empty path, allowing three attempts.
// Returns "" when input ends or the attempts are exhausted.
func (c *Chooser) Single(prompt string) string {
	fmt.Fprintln(c.out, prompt)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			fmt.Fprintln(c.out, "\nInput terminated (EOF).")
			return ""
		}

		path := strings.TrimSpace(c.in.Text())
		if path != "" {
			return path
		}

		if remaining := maxAttempts - attempt; remaining > 0 {
			fmt.Fprintf(c.out, "Input cannot be empty. Please try again. (%d attempts remaining)\n", remaining)
		} else {
			fmt.Fprintln(c.out, "Maximum attempts reached.")
		}
	}
	return ""
}

// Multi prompts for paths until an empty line or EOF.
func (c *Chooser) Multi(prompt string) []string {
	fmt.Fprintln(c.out, prompt)
	fmt.Fprintln(c.out, "Enter file paths (one per line). Press Enter on an empty line to finish:")

	var paths []string
	for {
		fmt.Fprintf(c.out, "File %d: ", len(paths)+1)
		if !c.in.Scan() {
			break
		}
		path := strings.TrimSpace(c.in.Text())
		if path == "" {
			break
		}
		paths = append(paths, path)
	}
	return paths
}
