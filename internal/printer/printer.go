// Package printer produces the print layout of a section and hands it to
// the host for printing.
package printer

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// FileName is used when the print layout is saved instead of printed.
const FileName = "adv382j-study-guide.txt"

// Printer sends a finished document somewhere and describes where it went.
type Printer interface {
	Print(doc []byte) (string, error)
}

// CommandPrinter pipes the document into a print command such as lp.
type CommandPrinter struct {
	Command string
	Args    []string
}

func (p CommandPrinter) Print(doc []byte) (string, error) {
	cmd := exec.Command(p.Command, p.Args...)
	cmd.Stdin = bytes.NewReader(doc)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", p.Command, err, msg)
		}
		return "", fmt.Errorf("%s: %w", p.Command, err)
	}
	return p.Command, nil
}

// Saver stores a named file, see export.DirSaver.
type Saver interface {
	Save(name string, data []byte) (string, error)
}

// FilePrinter saves the document as a text file.
type FilePrinter struct {
	Saver Saver
}

func (p FilePrinter) Print(doc []byte) (string, error) {
	path, err := p.Saver.Save(FileName, doc)
	if err != nil {
		return "", fmt.Errorf("unable to save print layout: %w", err)
	}
	return path, nil
}

// New picks CommandPrinter when a command is configured and FilePrinter otherwise.
func New(command string, args []string, fallback Saver) Printer {
	if command == "" {
		return FilePrinter{Saver: fallback}
	}
	return CommandPrinter{Command: command, Args: args}
}
