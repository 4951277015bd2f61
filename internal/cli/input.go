package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordReader reads a secret without echoing it.
type PasswordReader func() ([]byte, error)

// terminalPassword reads from the controlling terminal, or falls back to a
// plain line from reader when stdin is not a terminal.
func terminalPassword(reader *bufio.Reader) PasswordReader {
	return func() ([]byte, error) {
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			return term.ReadPassword(fd)
		}
		line, err := readLine(reader)
		return []byte(line), err
	}
}

// prompt prints label and reads one line of input.
func prompt(reader *bufio.Reader, w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return "", err
	}
	return readLine(reader)
}

// promptPassword prints label and reads a secret through read.
func promptPassword(w io.Writer, label string, read PasswordReader) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return "", err
	}
	pw, err := read()
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	defer wipe(pw)
	return string(pw), nil
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
