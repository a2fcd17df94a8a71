package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// ErrNoTerminal is returned by ReadSecret when stdin is not interactive.
var ErrNoTerminal = errors.New("stdin is not a terminal")

// ReadSecret prompts on stderr and reads a line from the terminal without echo.
func ReadSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit into int
	if !term.IsTerminal(fd) {
		return "", ErrNoTerminal
	}

	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", errors.Wrap(err, "failed to read from terminal")
	}

	return strings.TrimSpace(string(secret)), nil
}
