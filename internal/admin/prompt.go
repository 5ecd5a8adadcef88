package admin

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var errPasswordMismatch = errors.New("passwords do not match")

// PromptPassword reads a password twice from the terminal without echo.
// An empty first answer returns "" without asking for confirmation.
func PromptPassword(out io.Writer, fd int) (string, error) {
	fmt.Fprint(out, "Password: ")
	first, err := readPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	if len(first) == 0 {
		return "", nil
	}

	fmt.Fprint(out, "Repeat password: ")
	second, err := readPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", errPasswordMismatch
	}
	return string(first), nil
}
