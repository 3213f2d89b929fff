package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"gorm.io/gorm"
)

var (
	ErrConfirmationRequired = errors.New("reset needs --yes when stdin is not a terminal")
	ErrResetAborted         = errors.New("reset aborted")
)

const resetConfirmationWord = "reset"

type ResetOptions struct {
	// Yes skips the interactive confirmation.
	Yes         bool
	Interactive bool
	Stdin       io.Reader
	Stdout      io.Writer
}

// StdinIsTerminal reports whether a confirmation prompt can be answered.
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func RunReset(database *gorm.DB, options ResetOptions) error {
	if !options.Yes {
		if !options.Interactive {
			return ErrConfirmationRequired
		}
		confirmed, err := confirmReset(options.Stdin, options.Stdout)
		if err != nil {
			return err
		}
		if !confirmed {
			return ErrResetAborted
		}
	}

	if err := newCommandServices(database, nil).export.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(options.Stdout, "All conditions and logs deleted")
	return nil
}

func confirmReset(stdin io.Reader, stdout io.Writer) (bool, error) {
	fmt.Fprintf(stdout, "This deletes every condition and log. Type %q to continue: ", resetConfirmationWord)

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(line), resetConfirmationWord), nil
}
