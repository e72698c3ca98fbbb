package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func confirmDestructive(cmd *cobra.Command, prompt string) (bool, error) {
	if !stdinIsTerminal(cmd.InOrStdin()) {
		return false, newCommandError("confirm", "prompting for confirmation", errors.New("not a terminal"), "Use --yes when running in non-interactive environments.")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false, scanner.Err()
	}

	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

func isTerminal(stream any) bool {
	if file, ok := stream.(*os.File); ok {
		return termIsTerminal(int(file.Fd()))
	}
	return false
}

var stdinIsTerminal = func(r io.Reader) bool {
	return isTerminal(r)
}

var termIsTerminal = func(fd int) bool {
	return term.IsTerminal(fd)
}
