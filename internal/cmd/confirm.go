package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// confirmOverwrite asks the operator a yes/no question on the
// controlling terminal. When stdin is not a terminal the answer is
// always no, so an unattended run can never overwrite anything it was
// not explicitly told to.
func confirmOverwrite(prompt string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, renderWarning("stdin is not a terminal, declining: "+prompt))
		return false, nil
	}

	fmt.Fprint(os.Stderr, renderPrompt(prompt))
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	return isAffirmative(line), nil
}

// isAffirmative reports whether the operator answered yes. Only a bare
// "y" counts; anything else, including "yes", declines.
func isAffirmative(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}
