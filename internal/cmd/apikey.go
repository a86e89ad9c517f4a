package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const apiKeyPrompt = "Enter your Google Maps API key: "

var errNoAPIKey = errors.New("no API key entered")

// Swapped in tests.
var (
	stdin  io.Reader = os.Stdin
	stderr io.Writer = os.Stderr
)

// promptAPIKey asks for the key once. An empty answer or a closed input
// ends the run.
func promptAPIKey(in io.Reader, out io.Writer) (string, error) {
	if _, err := fmt.Fprint(out, apiKeyPrompt); err != nil {
		return "", err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read API key: %w", err)
	}

	key := strings.TrimSpace(line)
	if key == "" {
		_, _ = fmt.Fprintln(out)
		return "", asConfigError(errNoAPIKey)
	}
	return key, nil
}
