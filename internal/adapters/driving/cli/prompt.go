package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/tgsetup/internal/core/domain"
	"github.com/custodia-labs/tgsetup/internal/core/ports/driven"
)

// Ensure terminalPrompter implements the interface.
var _ driven.Prompter = (*terminalPrompter)(nil)

// terminalPrompter asks for login secrets on the command's input and output.
// Secrets are read without echo when input is a terminal.
type terminalPrompter struct {
	reader *bufio.Reader
	out    io.Writer
	fd     int
	tty    bool
}

func newTerminalPrompter(cmd *cobra.Command) driven.Prompter {
	in := cmd.InOrStdin()
	p := &terminalPrompter{
		reader: bufio.NewReader(in),
		out:    cmd.OutOrStdout(),
		fd:     -1,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

func (p *terminalPrompter) Phone(ctx context.Context) (string, error) {
	return p.ask(ctx, "Please enter your phone (include country code, e.g. +84987654321): ", false)
}

func (p *terminalPrompter) Code(ctx context.Context, delivery string) (string, error) {
	return p.ask(ctx, fmt.Sprintf("Please enter the code you received via %s: ", delivery), false)
}

func (p *terminalPrompter) Password(ctx context.Context) (string, error) {
	return p.ask(ctx, "Please enter your two-step verification password: ", true)
}

type answer struct {
	text string
	err  error
}

// ask prints prompt and waits for a line, giving up when ctx is cancelled.
func (p *terminalPrompter) ask(ctx context.Context, prompt string, secret bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, prompt)

	hidden := secret && p.tty
	var saved *term.State
	if hidden {
		saved, _ = term.GetState(p.fd)
	}

	done := make(chan answer, 1)
	go func() {
		text, err := p.readLine(secret, hidden)
		done <- answer{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		if saved != nil {
			_ = term.Restore(p.fd, saved)
		}
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case a := <-done:
		if a.err != nil {
			return "", a.err
		}
		if a.text == "" {
			return "", fmt.Errorf("%w: empty answer", domain.ErrInvalidInput)
		}
		return a.text, nil
	}
}

// readLine reads one answer. Secrets keep surrounding spaces.
func (p *terminalPrompter) readLine(secret, hidden bool) (string, error) {
	if hidden {
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	if secret {
		return strings.TrimRight(line, "\r\n"), nil
	}
	return strings.TrimSpace(line), nil
}
