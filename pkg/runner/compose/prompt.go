package compose

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

// errInputClosed is returned when the input ends or is interrupted before a
// question is answered.
var errInputClosed = errors.New("input closed")

// prompter asks one question at a time with promptui. A terminal is handed
// to promptui directly. Any other input is fed to it one line per prompt so
// a prompt never consumes the answers of the next one.
type prompter struct {
	lines *bufio.Reader
	out   io.WriteCloser
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{}
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		return p
	}
	p.lines = bufio.NewReader(in)
	p.out = nopWriteCloser{out}
	return p
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// next returns the input for one prompt, or nil for the terminal.
func (p *prompter) next() (io.ReadCloser, error) {
	if p.lines == nil {
		return nil, nil
	}
	line, err := p.lines.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, err
		}
		if line == "" {
			return nil, errInputClosed
		}
		line += "\n"
	}
	line = strings.TrimSuffix(line, "\r\n")
	line = strings.TrimSuffix(line, "\n")
	return io.NopCloser(strings.NewReader(line + "\n")), nil
}

func (p *prompter) run(prompt *promptui.Prompt) (string, error) {
	in, err := p.next()
	if err != nil {
		return "", err
	}
	if in != nil {
		prompt.Stdin = in
	}
	if p.out != nil {
		prompt.Stdout = p.out
	}
	result, err := prompt.Run()
	if errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrInterrupt) {
		return "", errInputClosed
	}
	return result, err
}

// Ask shows label with def as the current value. An empty answer returns def.
func (p *prompter) Ask(label, def string) (string, error) {
	result, err := p.run(&promptui.Prompt{
		Label:   label,
		Default: def,
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(result) == "" {
		result = def
	}
	return result, nil
}

// Confirm asks a yes or no question. Anything but yes is no.
func (p *prompter) Confirm(label string, def bool) (bool, error) {
	prompt := &promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if def {
		prompt.Default = "y"
	}
	_, err := p.run(prompt)
	switch {
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// Confirmer returns a yes or no prompt reading from in, defaulting to no.
func Confirmer(in io.Reader, out io.Writer) func(label string) (bool, error) {
	p := newPrompter(in, out)
	return func(label string) (bool, error) {
		return p.Confirm(label, false)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
