package numbering

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/dirnum/internal/cli"
)

// LinePrompter reads names one line at a time.
type LinePrompter struct {
	r   *bufio.Reader
	out io.Writer
}

// NewLinePrompter prompts on out and reads lines from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(in), out: out}
}

// Prompt writes the prompt and blocks for one line. A final line without a
// trailing newline is returned before io.EOF.
func (p *LinePrompter) Prompt(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, cli.RenderPrompt())

	line, err := p.r.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if line == "" {
			fmt.Fprintln(p.out)
			return "", io.EOF
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// FormPrompter asks for each name with a huh input field. Aborting the form
// (ctrl+c) ends the session like end of input.
type FormPrompter struct {
	Accessible bool
}

// Prompt runs a single-field form and returns the entered name.
func (p *FormPrompter) Prompt(ctx context.Context) (string, error) {
	var name string
	input := huh.NewInput().
		Title("Project name").
		Description(fmt.Sprintf("Type %q to finish.", Sentinel)).
		Prompt("-> ").
		Value(&name)

	form := huh.NewForm(huh.NewGroup(input)).
		WithTheme(huh.ThemeCharm()).
		WithAccessible(p.Accessible)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", io.EOF
		}
		return "", err
	}
	return name, nil
}
