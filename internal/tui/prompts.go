package tui

import (
	"errors"
	"os"
	"slices"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// EnvNoInteractive disables every prompt when set
const EnvNoInteractive = "PRFLOW_NO_INTERACTIVE"

var (
	// ErrInteractiveDisabled is returned when interactive prompts are disabled via PRFLOW_NO_INTERACTIVE
	ErrInteractiveDisabled = errors.New("interactive prompts are disabled (PRFLOW_NO_INTERACTIVE is set)")
	// ErrCanceled is returned when the user interrupts a prompt
	ErrCanceled = errors.New("canceled")
)

// checkInteractiveAllowed returns an error if interactive mode is disabled
func checkInteractiveAllowed() error {
	if os.Getenv(EnvNoInteractive) != "" {
		return ErrInteractiveDisabled
	}
	return nil
}

// Prompter asks the user for input
type Prompter interface {
	// Select picks one option; typing filters the list
	Select(message string, options []string, defaultValue string) (string, error)
	// Input reads a single line
	Input(message, defaultValue string) (string, error)
	// Lines reads several lines, ending at the first blank line
	Lines(message string) ([]string, error)
	// Confirm asks a yes/no question
	Confirm(message string, defaultValue bool) (bool, error)
	// MultiSelect picks any number of options
	MultiSelect(message string, options []string, defaults []string) ([]string, error)
}

// SurveyPrompter implements Prompter with survey
type SurveyPrompter struct {
	opts []survey.AskOpt
}

var _ Prompter = (*SurveyPrompter)(nil)

// NewSurveyPrompter creates a prompter on the process terminal. Prompts are
// drawn on stderr so stdout stays free for command output.
func NewSurveyPrompter() *SurveyPrompter {
	return &SurveyPrompter{opts: []survey.AskOpt{
		survey.WithStdio(os.Stdin, os.Stderr, os.Stderr),
		survey.WithPageSize(15),
	}}
}

func (p *SurveyPrompter) ask(prompt survey.Prompt, response any) error {
	if err := checkInteractiveAllowed(); err != nil {
		return err
	}
	if err := survey.AskOne(prompt, response, p.opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return ErrCanceled
		}
		return err
	}
	return nil
}

// Select picks one option; typing filters the list
func (p *SurveyPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	if len(options) == 0 {
		return "", errors.New("nothing to select")
	}
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if slices.Contains(options, defaultValue) {
		prompt.Default = defaultValue
	}
	var answer string
	if err := p.ask(prompt, &answer); err != nil {
		return "", err
	}
	return answer, nil
}

// Input reads a single line
func (p *SurveyPrompter) Input(message, defaultValue string) (string, error) {
	var answer string
	if err := p.ask(&survey.Input{Message: message, Default: defaultValue}, &answer); err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Lines reads several lines, ending at the first blank line
func (p *SurveyPrompter) Lines(message string) ([]string, error) {
	var answer string
	if err := p.ask(&survey.Multiline{Message: message}, &answer); err != nil {
		return nil, err
	}
	return SplitLines(answer), nil
}

// Confirm asks a yes/no question
func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	answer := defaultValue
	if err := p.ask(&survey.Confirm{Message: message, Default: defaultValue}, &answer); err != nil {
		return false, err
	}
	return answer, nil
}

// MultiSelect picks any number of options
func (p *SurveyPrompter) MultiSelect(message string, options []string, defaults []string) ([]string, error) {
	if len(options) == 0 {
		return []string{}, nil
	}
	prompt := &survey.MultiSelect{
		Message: message,
		Options: options,
	}
	var valid []string
	for _, d := range defaults {
		if slices.Contains(options, d) {
			valid = append(valid, d)
		}
	}
	if len(valid) > 0 {
		prompt.Default = valid
	}
	answer := []string{}
	if err := p.ask(prompt, &answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// SplitLines splits text into lines up to the first blank one, trimming each
func SplitLines(text string) []string {
	out := []string{}
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(out) > 0 {
				break
			}
			continue
		}
		out = append(out, line)
	}
	return out
}
