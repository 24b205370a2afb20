package portfolio

import "strings"

// DefaultStepTitle replaces an empty step title
const DefaultStepTitle = "Step"

const stepSeparator = "|"

// Step is one decoded "How I Work" entry
type Step struct {
	Title string
	Body  string
}

// DecodeStep splits an encoded "Title|Body" line on the first separator only.
// Both parts are trimmed; a line without a separator has an empty body.
func DecodeStep(line string) Step {
	title, body, _ := strings.Cut(line, stepSeparator)
	step := Step{
		Title: strings.TrimSpace(title),
		Body:  strings.TrimSpace(body),
	}
	if step.Title == "" {
		step.Title = DefaultStepTitle
	}
	return step
}

// EncodeStep is the inverse of DecodeStep for a trimmed step
func EncodeStep(step Step) string {
	if step.Body == "" {
		return step.Title
	}
	return step.Title + stepSeparator + step.Body
}

// DecodeSteps decodes every line in order
func DecodeSteps(lines []string) []Step {
	steps := make([]Step, 0, len(lines))
	for _, line := range lines {
		steps = append(steps, DecodeStep(line))
	}
	return steps
}
