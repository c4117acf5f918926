package prompt

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

const (
	TextVariable           = "text"
	ExistingAnswerVariable = "existing_answer"
)

// {{ and }} are literal braces, anything else in braces is a placeholder
var tokenPattern = regexp.MustCompile(`\{\{|\}\}|\{([^{}]*)\}`)
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type TemplateError struct {
	Reason string
}

func (e *TemplateError) Error() string {
	return "invalid prompt template: " + e.Reason
}

type Template struct {
	raw       string
	variables []string
}

// Parse checks that raw contains {text} and no placeholder outside of text and allowed.
func Parse(raw string, allowed ...string) (Template, error) {
	if strings.TrimSpace(raw) == "" {
		return Template{}, &TemplateError{Reason: "template is empty"}
	}
	allowed = append(allowed, TextVariable)

	var variables []string
	for _, match := range tokenPattern.FindAllStringSubmatch(raw, -1) {
		if match[0] == "{{" || match[0] == "}}" {
			continue
		}
		name := strings.TrimSpace(match[1])
		if !identifierPattern.MatchString(name) {
			return Template{}, &TemplateError{Reason: fmt.Sprintf("malformed placeholder %q", match[0])}
		}
		if !slices.Contains(allowed, name) {
			return Template{}, &TemplateError{Reason: fmt.Sprintf("unexpected placeholder {%s}, expected one of %v", name, allowed)}
		}
		if !slices.Contains(variables, name) {
			variables = append(variables, name)
		}
	}

	if !slices.Contains(variables, TextVariable) {
		return Template{}, &TemplateError{Reason: "missing the {text} placeholder"}
	}
	return Template{raw: raw, variables: variables}, nil
}

func MustParse(raw string, allowed ...string) Template {
	t, err := Parse(raw, allowed...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Template) Has(name string) bool {
	return slices.Contains(t.variables, name)
}

func (t Template) String() string {
	return t.raw
}

// Render substitutes every placeholder. A placeholder without a value is an error.
func (t Template) Render(values map[string]string) (string, error) {
	var missing string
	out := tokenPattern.ReplaceAllStringFunc(t.raw, func(token string) string {
		switch token {
		case "{{":
			return "{"
		case "}}":
			return "}"
		}
		name := strings.TrimSpace(token[1 : len(token)-1])
		v, ok := values[name]
		if !ok && missing == "" {
			missing = name
		}
		return v
	})
	if missing != "" {
		return "", &TemplateError{Reason: fmt.Sprintf("no value for {%s}", missing)}
	}
	return out, nil
}

func (t Template) RenderText(text string) (string, error) {
	return t.Render(map[string]string{TextVariable: text})
}
