package prompt

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		allowed []string
		wantErr bool
	}{
		{"default map prompt", DefaultMapPrompt, nil, false},
		{"default combine prompt", DefaultCombinePrompt, nil, false},
		{"default question prompt", DefaultQuestionPrompt, nil, false},
		{"refine prompt with existing answer allowed", DefaultRefinePrompt, []string{ExistingAnswerVariable}, false},
		{"refine prompt without existing answer allowed", DefaultRefinePrompt, nil, true},
		{"missing text", "Summarize this please", nil, true},
		{"empty", "   ", nil, true},
		{"unknown placeholder", "{text} in {language}", nil, true},
		{"malformed placeholder", "{text} and {not valid}", nil, true},
		{"escaped braces", "Return JSON {{\"summary\": ...}} for {text}", nil, false},
		{"escaped text is not a placeholder", "{{text}}", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw, tt.allowed...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var te *TemplateError
				if !errors.As(err, &te) {
					t.Errorf("expected a *TemplateError, got %T", err)
				}
			}
		})
	}
}

func TestRender(t *testing.T) {
	tmpl := MustParse("Summary of {text}; again {text}. Literal {{braces}}")

	got, err := tmpl.RenderText("chunk")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := "Summary of chunk; again chunk. Literal {braces}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_MissingValue(t *testing.T) {
	tmpl := MustParse(DefaultRefinePrompt, ExistingAnswerVariable)
	if !tmpl.Has(ExistingAnswerVariable) {
		t.Fatal("expected refine prompt to use existing_answer")
	}

	if _, err := tmpl.RenderText("only text"); err == nil {
		t.Error("expected an error when existing_answer has no value")
	}

	out, err := tmpl.Render(map[string]string{TextVariable: "new", ExistingAnswerVariable: "old"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "certain point: old") || !strings.Contains(out, "\nnew\n") {
		t.Errorf("unexpected render: %q", out)
	}
}

func TestRender_ValueContainingBraces(t *testing.T) {
	tmpl := MustParse("<{text}>")
	got, err := tmpl.RenderText("{text} {{x}}")
	if err != nil {
		t.Fatal(err)
	}
	if got != "<{text} {{x}}>" {
		t.Errorf("values must not be re-expanded, got %q", got)
	}
}
