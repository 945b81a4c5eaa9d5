package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTagged(t *testing.T) {
	tests := []struct {
		name            string
		raw             string
		wantExplanation string
		wantCode        string
	}{
		{
			name:            "both blocks",
			raw:             "[EXPLICAÇÃO] Criei o site [/EXPLICAÇÃO]\n[CÓDIGO]\n<html></html>\n[/CÓDIGO]",
			wantExplanation: "Criei o site",
			wantCode:        "<html></html>",
		},
		{
			name:            "surrounding noise",
			raw:             "Claro! Aqui está:\n[EXPLICAÇÃO]Feito[/EXPLICAÇÃO] blá [CÓDIGO]<p>x</p>[/CÓDIGO] obrigado",
			wantExplanation: "Feito",
			wantCode:        "<p>x</p>",
		},
		{
			name:            "case insensitive markers",
			raw:             "[explicação]ok[/explicação][código]<html>[/código]",
			wantExplanation: "ok",
			wantCode:        "<html>",
		},
		{
			name:     "code only",
			raw:      "[CÓDIGO]<html></html>[/CÓDIGO]",
			wantCode: "<html></html>",
		},
		{
			name: "unterminated block",
			raw:  "[CÓDIGO]<html></html>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explanation, code := extractTagged(tt.raw)

			assert.Equal(t, tt.wantExplanation, explanation)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestExtractDocument(t *testing.T) {
	raw := "## Seu site\n\n- **Hero** com chamada\n- rodapé\n\n<!DOCTYPE html>\n<html><body></body></html>\ntexto depois"

	doc, lead, ok := extractDocument(raw)

	assert.True(t, ok)
	assert.Equal(t, "<!DOCTYPE html>\n<html><body></body></html>", doc)
	assert.Equal(t, "Seu site\n\nHero com chamada\nrodapé", lead)

	_, _, ok = extractDocument("<html><body></body></html>")
	assert.False(t, ok)

	doc, _, ok = extractDocument("<!doctype HTML><html></html><html></html>")
	assert.True(t, ok)
	assert.Equal(t, "<!doctype HTML><html></html>", doc, "match is non-greedy")
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name            string
		raw             string
		edit            bool
		wantCode        string
		wantExplanation string
	}{
		{
			name:            "tagged",
			raw:             "[EXPLICAÇÃO]Criei a landing page[/EXPLICAÇÃO][CÓDIGO]" + validDocument + "[/CÓDIGO]",
			wantCode:        validDocument,
			wantExplanation: "Criei a landing page",
		},
		{
			name:            "document with lead text",
			raw:             "**Pronto!** Mudei o fundo.\n<!DOCTYPE html><html></html>",
			edit:            true,
			wantCode:        "<!DOCTYPE html><html></html>",
			wantExplanation: "Pronto! Mudei o fundo.",
		},
		{
			name:            "document without lead, create",
			raw:             "<!DOCTYPE html><html></html>",
			wantCode:        "<!DOCTYPE html><html></html>",
			wantExplanation: defaultCreateExplanation,
		},
		{
			name:            "document without lead, edit",
			raw:             "<!DOCTYPE html><html></html>",
			edit:            true,
			wantCode:        "<!DOCTYPE html><html></html>",
			wantExplanation: defaultEditExplanation,
		},
		{
			name:            "tagged explanation kept over document lead",
			raw:             "[EXPLICAÇÃO]Explicação[/EXPLICAÇÃO]\n<!DOCTYPE html><html></html>",
			wantCode:        "<!DOCTYPE html><html></html>",
			wantExplanation: "Explicação",
		},
		{
			name:            "passthrough create",
			raw:             "<div>solto</div>",
			wantCode:        "<div>solto</div>",
			wantExplanation: defaultCreateExplanation,
		},
		{
			name:            "passthrough edit",
			raw:             "<div>solto</div>",
			edit:            true,
			wantCode:        "<div>solto</div>",
			wantExplanation: defaultPassthroughExplanation,
		},
		{
			name:            "fenced code inside tags",
			raw:             "[CÓDIGO]\n```html\n<!DOCTYPE html><html></html>\n```\n[/CÓDIGO]",
			wantCode:        "<!DOCTYPE html><html></html>",
			wantExplanation: defaultCreateExplanation,
		},
		{
			name:            "passthrough strips stray markers",
			raw:             "[EXPLICAÇÃO]x[/EXPLICAÇÃO]\n[CÓDIGO]\n<body></body>",
			wantCode:        "<body></body>",
			wantExplanation: defaultCreateExplanation,
		},
		{
			name:            "passthrough edit ignores tagged explanation",
			raw:             "[EXPLICAÇÃO]x[/EXPLICAÇÃO]\n<body></body>",
			edit:            true,
			wantCode:        "<body></body>",
			wantExplanation: defaultPassthroughExplanation,
		},
		{
			name:            "document lead drops fence",
			raw:             "Here:\n```html\n<!DOCTYPE html><html></html>\n```",
			wantCode:        "<!DOCTYPE html><html></html>",
			wantExplanation: "Here:",
		},
		{
			name:            "document lead drops stray code marker",
			raw:             "[CÓDIGO]\n<!DOCTYPE html><html></html>",
			edit:            true,
			wantCode:        "<!DOCTYPE html><html></html>",
			wantExplanation: defaultEditExplanation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.raw, tt.edit)

			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantExplanation, got.Explanation)
		})
	}
}

func TestCleanCode(t *testing.T) {
	assert.Equal(t, "<html></html>", cleanCode("```HTML\n<html></html>\n```"))
	assert.Equal(t, "<html></html>", cleanCode("```\n<html></html>```"))
	assert.Equal(t, "<html></html>", cleanCode("[código]<html></html>[/CÓDIGO]"))
	assert.Equal(t, "<html></html>", cleanCode("[EXPLICAÇÃO]a\nb[/EXPLICAÇÃO]<html></html>"))
}
