package generator

import (
	"regexp"
	"strings"
)

const (
	defaultCreateExplanation      = "Site criado!"
	defaultEditExplanation        = "Site atualizado com sucesso!"
	defaultPassthroughExplanation = "Alterei o site conforme solicitado."
)

var (
	explanationBlockRe = regexp.MustCompile(`(?is)\[EXPLICAÇÃO\](.*?)\[/EXPLICAÇÃO\]`)
	codeBlockRe        = regexp.MustCompile(`(?is)\[CÓDIGO\](.*?)\[/CÓDIGO\]`)
	documentRe         = regexp.MustCompile(`(?is)<!DOCTYPE html>.*?</html>`)

	codeMarkerRe   = regexp.MustCompile(`(?i)\[/?CÓDIGO\]`)
	htmlFenceRe    = regexp.MustCompile("(?i)```html\n?")
	fenceRe        = regexp.MustCompile("```\n?")
	mdHeadingRe    = regexp.MustCompile(`(?m)^#+\s+`)
	mdBulletRe     = regexp.MustCompile(`(?m)^-\s+`)
	mdEmphasisRepl = strings.NewReplacer("**", "", "*", "")
)

// runs the layered extraction chain over raw model text:
// tagged blocks, then a bare HTML document, then the whole text.
func Extract(raw string, edit bool) Extracted {
	explanation, code := extractTagged(raw)

	if code == "" {
		if doc, lead, ok := extractDocument(raw); ok {
			code = doc

			if explanation == "" {
				explanation = lead
			}
		} else {
			code = raw
			explanation = ""

			if edit {
				explanation = defaultPassthroughExplanation
			}
		}
	}

	if explanation == "" {
		explanation = defaultExplanation(edit)
	}

	return Extracted{
		Code:        cleanCode(code),
		Explanation: explanation,
	}
}

// first layer: explicit [EXPLICAÇÃO] and [CÓDIGO] blocks, trimmed
func extractTagged(raw string) (explanation, code string) {
	if m := explanationBlockRe.FindStringSubmatch(raw); m != nil {
		explanation = strings.TrimSpace(m[1])
	}

	if m := codeBlockRe.FindStringSubmatch(raw); m != nil {
		code = strings.TrimSpace(m[1])
	}

	return explanation, code
}

// second layer: the first <!DOCTYPE html>...</html> span.
// lead is the markdown-stripped text before the span.
func extractDocument(raw string) (doc, lead string, ok bool) {
	loc := documentRe.FindStringIndex(raw)
	if loc == nil {
		return "", "", false
	}

	return raw[loc[0]:loc[1]], stripMarkdown(raw[:loc[0]]), true
}

func stripMarkdown(text string) string {
	text = explanationBlockRe.ReplaceAllString(text, "")
	text = codeMarkerRe.ReplaceAllString(text, "")
	text = htmlFenceRe.ReplaceAllString(text, "")
	text = fenceRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	text = mdHeadingRe.ReplaceAllString(text, "")
	text = mdEmphasisRepl.Replace(text)
	text = mdBulletRe.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}

// drops leftover markers and markdown fences
func cleanCode(code string) string {
	code = explanationBlockRe.ReplaceAllString(code, "")
	code = codeMarkerRe.ReplaceAllString(code, "")
	code = htmlFenceRe.ReplaceAllString(code, "")
	code = fenceRe.ReplaceAllString(code, "")

	return strings.TrimSpace(code)
}

func defaultExplanation(edit bool) string {
	if edit {
		return defaultEditExplanation
	}

	return defaultCreateExplanation
}
