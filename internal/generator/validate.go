package generator

import (
	"regexp"
	"strings"
)

const doctype = "<!DOCTYPE html>"

const (
	errMissingStructure = "missing HTML structure"

	warnNoFramework = "no CSS framework detected, styles may not apply"
	warnNoCharset   = "missing charset meta tag"
	warnNoTitle     = "missing <title> tag"
)

var (
	cssFrameworks = []string{"tailwindcss", "bootstrap", "bulma", "pico"}
	closeHTMLRe   = regexp.MustCompile(`(?i)</html>`)
)

// checks code for the structural markers a preview needs.
// only a missing root marker is an error; the rest are warnings.
func Validate(code string) ValidationResult {
	lower := strings.ToLower(code)
	errs := []string{}
	warnings := []string{}

	if !strings.Contains(lower, "<!doctype") && !strings.Contains(lower, "<html") {
		errs = append(errs, errMissingStructure)
	}

	if w := tagPairWarning(lower, "body"); w != "" {
		warnings = append(warnings, w)
	}

	if w := tagPairWarning(lower, "html"); w != "" {
		warnings = append(warnings, w)
	}

	if !containsAny(lower, cssFrameworks) {
		warnings = append(warnings, warnNoFramework)
	}

	if !strings.Contains(lower, "charset") {
		warnings = append(warnings, warnNoCharset)
	}

	if !strings.Contains(lower, "<title") {
		warnings = append(warnings, warnNoTitle)
	}

	return ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

func tagPairWarning(lower, tag string) string {
	hasOpen := strings.Contains(lower, "<"+tag)
	hasClose := strings.Contains(lower, "</"+tag+">")

	switch {
	case !hasOpen && !hasClose:
		return "missing <" + tag + "> tags"
	case !hasOpen:
		return "missing opening <" + tag + "> tag"
	case !hasClose:
		return "missing closing </" + tag + "> tag"
	}

	return ""
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}

	return false
}

// best-effort structural patch for code that failed validation.
// the doctype is only added when an <html or <body fragment anchors it.
func Repair(code string) string {
	lower := strings.ToLower(code)
	hasHTML := strings.Contains(lower, "<html")
	hasBody := strings.Contains(lower, "<body")

	if hasBody && !strings.Contains(lower, "</body>") {
		if locs := closeHTMLRe.FindAllStringIndex(code, -1); len(locs) > 0 {
			i := locs[len(locs)-1][0]
			code = code[:i] + "</body>\n" + code[i:]
		} else {
			code += "\n</body>"
		}
	}

	if hasHTML && !strings.Contains(lower, "</html>") {
		code += "\n</html>"
	}

	if (hasHTML || hasBody) && !strings.Contains(lower, "<!doctype") {
		code = doctype + "\n" + code
	}

	return code
}
