package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const completeDocument = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="UTF-8">
    <title>Loja</title>
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body><h1>Oi</h1></body>
</html>`

func TestValidate_CompleteDocument(t *testing.T) {
	result := Validate(completeDocument)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidate_RoundTripOfExtractedCode(t *testing.T) {
	extracted := Extract("[CÓDIGO]"+completeDocument+"[/CÓDIGO]", false)

	result := Validate(extracted.Code)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidate_MissingStructure(t *testing.T) {
	result := Validate("<div>oi</div>")

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{errMissingStructure}, result.Errors)
	assert.Contains(t, result.Warnings, "missing <body> tags")
	assert.Contains(t, result.Warnings, "missing <html> tags")
}

func TestValidate_Warnings(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []string
	}{
		{
			name: "closing tags missing",
			code: `<html><head><meta charset="utf-8"><title>t</title><link href="bootstrap.css"></head><body>`,
			want: []string{"missing closing </body> tag", "missing closing </html> tag"},
		},
		{
			name: "opening tags missing",
			code: `<!DOCTYPE html><meta charset="utf-8"><title>t</title><script src="tailwindcss"></script></body></html>`,
			want: []string{"missing opening <body> tag", "missing opening <html> tag"},
		},
		{
			name: "no framework, charset or title",
			code: `<!DOCTYPE html><html><body></body></html>`,
			want: []string{warnNoFramework, warnNoCharset, warnNoTitle},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.code)

			assert.True(t, result.IsValid, "warnings never block")
			assert.Equal(t, tt.want, result.Warnings)
		})
	}
}

func TestValidate_CaseInsensitive(t *testing.T) {
	result := Validate(`<!doctype html><HTML><HEAD><META CHARSET="UTF-8"><TITLE>x</TITLE></HEAD><BODY class="bulma"></BODY></HTML>`)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
}

func TestRepair(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{
			name: "body fragment gets doctype and close",
			code: "<body><h1>Oi</h1>",
			want: "<!DOCTYPE html>\n<body><h1>Oi</h1>\n</body>",
		},
		{
			name: "body closed inside html",
			code: "<html><body><p>x</p></html>",
			want: "<!DOCTYPE html>\n<html><body><p>x</p></body>\n</html>",
		},
		{
			name: "unclosed html",
			code: "<html><body></body>",
			want: "<!DOCTYPE html>\n<html><body></body>\n</html>",
		},
		{
			name: "no anchor stays untouched",
			code: "apenas texto",
			want: "apenas texto",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Repair(tt.code))
		})
	}
}

func TestRepair_NoOpOnCompleteDocument(t *testing.T) {
	assert.Equal(t, completeDocument, Repair(completeDocument))
	assert.Equal(t, validDocument, Repair(validDocument))
}

func TestRepair_RepairedFragmentValidates(t *testing.T) {
	code := "<body><main>conteúdo</main>"
	assert.False(t, Validate(code).IsValid)

	assert.True(t, Validate(Repair(code)).IsValid)
}
