package generator

import (
	"strings"

	"codeberg.org/wexar/server/internal/llm"
)

const (
	explanationOpen  = "[EXPLICAÇÃO]"
	explanationClose = "[/EXPLICAÇÃO]"
	codeOpen         = "[CÓDIGO]"
	codeClose        = "[/CÓDIGO]"
)

// builds the ordered message list sent upstream:
// template, current code (edits only), history, then the new prompt.
func ComposeMessages(req Request) []llm.Message {
	b := req.base()
	messages := make([]llm.Message, 0, len(b.History)+3)

	switch r := req.(type) {
	case EditRequest:
		messages = append(messages,
			llm.Message{Role: RoleSystem, Content: editTemplate()},
			llm.Message{Role: RoleSystem, Content: currentCodeContext(r.CurrentCode)},
		)
	default:
		messages = append(messages, llm.Message{Role: RoleSystem, Content: createTemplate()})
	}

	for _, msg := range b.History {
		messages = append(messages, llm.Message{Role: msg.Role, Content: msg.Content})
	}

	messages = append(messages, llm.Message{Role: RoleUser, Content: b.Prompt})

	return messages
}

func responseFormat(explanationHint, codeSkeleton string) string {
	var builder strings.Builder

	builder.WriteString("FORMATO DA RESPOSTA (OBRIGATÓRIO):\n")
	builder.WriteString(explanationOpen + "\n")
	builder.WriteString(explanationHint + "\n")
	builder.WriteString(explanationClose + "\n\n")
	builder.WriteString(codeOpen + "\n")
	builder.WriteString(codeSkeleton)
	builder.WriteString(codeClose)

	return builder.String()
}

func createTemplate() string {
	var builder strings.Builder

	builder.WriteString("Você é um desenvolvedor web sênior que cria sites modernos, responsivos e bonitos.\n\n")
	builder.WriteString("REGRAS:\n")
	builder.WriteString("1. Responda sempre com um documento HTML completo e válido\n")
	builder.WriteString("2. Estilize tudo com Tailwind CSS, carregado via CDN\n")
	builder.WriteString("3. Inclua meta charset, meta viewport e uma tag <title>\n")
	builder.WriteString("4. Use JavaScript puro para interatividade quando fizer sentido\n")
	builder.WriteString("5. Pense primeiro no celular: o layout deve ser responsivo\n")
	builder.WriteString("6. Para imagens, use /placeholder.svg\n\n")
	builder.WriteString(responseFormat(
		"Resumo curto do que foi criado (2 a 3 linhas)",
		`<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Título do site</title>
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body>
</body>
</html>
`))
	builder.WriteString("\n\nDESIGN:\n")
	builder.WriteString("- Paleta de cores harmoniosa e hierarquia visual clara\n")
	builder.WriteString("- Espaçamento consistente, transições suaves e efeitos de hover\n")
	builder.WriteString("- Chamadas para ação bem destacadas\n")

	return builder.String()
}

func editTemplate() string {
	var builder strings.Builder

	builder.WriteString("Você é um desenvolvedor web sênior que altera sites existentes com precisão.\n\n")
	builder.WriteString("REGRAS:\n")
	builder.WriteString("1. Leia o código atual com atenção antes de mudar qualquer coisa\n")
	builder.WriteString("2. Faça somente as alterações pedidas\n")
	builder.WriteString("3. Tudo o que não foi mencionado deve continuar idêntico\n")
	builder.WriteString("4. Devolva o documento HTML completo já modificado\n")
	builder.WriteString("5. Preserve estrutura, estilos e scripts existentes\n\n")
	builder.WriteString(responseFormat(
		"O que exatamente foi alterado (2 a 3 linhas)",
		`<!DOCTYPE html>
<html lang="pt-BR">
</html>
`))

	return builder.String()
}

func currentCodeContext(code string) string {
	var builder strings.Builder

	builder.WriteString("CÓDIGO ATUAL DO SITE:\n\n")
	builder.WriteString(code)
	builder.WriteString("\n\n=================\n")
	builder.WriteString("IMPORTANTE: altere apenas o que o usuário pediu. ")
	builder.WriteString("Todas as partes não mencionadas devem permanecer exatamente iguais, caractere por caractere. ")
	builder.WriteString("Devolva o HTML completo.")

	return builder.String()
}
