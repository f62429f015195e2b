package scanning

import "strings"

// transcribePrompt is shared by the LLM recognizers. The parser downstream
// depends on line breaks, so the model is asked to keep them.
const transcribePrompt = `You are reading a photographed receipt or invoice. Transcribe every line of text exactly as printed, top to bottom.

Rules:
- Keep one receipt line per output line, preserving the original line breaks
- Keep prices, quantities, dates and labels such as TOTAL, TAX or SUBTOTAL exactly as printed
- Do not summarize, translate, reorder or correct anything
- Do not add commentary before or after the text
- Do not use markdown code blocks`

// cleanTranscript strips the wrapping that models sometimes add around the
// text they were asked for.
func cleanTranscript(text string) (string, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		// drop the fence line, including any language tag
		if idx := strings.Index(text, "\n"); idx != -1 {
			text = text[idx+1:]
		} else {
			text = strings.TrimLeft(text, "`")
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)

	if text == "" {
		return "", ErrEmptyTranscript
	}
	return text, nil
}
