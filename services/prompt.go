package services

import (
	"fmt"
	"strings"

	"github.com/siucheung0524/ThaiLingo/models"
)

// systemPrompt is shared by the generative providers.
const systemPrompt = "You are a translation engine for travellers in Thailand. " +
	"Respond with a single JSON object and nothing else: no markdown fences, no commentary."

// languageNames maps request codes to the names used inside prompts.
var languageNames = map[string]string{
	models.LangThai:    "Thai",
	models.LangChinese: "Traditional Chinese",
	"en":               "English",
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// buildTranslationPrompt assembles the instruction for the generative
// providers from the input kind, direction and mode. The output contract is
// spelled out per mode so every provider yields the same item shape.
func buildTranslationPrompt(req *models.TranslateRequest) string {
	source := languageName(req.SourceLang)
	target := languageName(req.TargetLang)

	var b strings.Builder
	if req.HasImage() {
		fmt.Fprintf(&b, "The attached photo was taken in Thailand and contains %s text", source)
		switch req.Mode {
		case models.ModeMenu:
			b.WriteString(", most likely a restaurant menu")
		case models.ModeSign:
			b.WriteString(", most likely a sign or notice")
		}
		b.WriteString(".\n")
		fmt.Fprintf(&b, "Read every distinct %s line or dish name and translate each one to %s.\n", source, target)
	} else {
		fmt.Fprintf(&b, "Translate the following %s text to %s.\n", source, target)
		fmt.Fprintf(&b, "Text:\n%s\n", req.Text)
	}

	b.WriteString("\nReturn a JSON object of the form {\"items\": [...]} where every item has:\n")
	b.WriteString(`- "id": a number, starting at 1` + "\n")
	b.WriteString(`- "thai": the Thai text` + "\n")
	b.WriteString(`- "zh": the Traditional Chinese text` + "\n")
	b.WriteString(`- "roman": the Thai text romanized with the Royal Thai General System` + "\n")

	if req.Mode == models.ModeMenu {
		b.WriteString(`- "price": the price as written, or "" if not visible` + "\n")
		b.WriteString(`- "desc": a short description of the dish in ` + target + "\n")
		b.WriteString(`- "isSpicy": true if the dish is typically spicy` + "\n")
		b.WriteString(`- "containsShellfish": true if the dish contains prawn, crab, shellfish or squid` + "\n")
		b.WriteString(`- "tags": up to three short tags such as "soup", "fried", "dessert"` + "\n")
		b.WriteString(`- "category": the menu section the item belongs to, or "" if none` + "\n")
	}

	b.WriteString("\nUse \"\" for anything you cannot read. Output the JSON object only.\n")
	return b.String()
}
