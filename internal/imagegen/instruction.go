package imagegen

import (
	"fmt"
	"regexp"
	"strings"

	"flatify/internal/domain/jsoncfg"
)

// FlatDesignClause closes every novice description.
const FlatDesignClause = "Ensure the logo is a flat design, simple, modern, and professional, following flat design principles: minimalism, bold geometric shapes, vibrant colors, clean typography, and no gradients, shadows, or 3D effects."

// BuildNoviceDescription expands the guided form into the description sent
// to the model and stored with the record. Optional hints are appended in a
// fixed order and FlatDesignClause is always last.
func BuildNoviceDescription(form jsoncfg.NoviceForm) string {
	parts := []string{strings.TrimSpace(form.BusinessDescription)}

	primary := strings.TrimSpace(form.PrimaryColor)
	secondary := strings.TrimSpace(form.SecondaryColor)
	if primary != "" || secondary != "" {
		parts = append(parts, fmt.Sprintf("The logo should feature colors like %s (primary) and %s (secondary).",
			coalesce(primary, "any complementary color"), coalesce(secondary, "any complementary color")))
	}
	if font := strings.TrimSpace(form.FontStyle); font != "" {
		parts = append(parts, fmt.Sprintf("Use the font style similar to %s.", font))
	}
	if layout := strings.TrimSpace(form.Layout); layout != "" {
		parts = append(parts, fmt.Sprintf("The logo layout should be: %s.", layout))
	}
	parts = append(parts, FlatDesignClause)
	return joinNonEmpty(parts)
}

// BuildInitialPrompt is the text sent for generate-from-text.
func BuildInitialPrompt(businessName, description string) string {
	return fmt.Sprintf("Generate a flat design logo for a business named %s that can be described as %s",
		strings.TrimSpace(businessName), strings.TrimSpace(description))
}

// BuildSimilarInstruction asks for a new logo inspired by the attached image.
func BuildSimilarInstruction(form jsoncfg.SimilarForm) string {
	parts := []string{
		"Analyze the provided image.",
		fmt.Sprintf("Then, generate a *new* flat design logo for a business named %q.", strings.TrimSpace(form.BusinessName)),
		fmt.Sprintf("This new logo should be conceptually inspired by the style, elements, or feel of the provided image, but tailored to the business description: %q.", strings.TrimSpace(form.BusinessDescription)),
		"The final output must be a completely new logo, not just a modification of the input image.",
		"Adhere to flat design principles: minimalism, bold geometric shapes, vibrant colors, and clean typography, avoiding gradients, shadows, or 3D effects.",
	}
	if palette := strings.TrimSpace(form.ColorPalette); palette != "" {
		parts = append(parts, fmt.Sprintf("Use a %s color palette.", palette))
	}
	if font := strings.TrimSpace(form.FontStyle); font != "" {
		parts = append(parts, fmt.Sprintf("The font style should be %s.", font))
	}
	if shape := strings.TrimSpace(form.LogoShape); shape != "" {
		parts = append(parts, fmt.Sprintf("The logo should have a %s shape.", shape))
	}
	return joinNonEmpty(parts)
}

// BuildRefineLogoInstruction asks for a revised version of an attached logo.
func BuildRefineLogoInstruction(instruction string) string {
	return fmt.Sprintf("Refine the provided logo based on the following instructions: %q. The output should be a new version of the logo incorporating these changes, maintaining a flat design style.",
		strings.TrimSpace(instruction))
}

// BuildRefinePromptInstruction asks the text model to rewrite a raw prompt.
func BuildRefinePromptInstruction(prompt string) string {
	var b strings.Builder
	b.WriteString("You are an expert logo prompt engineer.\n")
	b.WriteString("Your goal is to take a user's prompt and improve it so that it will generate better results from a text-to-image AI model.\n")
	b.WriteString("Pay close attention to details that would improve the logo, such as specifying flat design principles like minimalism, bold geometric shapes, vibrant colors, clean typography, and the absence of gradients, shadows, or 3D effects.\n")
	b.WriteString("Suggest specific keywords related to flat design, modern aesthetics, and current design trends. Provide details about specific shapes, colors, and typography.\n")
	b.WriteString("Respond with the refined prompt only.\n\n")
	b.WriteString("Original Prompt: ")
	b.WriteString(strings.TrimSpace(prompt))
	b.WriteString("\nRefined Prompt:")
	return b.String()
}

// DefaultBusinessName is used when a free-form prompt names no business.
const DefaultBusinessName = "CustomLogo"

var namedRe = regexp.MustCompile(`(?i)named\s+(?:'([^']+)'|"([^"]+)")`)

// ExtractBusinessName finds a quoted business name ("named 'Acme'") in a
// free-form prompt.
func ExtractBusinessName(prompt string) string {
	m := namedRe.FindStringSubmatch(prompt)
	if m == nil {
		return DefaultBusinessName
	}
	return coalesce(m[1], m[2], DefaultBusinessName)
}

func joinNonEmpty(parts []string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
