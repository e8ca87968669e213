package services

import (
	"fmt"
	"strings"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// formatGuidelines renders retrieved chunks into the evidence block fed to
// the model. Each chunk is prefixed with its source document and category
// tag so answers can point back at the guideline they came from.
func formatGuidelines(chunks []*domain.RetrievedChunk) string {
	if len(chunks) == 0 {
		return ""
	}
	parts := make([]string, 0, len(chunks))
	for _, rc := range chunks {
		parts = append(parts, fmt.Sprintf("[Source: %s | Tag: %s]\n%s",
			rc.Chunk.Source, rc.Chunk.Category.DisplayName(), rc.Chunk.Content))
	}
	return strings.Join(parts, "\n\n")
}

// buildPrompt assembles the full generation prompt in the Gemma turn
// format the model was tuned on. Order is fixed: system role, patient
// clinical summary, guideline evidence, response strategy, then the
// question.
func buildPrompt(profile *domain.Profile, question, guidelines string) string {
	evidence := profile.ClinicalContext() + "\n\nUse standard medical knowledge."
	if guidelines != "" {
		evidence = fmt.Sprintf("%s\n\nRELEVANT CLINICAL GUIDELINES:\n%s", profile.ClinicalContext(), guidelines)
	}

	markers := "None"
	if profile.Metrics != nil {
		markers = profile.Metrics.Summary()
	}

	var b strings.Builder
	b.WriteString("You are Dr. MedGemma, an expert Clinical Nutritionist specializing in Indian diets.\n\n")
	fmt.Fprintf(&b, "PATIENT %s (%dy / %s)\n", profile.Name, profile.Age, profile.Gender)
	fmt.Fprintf(&b, "- Condition: %s (CRITICAL)\n", profile.Condition.DisplayName())
	fmt.Fprintf(&b, "- Markers: %s\n", markers)
	fmt.Fprintf(&b, "- Goal: %s\n\n", profile.HealthGoal)
	b.WriteString("CLINICAL GUIDELINES:\n")
	b.WriteString(evidence)
	b.WriteString("\n\n")
	b.WriteString(responseStrategy(profile.Condition))

	return fmt.Sprintf("<start_of_turn>user\n%s\n\nPATIENT REQUEST: %q\n\nANSWER:<end_of_turn>\n<start_of_turn>model", b.String(), question)
}

// responseStrategy is the fixed instruction block steering answer shape by
// question type.
func responseStrategy(condition domain.Condition) string {
	return fmt.Sprintf(`**RESPONSE STRATEGY (ADAPT TO USER):**
First mention which information you are using to respond.
Do not show your thinking process; respond to the patient with relevant information.

1. **IF USER ASKS ABOUT A SPECIFIC FOOD (e.g., "Can I eat X?"):**
   - **Verdict**: Start with a clear "Yes", "No", or "Limit".
   - **Science**: Explain the specific impact on their %s (e.g., blood sugar spike, sodium load).
   - **Swap**: Suggest a specific, tasty Indian alternative.

2. **IF USER ASKS FOR A PLAN/ROUTINE/DIET:**
   - **Structure**: Create a detailed daily schedule (Breakfast, Lunch, Evening Snack, Dinner).
   - **Foods**: Suggest specific Indian dishes (e.g., Moong Dal Chilla, Ragi Roti, Curd).
   - **Details**: Mention portion sizes and why this helps their goals.

3. **IF USER ASKS A GENERAL QUESTION:**
   - Provide a comprehensive, detailed explanation using bullet points.
   - Be educational and encouraging.

**CRITICAL RULES:**
- Always address the patient by name.
- Do NOT be vague. Do NOT just say "Eat healthy." Give examples.
- Use the provided Clinical Guidelines as the primary source of truth.`, condition.DisplayName())
}
