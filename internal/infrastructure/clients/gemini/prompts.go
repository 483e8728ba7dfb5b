package gemini

import (
	"fmt"
	"strings"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

const searchSystemInstruction = `You are an expert Ayurvedic assistant. Your task is to respond to user queries about Ayurvedic treatments, herbs, or concepts. Use the provided Google Search results to give up-to-date and accurate information. Format your response in clean Markdown.`

const insightSystemInstruction = `You are an Ayurvedic expert providing a high-level summary and general pointers for a qualified practitioner based on a patient's condition and history.
Your response should be concise, professional, and supportive.
- Briefly summarize the key points from the patient's data.
- Suggest general Ayurvedic concepts or areas of focus (e.g., "balancing Vata dosha") that may be relevant.
- DO NOT provide a diagnosis or specific medical advice.
- Frame the response as helpful notes for %s.`

const doshaSystemInstruction = `Identify the most likely dominant Dosha (Vata, Pitta, or Kapha) imbalance based on symptoms. Provide a brief explanation. Start with "Vata Dominant:", "Pitta Dominant:", or "Kapha Dominant:". This is theoretical for a practitioner.`

const planSystemInstruction = `You are an expert Ayurvedic assistant creating a structured wellness plan for %s to review.
Use "###" for headings: ### Dietary Suggestions, ### Lifestyle Adjustments, ### Herbal Considerations.
Focus on foundational Ayurvedic principles. professional and supportive.`

// Sampling temperatures per use case
const (
	insightTemperature = 0.5
	doshaTemperature   = 0.3
	planTemperature    = 0.6
)

// Use-case error messages shown to the practitioner
const (
	errSearchMessage  = "Failed to fetch data from Google Search/Ayurvedic knowledge base. Please check your connection."
	errInsightMessage = "Failed to get insights from the AI assistant."
	errDoshaMessage   = "Failed to get Prakriti analysis."
	errPlanMessage    = "Failed to generate a wellness plan."
)

func buildSearchPrompt(query string) string {
	return "Find comprehensive Ayurvedic information about: " + strings.TrimSpace(query)
}

func historyOrDefault(p *entities.Patient) string {
	if strings.TrimSpace(p.History) == "" {
		return "Not provided"
	}
	return p.History
}

func buildInsightPrompt(p *entities.Patient) string {
	return fmt.Sprintf("Assistant notes for:\n- Presenting Condition: %s\n- Medical History: %s\n",
		p.Condition, historyOrDefault(p))
}

func buildDoshaPrompt(p *entities.Patient) string {
	return fmt.Sprintf("Analyze Prakriti:\n- Presenting Condition: %s\n- Medical History: %s\n",
		p.Condition, historyOrDefault(p))
}

func buildPlanPrompt(p *entities.Patient) string {
	return fmt.Sprintf("Wellness plan for:\n- Condition: %s\n- History: %s\n- Age: %d\n- Gender: %s\n",
		p.Condition, historyOrDefault(p), p.Age, p.Gender)
}
