package services

import (
	"fmt"
	"strings"

	"estudia-backend/internal/models"
)

// buildTutorSystemPrompt embeds the session parameters into the fixed
// pedagogical instruction set. The tutor always answers in Spanish.
func buildTutorSystemPrompt(session *models.TutoringSession) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Eres un tutor de IA experto en %s nivel %s.\n", session.Subject, session.Level))
	b.WriteString(fmt.Sprintf("Tu modo de tutoría es: %s.\n\n", session.Mode))

	b.WriteString(`Directrices:
- Sé paciente y alentador
- Proporciona explicaciones claras y paso a paso
- Adapta tu lenguaje al nivel del estudiante
- Usa ejemplos relevantes cuando sea posible
- Fomenta el pensamiento crítico
- Sé conciso pero completo

`)

	b.WriteString(fmt.Sprintf("Modo %s:\n", session.Mode))
	b.WriteString(`- Explicación: Enfócate en conceptos claros y fundamentos
- Resolución de Problemas: Guía paso a paso en la resolución
- Práctica Guiada: Proporciona ejercicios y retroalimentación

`)

	b.WriteString("Responde en español y mantén un tono profesional pero amigable.")

	return b.String()
}

func buildPlanPrompt(req models.GeneratePlanRequest) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Crea un plan de estudio personalizado para %s nivel %s.\n\n", req.Subject, req.Level))

	objectives := req.Objectives
	if objectives == "" {
		objectives = "No especificados"
	}
	learningStyle := req.LearningStyle
	if learningStyle == "" {
		learningStyle = "No especificado"
	}

	b.WriteString("Detalles:\n")
	b.WriteString(fmt.Sprintf("- Duración: %d semanas\n", req.Duration))
	b.WriteString(fmt.Sprintf("- Horas por semana: %d\n", req.HoursPerWeek))
	b.WriteString(fmt.Sprintf("- Objetivos: %s\n", objectives))
	b.WriteString(fmt.Sprintf("- Estilo de aprendizaje: %s\n\n", learningStyle))

	b.WriteString(`Genera un plan estructurado que incluya:
1. Objetivos generales del plan
2. Distribución semanal de temas
3. Actividades de aprendizaje recomendadas
4. Recursos sugeridos
5. Hitos de evaluación

Responde en formato JSON con la siguiente estructura:
{
  "objectives": "string",
  "weeklyPlan": [
    {
      "week": 1,
      "title": "string",
      "objectives": "string",
      "topics": ["string"],
      "activities": ["string"],
      "resources": ["string"]
    }
  ],
  "recommendations": "string"
}
`)

	return b.String()
}

const planSystemPrompt = "Eres un experto en educación y creación de planes de estudio personalizados. Genera planes estructurados y efectivos."

// summaryLengthDirectives maps UI length settings to prompt wording.
var summaryLengthDirectives = map[string]string{
	"Corto (25% del original)": "resume el contenido en aproximadamente el 25% de su longitud original",
	"Medio (50% del original)": "resume el contenido en aproximadamente el 50% de su longitud original",
	"Largo (75% del original)": "resume el contenido en aproximadamente el 75% de su longitud original",
	"Personalizado":            "resume el contenido de manera concisa pero completa",
}

func buildSummaryPrompt(req models.GenerateSummaryRequest) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Genera un resumen del siguiente texto:\n\n%s\n\n", req.Text))

	if req.Style != "" {
		b.WriteString(fmt.Sprintf("Estilo del resumen: %s\n", req.Style))
	}

	if req.Length != "" {
		directive, ok := summaryLengthDirectives[req.Length]
		if !ok {
			directive = req.Length
		}
		b.WriteString(fmt.Sprintf("Longitud: %s\n", directive))
	}

	var requirements []string
	if req.IncludeKeyPoints {
		requirements = append(requirements, "puntos clave")
	}
	if req.GenerateQuestions {
		requirements = append(requirements, "preguntas de estudio")
	}
	if req.AddExamples {
		requirements = append(requirements, "ejemplos prácticos")
	}
	if req.TranslateTerms {
		requirements = append(requirements, "traducción de términos técnicos")
	}
	if len(requirements) > 0 {
		b.WriteString(fmt.Sprintf("Incluir: %s\n", strings.Join(requirements, ", ")))
	}

	b.WriteString(`
Responde en formato JSON con la siguiente estructura:
{
  "summary": "string",
  "keyPoints": ["string"],
  "studyQuestions": ["string"],
  "examples": ["string"],
  "translatedTerms": [{"term": "string", "translation": "string"}]
}
`)

	return b.String()
}

const summarySystemPrompt = "Eres un experto en resumen de textos y creación de contenido educativo. Genera resúmenes claros, concisos y útiles para el estudio."
