package app

import (
	"strings"

	"askmynotes/internal/model"
)

// RefusalMessage is the exact sentence the model is instructed to emit when a
// question cannot be answered from the uploaded notes.
const RefusalMessage = "Not found in the notes for this subject. Would you like to upload more material?"

// BuildAskPrompt renders the grounded Q&A instruction. It is a pure function
// of its inputs; history must already be in chronological order.
func BuildAskPrompt(contextBlock string, history []model.ConversationTurn, question string) string {
	var b strings.Builder
	b.WriteString(`You are a supportive, teacher-like study assistant named "Study Copilot".
Your goal is to explain concepts clearly and conversationally.
Answer the student's question using ONLY the provided notes for this subject.
If the answer is not in the notes, respond with: "` + RefusalMessage + `"

CONSTRAINTS:
1. Ground answers in the provided notes.
2. Use a helpful, encouraging tone.
3. Reference the source file name.
4. If it's a follow-up question, use the recent history to stay in context.

RECENT HISTORY:
`)
	b.WriteString(FormatHistory(history))
	b.WriteString("\n\nNOTES:\n")
	b.WriteString(contextBlock)
	b.WriteString("\n\nQUESTION: ")
	b.WriteString(question)
	b.WriteString(`

Provide your response in a conversational way.
Include: The Answer (with citations), Confidence: [High/Medium/Low]`)
	return b.String()
}

// BuildStudyTasksPrompt renders the exam-setter instruction for study-set
// generation, demanding raw JSON output with the mcqs/shortAnswers shape.
func BuildStudyTasksPrompt(subjectName, contextBlock string) string {
	var b strings.Builder
	b.WriteString(`You are a strict academic examiner. Based ONLY on the provided study notes for the subject "` + subjectName + `", generate a study task set.

CRITICAL RULES:
1. Do NOT use outside knowledge. If the notes are about "` + subjectName + `", do NOT generate questions about other topics.
2. If the notes are insufficient to generate 5 MCQs, generate as many as possible (min 1).
3. Base MCQs on specific facts, definitions, or concepts found in the notes.

NOTES:
`)
	b.WriteString(contextBlock)
	b.WriteString(`

Generate EXACTLY this JSON structure (no markdown, raw JSON only):
{
  "mcqs": [
    {"q": "question text", "options": ["A","B","C","D"], "answer": 0, "explanation": "why this is the answer based on the notes"}
  ],
  "shortAnswers": [
    {"q": "conceptual question", "model": "detailed model answer citing the source file"}
  ]
}

Rules:
- Generate up to 5 MCQs and 3 short answers.
- MCQ answer field = index (0-3) of correct option.
- Include source citations in short answer model answers.`)
	return b.String()
}

// FormatHistory renders turns as "ROLE: content" lines, one per turn.
func FormatHistory(history []model.ConversationTurn) string {
	if len(history) == 0 {
		return ""
	}
	lines := make([]string, 0, len(history))
	for _, t := range history {
		lines = append(lines, strings.ToUpper(t.Role)+": "+t.Content)
	}
	return strings.Join(lines, "\n")
}
