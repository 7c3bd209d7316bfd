package rag

import (
	"fmt"
	"strings"

	"github.com/JoeBee/resumesite/internal/knowledge"
)

// systemPrompt instructs the model to answer only from retrieved context.
const systemPrompt = `You are a helpful assistant answering questions about Joseph Beyer's resume and career.
Use ONLY the following retrieved context (from his full resume and/or FAQ Q&A) to answer.
When the context includes a "Question: ... Answer: ..." block that matches the user's question, prefer that answer.
If the context does not contain enough information, say so briefly and answer from common sense where reasonable.
Keep answers concise and professional. If the question is off-topic or inappropriate, politely redirect to resume-related topics.`

// formatContext joins retrieved passages into a single context block.
func formatContext(results []knowledge.Result) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, r.Document.Content)
	}
	return strings.Join(parts, "\n\n")
}

// userPrompt assembles the final user message from context and question.
func userPrompt(context, question string) string {
	return fmt.Sprintf("Context from resume and FAQ:\n%s\n\nQuestion: %s", context, question)
}
