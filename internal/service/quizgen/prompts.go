package quizgen

import (
	"fmt"
	"strings"
)

const (
	grammarSystem    = "You are an expert English grammar teacher. Generate clear, educational quiz questions."
	vocabularySystem = "You are an expert English vocabulary teacher. Generate clear, educational quiz questions."
	readingSystem    = "You are an expert English reading comprehension teacher. Generate engaging passages and thoughtful questions."
	idiomsSystem     = "You are an expert English idioms and phrases teacher. Generate clear, practical quiz questions."
)

const questionShape = `[
  {
    "question": "Question text here",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctIndex": 0,
    "explanation": "Brief explanation of the correct answer"
  }
]`

const readingShape = `[
  {
    "passage": "Full passage text here...",
    "question": "Question about the passage",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctIndex": 0,
    "explanation": "Brief explanation"
  }
]`

// systemPrompt returns the per-topic instruction for the model.
func systemPrompt(topic Topic) string {
	switch topic {
	case TopicGrammar:
		return grammarSystem
	case TopicVocabulary:
		return vocabularySystem
	case TopicReading:
		return readingSystem
	case TopicIdioms:
		return idiomsSystem
	}
	return grammarSystem
}

// userPrompt builds the generation request. avoid carries question texts
// already shown to the learner today so a retest gets a fresh set.
func userPrompt(topic Topic, count int, avoid []string) string {
	var b strings.Builder

	switch topic {
	case TopicGrammar:
		fmt.Fprintf(&b, "Generate %d English grammar multiple-choice questions.\n\n", count)
		b.WriteString("Topics to cover: tenses, subject-verb agreement, articles, prepositions, conditionals.\n\n")
		b.WriteString("Return ONLY a valid JSON array with this exact structure:\n")
		b.WriteString(questionShape)
		b.WriteString("\n\nMake questions practical and relevant to everyday English usage.")
	case TopicVocabulary:
		fmt.Fprintf(&b, "Generate %d English vocabulary multiple-choice questions.\n\n", count)
		b.WriteString("Focus on: word meanings, synonyms, antonyms, word usage in context.\n")
		b.WriteString("Use intermediate to advanced vocabulary words.\n\n")
		b.WriteString("Return ONLY a valid JSON array with this exact structure:\n")
		b.WriteString(questionShape)
		b.WriteString("\n\nMake questions engaging and educational.")
	case TopicReading:
		fmt.Fprintf(&b, "Generate a reading comprehension exercise with 1 passage and %d questions.\n\n", count)
		b.WriteString("Create an interesting passage (150-200 words) on a general topic (science, history, culture, technology, etc.).\n")
		fmt.Fprintf(&b, "Then create %d multiple-choice questions based on the passage.\n\n", count)
		b.WriteString("Return ONLY a valid JSON array with this exact structure:\n")
		b.WriteString(readingShape)
		fmt.Fprintf(&b, "\n\nAll %d questions should have the SAME passage text.\n", count)
		b.WriteString("Make questions test comprehension, inference, and vocabulary from the passage.")
	case TopicIdioms:
		fmt.Fprintf(&b, "Generate %d English idioms and phrases multiple-choice questions.\n\n", count)
		b.WriteString("Focus on: common idioms, phrasal verbs, expressions, their meanings and usage.\n\n")
		b.WriteString("Return ONLY a valid JSON array with this exact structure:\n")
		b.WriteString(questionShape)
		b.WriteString("\n\nUse commonly used idioms and phrases that are practical for learners.")
	}

	if len(avoid) > 0 {
		b.WriteString("\n\nDo NOT repeat any of these questions:\n")
		for _, q := range avoid {
			b.WriteString("- ")
			b.WriteString(q)
			b.WriteString("\n")
		}
	}

	return b.String()
}
