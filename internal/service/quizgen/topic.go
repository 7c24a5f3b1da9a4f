package quizgen

import "strings"

// Topic selects the question style for a generated quiz.
type Topic string

const (
	TopicGrammar    Topic = "grammar"
	TopicVocabulary Topic = "vocabulary"
	TopicReading    Topic = "reading"
	TopicIdioms     Topic = "idioms"
)

// TopicForActivity maps a daily activity ID to its quiz topic. The fixed
// daily-N ids are the primary scheme; descriptive ids are matched by
// substring so custom catalogs keep working.
func TopicForActivity(activityID string) (Topic, bool) {
	switch activityID {
	case "daily-1":
		return TopicGrammar, true
	case "daily-2":
		return TopicVocabulary, true
	case "daily-3":
		return TopicReading, true
	case "daily-4":
		return TopicIdioms, true
	}

	id := strings.ToLower(activityID)
	switch {
	case strings.Contains(id, "grammar"):
		return TopicGrammar, true
	case strings.Contains(id, "vocab"):
		return TopicVocabulary, true
	case strings.Contains(id, "read"):
		return TopicReading, true
	case strings.Contains(id, "idiom"), strings.Contains(id, "phrase"):
		return TopicIdioms, true
	}
	return "", false
}
