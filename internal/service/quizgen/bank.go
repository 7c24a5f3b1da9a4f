package quizgen

import (
	"hash/fnv"

	"github.com/lingora/lingora-backend/internal/domain"
)

// bankQuestions returns a built-in question set for the topic. The set is
// picked deterministically from the date key so two learners opening the
// same activity on the same day see the same fallback quiz, and the set
// changes from day to day.
func bankQuestions(topic Topic, dateKey string) []domain.Question {
	sets := questionBank[topic]
	if len(sets) == 0 {
		sets = questionBank[TopicGrammar]
	}

	h := fnv.New32a()
	h.Write([]byte(dateKey))
	h.Write([]byte(topic))
	set := sets[int(h.Sum32())%len(sets)]

	out := make([]domain.Question, len(set))
	copy(out, set)
	return out
}

var questionBank = map[Topic][][]domain.Question{
	TopicGrammar: {
		{
			{ID: 1, Question: "She ___ to school every day.", Options: []string{"go", "goes", "going", "gone"}, CorrectIndex: 1, Explanation: `Use "goes" for third person singular in present simple tense.`},
			{ID: 2, Question: "They ___ playing football now.", Options: []string{"is", "am", "are", "be"}, CorrectIndex: 2, Explanation: `Use "are" with plural subjects in present continuous tense.`},
			{ID: 3, Question: "I ___ breakfast every morning.", Options: []string{"eat", "eats", "eating", "eaten"}, CorrectIndex: 0, Explanation: `Use base form "eat" for first person in present simple tense.`},
			{ID: 4, Question: "He ___ his homework right now.", Options: []string{"do", "does", "is doing", "doing"}, CorrectIndex: 2, Explanation: `Use present continuous "is doing" for actions happening now.`},
			{ID: 5, Question: "We ___ English every day.", Options: []string{"study", "studies", "studying", "studied"}, CorrectIndex: 0, Explanation: `Use base form "study" for plural subjects in present simple.`},
		},
		{
			{ID: 1, Question: "Yesterday, I ___ to the market.", Options: []string{"go", "goes", "went", "going"}, CorrectIndex: 2, Explanation: `Use "went" (past tense of go) for completed past actions.`},
			{ID: 2, Question: "She ___ her keys last night.", Options: []string{"lose", "loses", "lost", "losing"}, CorrectIndex: 2, Explanation: `Use "lost" (past tense of lose) for past events.`},
			{ID: 3, Question: "They ___ watching TV when I called.", Options: []string{"was", "were", "is", "are"}, CorrectIndex: 1, Explanation: `Use "were" with plural subjects in past continuous.`},
			{ID: 4, Question: "He ___ finished his work by 5 PM.", Options: []string{"has", "have", "had", "having"}, CorrectIndex: 2, Explanation: `Use "had" for past perfect tense (action completed before another past action).`},
			{ID: 5, Question: "If it ___ tomorrow, we will stay home.", Options: []string{"rain", "rains", "rained", "raining"}, CorrectIndex: 1, Explanation: `First conditional uses present simple after "if" for a future condition.`},
		},
	},
	TopicVocabulary: {
		{
			{ID: 1, Question: `What is the opposite of "hot"?`, Options: []string{"warm", "cold", "cool", "freezing"}, CorrectIndex: 1, Explanation: `"Cold" is the direct opposite of "hot".`},
			{ID: 2, Question: `Which word means "very big"?`, Options: []string{"tiny", "small", "huge", "little"}, CorrectIndex: 2, Explanation: `"Huge" means very big or enormous.`},
			{ID: 3, Question: `What does "happy" mean?`, Options: []string{"sad", "angry", "joyful", "tired"}, CorrectIndex: 2, Explanation: `"Joyful" is a synonym of "happy".`},
			{ID: 4, Question: `Choose the correct word: "I am ___ tired."`, Options: []string{"very", "much", "many", "lot"}, CorrectIndex: 0, Explanation: `Use "very" to intensify adjectives like "tired".`},
			{ID: 5, Question: `What is a synonym for "beautiful"?`, Options: []string{"ugly", "pretty", "bad", "poor"}, CorrectIndex: 1, Explanation: `"Pretty" is a synonym of "beautiful".`},
		},
		{
			{ID: 1, Question: `What does "eloquent" mean?`, Options: []string{"silent", "fluent and persuasive", "confused", "angry"}, CorrectIndex: 1, Explanation: `"Eloquent" means fluent or persuasive in speaking or writing.`},
			{ID: 2, Question: `Choose the correct word: "The evidence was ___."`, Options: []string{"ambiguous", "clear", "obvious", "simple"}, CorrectIndex: 0, Explanation: `"Ambiguous" means open to more than one interpretation.`},
			{ID: 3, Question: `What is the meaning of "meticulous"?`, Options: []string{"careless", "very careful", "fast", "lazy"}, CorrectIndex: 1, Explanation: `"Meticulous" means showing great attention to detail.`},
			{ID: 4, Question: `What does "ubiquitous" mean?`, Options: []string{"rare", "present everywhere", "ancient", "modern"}, CorrectIndex: 1, Explanation: `"Ubiquitous" means present, appearing, or found everywhere.`},
			{ID: 5, Question: `Choose the synonym for "ephemeral":`, Options: []string{"permanent", "temporary", "eternal", "lasting"}, CorrectIndex: 1, Explanation: `"Ephemeral" means lasting for a very short time.`},
		},
	},
	TopicReading: {
		{
			{ID: 1, Passage: honeybeePassage, Question: "What is the main topic of the passage?", Options: []string{"How bees make honey", "The role of honeybees in food production", "The life cycle of a queen bee", "How to keep bees at home"}, CorrectIndex: 1, Explanation: "The passage focuses on how honeybees pollinate crops that people eat."},
			{ID: 2, Passage: honeybeePassage, Question: "According to the passage, roughly how much of the food we eat depends on pollinators?", Options: []string{"One tenth", "One third", "Half", "Almost all"}, CorrectIndex: 1, Explanation: `The passage states that about one third of the food we eat depends on pollinators.`},
			{ID: 3, Passage: honeybeePassage, Question: "What does a worker bee do when she finds a good source of nectar?", Options: []string{"She builds a new hive", "She stores the nectar alone", "She performs a dance to tell other bees", "She returns the next morning"}, CorrectIndex: 2, Explanation: "The waggle dance communicates the direction and distance of flowers."},
			{ID: 4, Passage: honeybeePassage, Question: `In the passage, the word "decline" is closest in meaning to:`, Options: []string{"decrease", "dance", "journey", "disease"}, CorrectIndex: 0, Explanation: `"Decline" means a gradual decrease in number or strength.`},
			{ID: 5, Passage: honeybeePassage, Question: "What can be inferred from the last sentence of the passage?", Options: []string{"Bees are dangerous to farmers", "Protecting bees protects our food supply", "Honey is the most important bee product", "Bees will soon disappear completely"}, CorrectIndex: 1, Explanation: "The passage links the fate of bees to the security of human food production."},
		},
	},
	TopicIdioms: {
		{
			{ID: 1, Question: `What does "break the ice" mean?`, Options: []string{"To start a conversation", "To break something", "To be cold", "To leave early"}, CorrectIndex: 0, Explanation: "Break the ice means to initiate conversation in a social setting."},
			{ID: 2, Question: `If something costs "an arm and a leg", it is:`, Options: []string{"free", "very expensive", "broken", "on sale"}, CorrectIndex: 1, Explanation: `"Cost an arm and a leg" means to be very expensive.`},
			{ID: 3, Question: `What does it mean to "hit the books"?`, Options: []string{"To fight", "To study hard", "To throw books away", "To buy new books"}, CorrectIndex: 1, Explanation: `"Hit the books" means to begin studying seriously.`},
			{ID: 4, Question: `To "let the cat out of the bag" is to:`, Options: []string{"free a pet", "reveal a secret", "make a mess", "start an argument"}, CorrectIndex: 1, Explanation: `"Let the cat out of the bag" means to reveal a secret by accident.`},
			{ID: 5, Question: `If you are "under the weather", you are:`, Options: []string{"outside in the rain", "feeling unwell", "very busy", "in a bad mood"}, CorrectIndex: 1, Explanation: `"Under the weather" means feeling slightly ill.`},
		},
	},
}

const honeybeePassage = "Honeybees are among the most important insects on Earth. As they move from flower to flower collecting nectar, they carry pollen between plants, allowing fruits, vegetables, and nuts to grow. Scientists estimate that about one third of the food we eat depends on pollinators like bees. A single hive can hold tens of thousands of bees, each with a specific job. Worker bees gather food, nurse bees care for the young, and the queen lays every egg in the colony. When a worker finds a rich source of nectar, she returns to the hive and performs a waggle dance, a figure-eight movement that tells other bees the direction and distance of the flowers. In recent decades, however, bee populations have suffered a worrying decline, driven by pesticides, disease, and the loss of wild meadows. Farmers in some regions now rent traveling hives just to pollinate their fields. Protecting honeybees is therefore not only about saving a single species; it is about safeguarding the future of our own food supply."
