package game

import "strings"

// CustomOption is the escape-hatch key present in every flashback selector;
// choosing it swaps the dropdown for free text.
const CustomOption = "custom"

// CharacterPlaceholder is substituted in question phrases with the chosen
// character's display name.
const CharacterPlaceholder = "[character]"

// FlashbackContextKeys is the fixed ordering of the context option set.
var FlashbackContextKeys = []string{"training", "heist", "loss", "debt", "romance", "betrayal"}

// FlashbackContexts are the selectable framing phrases for a flashback scene.
var FlashbackContexts = map[string]string{
	"training": "Back in training, before the war changed everything",
	"heist":    "During a job that went sideways",
	"loss":     "The night we lost someone who mattered",
	"debt":     "When a favor was owed and called in",
	"romance":  "A stolen moment that should have stayed secret",
	"betrayal": "The moment the knife went in our backs",
}

// FlashbackQuestionKeys is the fixed ordering of the question option set.
var FlashbackQuestionKeys = []string{"promise", "warning", "secret", "lesson", "gift", "dare"}

// FlashbackQuestions are the selectable prompts. Each contains the
// [character] placeholder resolved against the chosen character.
var FlashbackQuestions = map[string]string{
	"promise": "What did you promise [character] you would never do again?",
	"warning": "What did [character] warn you about that you ignored?",
	"secret":  "What secret does [character] keep for you?",
	"lesson":  "What did [character] teach you the hard way?",
	"gift":    "What did [character] give you that you still carry?",
	"dare":    "What did [character] dare you to do?",
}

// FlashbackChoice is the fully resolved outcome of the flashback prompt.
// It is never persisted on its own; it only ends up embedded in the new
// roll record's flavor text.
type FlashbackChoice struct {
	Context       string
	Question      string
	CharacterName string
	Description   string
}

// ResolveQuestion substitutes the character placeholder into a question
// phrase. Safe to call on custom questions that lack the placeholder.
func ResolveQuestion(question, characterName string) string {
	return strings.ReplaceAll(question, CharacterPlaceholder, characterName)
}
