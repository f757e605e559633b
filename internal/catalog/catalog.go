// Package catalog holds the built-in question set and resolves question ids
// against it and the user's custom questions.
package catalog

import (
	"github.com/julianstephens/daycheck/internal/constants"
	"github.com/julianstephens/daycheck/internal/models"
)

func yesno(id, text, category, emoji string) models.Question {
	return models.Question{ID: id, Text: text, Type: constants.QuestionYesNo, Category: category, Emoji: emoji}
}

func scale(id, text, category, emoji string) models.Question {
	return models.Question{
		ID:       id,
		Text:     text,
		Type:     constants.QuestionScale,
		Category: category,
		Emoji:    emoji,
		ScaleMin: constants.DefaultScaleMin,
		ScaleMax: constants.DefaultScaleMax,
	}
}

func freetext(id, text, category, emoji string) models.Question {
	return models.Question{ID: id, Text: text, Type: constants.QuestionFreeText, Category: category, Emoji: emoji}
}

var predefined = []models.Question{
	// Health
	yesno("pre-1", "Did you drink enough water today?", "Health", "💧"),
	scale("pre-2", "How many hours did you sleep?", "Health", "😴"),
	scale("pre-3", "How well did you sleep?", "Health", "🛏️"),
	yesno("pre-4", "Did you take your medication/vitamins?", "Health", "💊"),
	scale("pre-5", "How do you feel physically?", "Health", "💪"),

	// Fitness
	yesno("pre-6", "Did you exercise today?", "Fitness", "🏃"),
	scale("pre-7", "How intense was your workout?", "Fitness", "🔥"),
	yesno("pre-8", "Did you move enough today?", "Fitness", "🚶"),
	scale("pre-9", "How many steps did you walk (estimate 1-10)?", "Fitness", "👟"),
	yesno("pre-10", "Did you stretch or do yoga?", "Fitness", "🧘"),

	// Nutrition
	yesno("pre-11", "Did you eat healthy today?", "Nutrition", "🥗"),
	scale("pre-12", "How satisfied are you with your diet today?", "Nutrition", "🍽️"),
	yesno("pre-13", "Did you eat fruit or vegetables?", "Nutrition", "🍎"),
	yesno("pre-14", "Did you skip sugar?", "Nutrition", "🚫"),
	freetext("pre-15", "What did you eat that was special today?", "Nutrition", "🍕"),

	// Mental Health
	scale("pre-16", "How is your mood?", "Mental Health", "😊"),
	yesno("pre-17", "Did you meditate today?", "Mental Health", "🧘"),
	scale("pre-18", "How stressed do you feel?", "Mental Health", "😰"),
	freetext("pre-19", "What are you grateful for today?", "Mental Health", "🙏"),
	yesno("pre-20", "Did you take a break today?", "Mental Health", "☕"),
	scale("pre-21", "How was your energy today?", "Mental Health", "⚡"),

	// Productivity
	yesno("pre-22", "Did you finish your most important task?", "Productivity", "✅"),
	scale("pre-23", "How productive were you today?", "Productivity", "💼"),
	yesno("pre-24", "Did you procrastinate today?", "Productivity", "😬"),
	freetext("pre-25", "What was your biggest win today?", "Productivity", "🏆"),
	scale("pre-26", "How focused were you?", "Productivity", "🎯"),

	// Social
	yesno("pre-27", "Did you meet someone today?", "Social", "👥"),
	scale("pre-28", "How satisfied are you with your social contacts?", "Social", "💬"),
	yesno("pre-29", "Did you help someone?", "Social", "🤝"),
	yesno("pre-30", "Did you spend time with family?", "Social", "👨‍👩‍👧‍👦"),

	// Learning
	yesno("pre-31", "Did you learn something new today?", "Learning", "💡"),
	yesno("pre-32", "Did you read today?", "Learning", "📖"),
	scale("pre-33", "How much did you learn today?", "Learning", "📚"),
	freetext("pre-34", "What did you learn today?", "Learning", "✏️"),

	// Creativity
	yesno("pre-35", "Did you do something creative today?", "Creativity", "🎨"),
	scale("pre-36", "How creative do you feel today?", "Creativity", "✨"),
	freetext("pre-37", "Which creative project is on your mind?", "Creativity", "🖌️"),

	// Finances
	yesno("pre-38", "Did you spend money unnecessarily today?", "Finances", "💸"),
	scale("pre-39", "How satisfied are you with your spending?", "Finances", "💰"),
	freetext("pre-40", "What did you spend money on today?", "Finances", "🧾"),

	// Self-care
	yesno("pre-41", "Did you do something nice for yourself today?", "Self-care", "🌸"),
	scale("pre-42", "How satisfied are you with yourself?", "Self-care", "💖"),
	yesno("pre-43", "Did you get some fresh air today?", "Self-care", "🌿"),
	yesno("pre-44", "Did you cut down on screen time today?", "Self-care", "📵"),
	freetext("pre-45", "What made you happy today?", "Self-care", "😄"),
	freetext("pre-46", "What do you want to achieve tomorrow?", "Productivity", "🚀"),
	scale("pre-47", "How was your day overall?", "Mental Health", "📝"),
}

var predefinedIndex = func() map[string]int {
	idx := make(map[string]int, len(predefined))
	for i, q := range predefined {
		idx[q.ID] = i
	}
	return idx
}()

// Predefined returns a copy of the built-in questions in catalog order
func Predefined() []models.Question {
	out := make([]models.Question, len(predefined))
	copy(out, predefined)
	return out
}

// Lookup returns a built-in question by id
func Lookup(id string) (models.Question, bool) {
	i, ok := predefinedIndex[id]
	if !ok {
		return models.Question{}, false
	}
	return predefined[i], true
}

// ByCategory groups the built-in questions by category, in category order
func ByCategory() map[string][]models.Question {
	groups := make(map[string][]models.Question, len(constants.Categories))
	for _, q := range predefined {
		groups[q.Category] = append(groups[q.Category], q)
	}
	return groups
}

// Catalog resolves question ids against the built-in set and a snapshot of the
// user's custom questions.
type Catalog struct {
	custom map[string]models.Question
	order  []string
}

// New builds a Catalog over the given custom questions. Custom questions that
// reuse a built-in id, and later duplicates of an id, are ignored.
func New(custom []models.Question) *Catalog {
	c := &Catalog{custom: make(map[string]models.Question, len(custom))}
	for _, q := range custom {
		if _, builtin := predefinedIndex[q.ID]; builtin {
			continue
		}
		if _, dup := c.custom[q.ID]; dup {
			continue
		}
		c.custom[q.ID] = q
		c.order = append(c.order, q.ID)
	}
	return c
}

// Resolve returns the definition for id, checking built-in questions first.
func (c *Catalog) Resolve(id string) (models.Question, bool) {
	if q, ok := Lookup(id); ok {
		return q, true
	}
	if c == nil {
		return models.Question{}, false
	}
	q, ok := c.custom[id]
	return q, ok
}

// All returns built-in questions followed by custom questions
func (c *Catalog) All() []models.Question {
	all := Predefined()
	if c == nil {
		return all
	}
	for _, id := range c.order {
		all = append(all, c.custom[id])
	}
	return all
}
