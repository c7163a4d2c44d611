package domain

import "time"

// Unit is one thematic course topic used to categorize questions.
type Unit string

const (
	UnitIntroduction Unit = "Introduction to Personality"
	UnitFreud        Unit = "Psychoanalysis (Freud)"
	UnitModernPsycho Unit = "Modern Psychoanalysis"
	UnitBehaviorism  Unit = "Behaviorism"
	UnitCognitive    Unit = "Cognitive Theory"
	UnitHumanism     Unit = "Humanistic Theory"
	UnitTraits       Unit = "Trait Theory"
	UnitIntegration  Unit = "Comparison and Integration"

	// UnitAll is the sentinel filter value that matches every question.
	UnitAll Unit = "all"
)

// Units lists every course unit in sidebar order.
func Units() []Unit {
	return []Unit{
		UnitIntroduction,
		UnitFreud,
		UnitModernPsycho,
		UnitBehaviorism,
		UnitCognitive,
		UnitHumanism,
		UnitTraits,
		UnitIntegration,
	}
}

// Category groups several units into a coarser bucket for analytics and navigation.
type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
	Units []Unit `json:"units"`
}

// Categories is the static grouping of units into four thematic buckets.
var Categories = []Category{
	{ID: "foundations", Title: "Foundations", Color: "indigo", Units: []Unit{UnitIntroduction}},
	{ID: "psychodynamic", Title: "Psychodynamic Theories", Color: "rose", Units: []Unit{UnitFreud, UnitModernPsycho}},
	{ID: "learning-cognition", Title: "Learning and Cognition", Color: "amber", Units: []Unit{UnitBehaviorism, UnitCognitive}},
	{ID: "person-integration", Title: "Person and Integration", Color: "emerald", Units: []Unit{UnitHumanism, UnitTraits, UnitIntegration}},
}

// CategoryOf resolves the category a unit belongs to. Unknown units land in the
// last bucket so a custom unit never breaks the breakdown.
func CategoryOf(unit Unit) Category {
	for _, c := range Categories {
		for _, u := range c.Units {
			if u == unit {
				return c
			}
		}
	}
	return Categories[len(Categories)-1]
}

// OptionKey labels one of the four answer options.
type OptionKey string

const (
	OptionA OptionKey = "a"
	OptionB OptionKey = "b"
	OptionC OptionKey = "c"
	OptionD OptionKey = "d"
)

// OptionKeys lists the four option labels in display order.
func OptionKeys() []OptionKey {
	return []OptionKey{OptionA, OptionB, OptionC, OptionD}
}

// Question is an immutable bank record: a behavioral scenario, the question built
// on it, four labeled options, and the model answer with its explanation.
type Question struct {
	ID            int64                `json:"id"`
	Unit          Unit                 `json:"unit"`
	Scenario      string               `json:"scenario"`
	Text          string               `json:"questionText"`
	Options       map[OptionKey]string `json:"options"`
	CorrectAnswer OptionKey            `json:"correctAnswer"`
	Explanation   string               `json:"explanation"`
}

// Public returns a copy safe to show while the question is still being answered:
// the correct answer and explanation are stripped.
func (q Question) Public() Question {
	pub := q
	pub.CorrectAnswer = ""
	pub.Explanation = ""
	return pub
}

// LeaderboardEntry is one persisted challenge result.
type LeaderboardEntry struct {
	Username       string    `json:"username"`
	Score          int       `json:"score"`
	Date           time.Time `json:"date"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
}

// ToastKind classifies a notification for client styling.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastInfo    ToastKind = "info"
	ToastError   ToastKind = "error"
	ToastDelete  ToastKind = "delete"
)

// Toast is a transient, auto-dismissing user notification.
type Toast struct {
	ID      int64     `json:"id"`
	Message string    `json:"message"`
	Kind    ToastKind `json:"kind"`
}
