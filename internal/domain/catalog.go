package domain

// Fixed selection catalogs. The onboarding screens render these verbatim, so
// any change here is a client-visible contract change.

var Genders = []string{"woman", "man", "nonbinary"}

var LookingForOptions = []string{
	"long-term",
	"short-term",
	"casual",
	"new-friends",
	"still-figuring-it-out",
}

// LookingFor allows between 1 and 3 selections.
const (
	MinLookingFor = 1
	MaxLookingFor = 3
)

var InterestedInOptions = []string{"women", "men", "nonbinary"}

var PromptCatalog = []string{
	"A perfect first date looks like",
	"Two truths and a lie",
	"My simple pleasures",
	"I geek out on",
	"The way to win me over is",
	"A life goal of mine",
	"I'm weirdly attracted to",
	"Best travel story",
	"My most controversial opinion is",
	"Together we could",
}

// Prompts allows between 1 and 3 entries, each with a distinct question.
const (
	MinPrompts = 1
	MaxPrompts = 3
)

// Height bounds in centimeters.
const (
	MinHeightCm = 90
	MaxHeightCm = 250
)

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func IsValidGender(v string) bool         { return contains(Genders, v) }
func IsValidLookingFor(v string) bool     { return contains(LookingForOptions, v) }
func IsValidInterestedIn(v string) bool   { return contains(InterestedInOptions, v) }
func IsValidPromptQuestion(v string) bool { return contains(PromptCatalog, v) }
