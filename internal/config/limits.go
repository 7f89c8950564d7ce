package config

const (
	// CreationCost is the credit price of generating a new project's first
	// document.
	CreationCost = 5

	// RevisionCost is the credit price of one accepted revision.
	RevisionCost = 3

	// StarterCredits is the balance a user row is created with.
	StarterCredits = 15

	// MaxProjectNameLength bounds the display name derived from the initial
	// prompt. Longer prompts are truncated with an ellipsis.
	MaxProjectNameLength = 50

	// MaxPromptLength bounds user prompts. Anything longer is rejected before
	// any gateway call.
	MaxPromptLength = 4000

	// MaxDocumentBytes bounds documents accepted by the unversioned save
	// endpoint. Generated documents are whole single pages; 2MB is generous.
	MaxDocumentBytes = 2 << 20
)

// CreditPacks maps purchasable pack names to granted credits.
var CreditPacks = map[string]int{
	"starter":    100,
	"pro":        250,
	"enterprise": 1000,
}
