package flags

import (
	"fmt"
	"strings"
)

const (
	choicePlaceholderTemplate = "<%s>"
	choiceSeparatorLiteral    = "|"
	choiceUsageEmptyTemplate  = "`%s`"
	choiceUsageFullTemplate   = "`%s` %s"
)

// ChoiceSet is an ordered, case-insensitive set of accepted flag values with one default.
type ChoiceSet struct {
	defaultChoice string
	choices       []string
}

// NewChoiceSet builds a ChoiceSet. Blank and duplicate choices are dropped.
func NewChoiceSet(defaultChoice string, choices ...string) ChoiceSet {
	normalizedChoices := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		normalizedChoice := normalizeChoice(choice)
		if len(normalizedChoice) == 0 {
			continue
		}
		if _, duplicate := seen[normalizedChoice]; duplicate {
			continue
		}
		seen[normalizedChoice] = struct{}{}
		normalizedChoices = append(normalizedChoices, normalizedChoice)
	}
	return ChoiceSet{defaultChoice: normalizeChoice(defaultChoice), choices: normalizedChoices}
}

// Choices returns the accepted values in registration order.
func (choiceSet ChoiceSet) Choices() []string {
	return append([]string(nil), choiceSet.choices...)
}

// Resolve maps value onto an accepted choice. An empty value selects the default.
func (choiceSet ChoiceSet) Resolve(value string) (string, bool) {
	normalizedValue := normalizeChoice(value)
	if len(normalizedValue) == 0 {
		normalizedValue = choiceSet.defaultChoice
	}
	for _, choice := range choiceSet.choices {
		if choice == normalizedValue {
			return choice, true
		}
	}
	return "", false
}

// Usage renders a flag usage string such as "`<TEXT|yaml>` Listing format." with the default upper-cased.
func (choiceSet ChoiceSet) Usage(description string) string {
	displayedChoices := make([]string, 0, len(choiceSet.choices))
	for _, choice := range choiceSet.choices {
		if choice == choiceSet.defaultChoice {
			choice = strings.ToUpper(choice)
		}
		displayedChoices = append(displayedChoices, choice)
	}

	placeholder := fmt.Sprintf(choicePlaceholderTemplate, strings.Join(displayedChoices, choiceSeparatorLiteral))
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, trimmedDescription)
}

func normalizeChoice(choice string) string {
	return strings.ToLower(strings.TrimSpace(choice))
}
