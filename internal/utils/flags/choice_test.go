package flags_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	flagutils "github.com/niels-nijens/chrono/internal/utils/flags"
)

func TestChoiceSetUsage(testInstance *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "default_first",
			defaultChoice:  "text",
			choices:        []string{"text", "yaml"},
			description:    "Listing format.",
			expectedOutput: "`<TEXT|yaml>` Listing format.",
		},
		{
			name:           "default_last",
			defaultChoice:  "auto",
			choices:        []string{"git", "subversion", "auto"},
			description:    "Adapter used for the repository.",
			expectedOutput: "`<git|subversion|AUTO>` Adapter used for the repository.",
		},
		{
			name:           "empty_description",
			defaultChoice:  "git",
			choices:        []string{"git", "subversion"},
			expectedOutput: "`<GIT|subversion>`",
		},
		{
			name:           "duplicates_and_blanks_dropped",
			defaultChoice:  " YAML ",
			choices:        []string{"yaml", "", "Yaml", " text "},
			description:    "Listing format.",
			expectedOutput: "`<YAML|text>` Listing format.",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			choiceSet := flagutils.NewChoiceSet(testCase.defaultChoice, testCase.choices...)
			require.Equal(testInstance, testCase.expectedOutput, choiceSet.Usage(testCase.description))
		})
	}
}

func TestChoiceSetResolve(testInstance *testing.T) {
	choiceSet := flagutils.NewChoiceSet("auto", "auto", "git", "subversion")

	testCases := []struct {
		name           string
		value          string
		expectedChoice string
		expectedFound  bool
	}{
		{name: "exact", value: "git", expectedChoice: "git", expectedFound: true},
		{name: "mixed_case_padded", value: " Subversion ", expectedChoice: "subversion", expectedFound: true},
		{name: "empty_selects_default", value: "", expectedChoice: "auto", expectedFound: true},
		{name: "unknown", value: "mercurial"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			choice, found := choiceSet.Resolve(testCase.value)
			require.Equal(testInstance, testCase.expectedFound, found)
			require.Equal(testInstance, testCase.expectedChoice, choice)
		})
	}

	require.Equal(testInstance, []string{"auto", "git", "subversion"}, choiceSet.Choices())
}
