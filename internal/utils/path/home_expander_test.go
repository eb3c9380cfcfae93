package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/niels-nijens/chrono/internal/utils/path"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name         string
		candidate    string
		expectedPath string
	}{
		{name: "bare_tilde", candidate: "~", expectedPath: testHomeDirectoryConstant},
		{name: "tilde_slash", candidate: "~/src/chrono", expectedPath: filepath.Join(testHomeDirectoryConstant, "src", "chrono")},
		{name: "other_user_untouched", candidate: "~alice/src", expectedPath: "~alice/src"},
		{name: "absolute_untouched", candidate: "/srv/app", expectedPath: "/srv/app"},
		{name: "empty_untouched", candidate: "", expectedPath: ""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedPath, fixedHomeExpander().Expand(testCase.candidate))
		})
	}
}

func TestHomeExpanderLookupFailureLeavesPath(testInstance *testing.T) {
	lookupCalls := 0
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		lookupCalls++
		return "", errors.New("no home")
	})

	require.Equal(testInstance, "~/src", expander.Expand("~/src"))
	require.Equal(testInstance, "~", expander.Expand("~"))
	require.Equal(testInstance, 1, lookupCalls)

	var nilExpander *pathutils.HomeExpander
	require.Equal(testInstance, "~/src", nilExpander.Expand("~/src"))
}
