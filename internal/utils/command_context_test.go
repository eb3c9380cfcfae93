package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/niels-nijens/chrono/internal/utils"
)

func TestCommandContextAccessor(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		loadedConfiguration   *utils.LoadedConfiguration
		expectedAvailable     bool
		expectedFilePath      string
		expectedFileAvailable bool
	}{
		{
			name:                  "configuration_file_found",
			loadedConfiguration:   &utils.LoadedConfiguration{ConfigFileUsed: "/etc/chrono/config.yaml", EnvironmentFilesUsed: []string{".env"}},
			expectedAvailable:     true,
			expectedFilePath:      "/etc/chrono/config.yaml",
			expectedFileAvailable: true,
		},
		{
			name:                "defaults_only",
			loadedConfiguration: &utils.LoadedConfiguration{},
			expectedAvailable:   true,
		},
		{
			name: "nothing_attached",
		},
	}

	accessor := utils.NewCommandContextAccessor()
	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executionContext := context.Background()
			if testCase.loadedConfiguration != nil {
				executionContext = accessor.WithLoadedConfiguration(executionContext, *testCase.loadedConfiguration)
			}

			loadedConfiguration, available := accessor.LoadedConfiguration(executionContext)
			require.Equal(testInstance, testCase.expectedAvailable, available)
			if testCase.loadedConfiguration != nil {
				require.Equal(testInstance, *testCase.loadedConfiguration, loadedConfiguration)
			}

			filePath, fileAvailable := accessor.ConfigurationFilePath(executionContext)
			require.Equal(testInstance, testCase.expectedFileAvailable, fileAvailable)
			require.Equal(testInstance, testCase.expectedFilePath, filePath)
		})
	}
}
