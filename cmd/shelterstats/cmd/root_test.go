package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecute(t *testing.T) {
	// Execute() calls os.Exit(1) on error, so only its presence is checked.
	assert.NotNil(t, Execute)
}

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, Commit, "Commit should not be empty")
}

func TestCLIFlagDefaults(t *testing.T) {
	assert.Equal(t, "shelterstats.yaml", rootCmd.PersistentFlags().Lookup("config").DefValue)
	for _, name := range []string{"log-level", "log-format", "output-dir", "input"} {
		flag := rootCmd.PersistentFlags().Lookup(name)
		if assert.NotNil(t, flag, name) {
			assert.Equal(t, "", flag.DefValue, name)
		}
	}
}

func TestGetConfigFile(t *testing.T) {
	originalCfgFile := cfgFile
	defer func() {
		cfgFile = originalCfgFile
	}()

	tests := []struct {
		name     string
		cfgValue string
		want     string
	}{
		{name: "empty", cfgValue: "", want: ""},
		{name: "custom config file", cfgValue: "/path/to/custom.yaml", want: "/path/to/custom.yaml"},
		{name: "config file with spaces", cfgValue: "/path/to/my config.yaml", want: "/path/to/my config.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgFile = tt.cfgValue
			assert.Equal(t, tt.want, GetConfigFile())
		})
	}
}

func TestGetCLIOverrides(t *testing.T) {
	originalLogLevel := logLevel
	originalLogFormat := logFormat
	originalOutputDir := outputDir
	originalInput := inputFile
	defer func() {
		logLevel = originalLogLevel
		logFormat = originalLogFormat
		outputDir = originalOutputDir
		inputFile = originalInput
	}()

	logLevel = "debug"
	logFormat = "json"
	outputDir = "/tmp/charts"
	inputFile = "animals.csv"

	assert.Equal(t, CLIOverrides{
		LogLevel:  "debug",
		LogFormat: "json",
		OutputDir: "/tmp/charts",
		Input:     "animals.csv",
	}, GetCLIOverrides())
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"all", "breeds", "species", "summary", "validate", "version"}
	got := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		got[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, got[name], "%s command should be added to root command", name)
	}
}

func TestReportCommandStructure(t *testing.T) {
	assert.Equal(t, "breeds", breedsCmd.Use)
	assert.NotNil(t, breedsCmd.RunE)
	assert.NotNil(t, breedsCmd.Flags().Lookup("name"))

	assert.Equal(t, "species", speciesCmd.Use)
	assert.NotNil(t, speciesCmd.RunE)
	assert.NotNil(t, speciesCmd.Flags().Lookup("name"))

	assert.Equal(t, "all", allCmd.Use)
	assert.Equal(t, "summary", summaryCmd.Use)
	assert.Equal(t, "validate", validateCmd.Use)
	assert.NotNil(t, validateCmd.Flags().Lookup("source"))
}
