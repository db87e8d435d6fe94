package ui_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/cleanmybranch/internal/ui"
)

func TestSpinnerProgressStaysSilentOffTerminal(testInstance *testing.T) {
	outputPath := filepath.Join(testInstance.TempDir(), "progress.log")
	outputFile, createError := os.Create(outputPath)
	require.NoError(testInstance, createError)
	defer outputFile.Close()

	progress := ui.NewSpinnerProgress(outputFile)
	progress.Start("Resolving Jira issues")
	progress.Stop()

	writtenContent, readError := os.ReadFile(outputPath)
	require.NoError(testInstance, readError)
	require.Empty(testInstance, writtenContent)
}
