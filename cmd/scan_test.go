package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"realias.dev/pkg/realias/internal/domain"
	m "realias.dev/pkg/realias/internal/model"
)

func TestScanCmd_DryRun(t *testing.T) {
	withCodec(t)
	mockWorkflow := withMockWorkflow(t)

	cmd := newTestRootCmd()
	cmd.AddCommand(newScanCmd())

	mockWorkflow.On("Scan", mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.Root == m.Path("/Volumes/Media") &&
			args.Search == "/Volumes/Old" &&
			args.Replace == "/Volumes/New" &&
			args.ResolveTimeout == 30*time.Second
	})).Return(nil)

	cmd.SetArgs([]string{"scan", "/Volumes/Media", "/Volumes/Old", "/Volumes/New"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestScanCmd_PackagesFlag(t *testing.T) {
	withCodec(t)
	mockWorkflow := withMockWorkflow(t)

	cmd := newTestRootCmd()
	cmd.AddCommand(newScanCmd())

	mockWorkflow.On("Scan", mock.Anything, mock.MatchedBy(func(args domain.ScanArgs) bool {
		return args.IncludePackages
	})).Return(nil)

	cmd.SetArgs([]string{"-p", "scan", "/tree", "/old", "/new"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestScanCmd_RequiresThreeArgs(t *testing.T) {
	withCodec(t)

	cmd := newTestRootCmd()
	cmd.AddCommand(newScanCmd())

	cmd.SetArgs([]string{"scan"})
	err := cmd.Execute()
	require.Error(t, err)
}

func TestNewScanCmd(t *testing.T) {
	cmd := newScanCmd()

	assert.Equal(t, "scan ROOT SEARCH REPLACE", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}
