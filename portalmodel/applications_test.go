package portalmodel_test

import (
	"testing"

	"github.com/jrsteele09/go-student-jobs/portalmodel"
	"github.com/stretchr/testify/require"
)

func TestApplicationStatus_Valid(t *testing.T) {
	for _, s := range portalmodel.ApplicationStatuses {
		require.True(t, s.Valid(), s)
	}
	require.False(t, portalmodel.ApplicationStatus("ghosted").Valid())
	require.False(t, portalmodel.ApplicationStatus("").Valid())
	require.False(t, portalmodel.ApplicationStatus("Applied").Valid())
}
