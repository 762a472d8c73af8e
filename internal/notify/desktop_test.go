package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsBuildTransientNotification(t *testing.T) {
	n := NewDesktopNotifier()
	args := n.args("Lucent", "Settings saved")

	require.Len(t, args, 6)
	assert.Equal(t, "--app-name=Lucent", args[0])
	assert.Equal(t, "--urgency=normal", args[1])
	assert.Equal(t, "--icon=dialog-information", args[2])
	assert.Equal(t, "--expire-time=5000", args[3], "notifications must expire rather than pile up")
	assert.Equal(t, "Lucent", args[4])
	assert.Equal(t, "Settings saved", args[5])
}

func TestCustomExpiry(t *testing.T) {
	n := &DesktopNotifier{appName: "Lucent", expireMs: 250}
	assert.Contains(t, n.args("t", "b"), "--expire-time=250")
}
