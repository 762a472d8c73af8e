// Package notify delivers notifications to the user's desktop.
package notify

import (
	"fmt"
	"os/exec"
)

// defaultExpireMs keeps desktop notifications transient: they mirror
// tray entries that the user can still dismiss in the dashboard.
const defaultExpireMs = 5000

// DesktopNotifier sends desktop notifications via notify-send.
type DesktopNotifier struct {
	appName  string
	expireMs int
}

// NewDesktopNotifier creates a new desktop notifier.
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{
		appName:  "Lucent",
		expireMs: defaultExpireMs,
	}
}

// Available checks if notify-send is available.
func (n *DesktopNotifier) Available() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

// Send delivers a transient desktop notification that expires on its
// own. It satisfies the action layer's Notifier interface, which has no
// use for errors; a missing notify-send is silently skipped.
func (n *DesktopNotifier) Send(title, body string) {
	if !n.Available() {
		return
	}
	_ = exec.Command("notify-send", n.args(title, body)...).Run()
}

// args builds the notify-send invocation.
func (n *DesktopNotifier) args(title, body string) []string {
	return []string{
		"--app-name=" + n.appName,
		"--urgency=normal",
		"--icon=dialog-information",
		fmt.Sprintf("--expire-time=%d", n.expireMs),
		title,
		body,
	}
}
