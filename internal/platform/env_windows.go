//go:build windows

package platform

import (
	"sort"
	"strings"
	"syscall"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows/registry"
)

// registryEnvWriter persists variables under HKCU\Environment, the user-scoped
// store picked up by new processes after a settings-change broadcast.
type registryEnvWriter struct{}

func newEnvWriter() EnvWriter {
	return &registryEnvWriter{}
}

func (w *registryEnvWriter) Apply(snapshot EnvSnapshot) (EnvResult, error) {
	var result EnvResult

	key, err := registry.OpenKey(registry.CURRENT_USER, "Environment",
		registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return result, errors.Wrap(err, "failed to open HKCU\\Environment")
	}
	defer key.Close()

	names := make([]string, 0, len(snapshot.Vars))
	for name := range snapshot.Vars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := key.SetStringValue(name, snapshot.Vars[name]); err != nil {
			return result, errors.Wrapf(err, "failed to set %s", name)
		}
		result.applied(name)
	}

	if len(snapshot.PathEntries) > 0 {
		if err := w.extendPath(key, snapshot.PathEntries, &result); err != nil {
			return result, err
		}
	}

	if len(result.Applied) > 0 {
		broadcastSettingChange()
	}

	return result, nil
}

// extendPath appends missing entries to the user Path value. Comparison is
// case-insensitive; existing entries are never reordered.
func (w *registryEnvWriter) extendPath(key registry.Key, entries []string, result *EnvResult) error {
	current, _, err := key.GetStringValue("Path")
	if err != nil && err != registry.ErrNotExist {
		return errors.Wrap(err, "failed to read user Path")
	}

	existing := strings.Split(current, ";")
	updated := current
	changed := false
	for _, entry := range entries {
		if containsFold(existing, entry) {
			result.skipped(entry, "already on PATH")
			continue
		}
		if updated == "" {
			updated = entry
		} else {
			updated = updated + ";" + entry
		}
		result.applied(entry)
		changed = true
	}

	if !changed {
		return nil
	}
	if err := key.SetExpandStringValue("Path", updated); err != nil {
		return errors.Wrap(err, "failed to update user Path")
	}
	return nil
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(strings.TrimSpace(s), needle) {
			return true
		}
	}
	return false
}

// broadcastSettingChange tells running applications that the environment
// block changed. Best effort; a timeout is not an error.
func broadcastSettingChange() {
	const (
		hwndBroadcast   = 0xFFFF
		wmSettingChange = 0x001A
		smtoAbortIfHung = 0x0002
	)

	user32 := syscall.NewLazyDLL("user32.dll")
	sendMessageTimeout := user32.NewProc("SendMessageTimeoutW")

	param, err := syscall.UTF16PtrFromString("Environment")
	if err != nil {
		return
	}
	timeout := uintptr((5 * time.Second).Milliseconds())
	sendMessageTimeout.Call(hwndBroadcast, wmSettingChange, 0,
		uintptr(unsafe.Pointer(param)), smtoAbortIfHung, timeout, 0)
}
