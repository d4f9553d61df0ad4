package xam

import (
	"github.com/chazu/xenon/kernel"
	"github.com/chazu/xenon/memory"
)

// defaultLaunchPath is what a title gets when it launches "" to restart
// itself.
const defaultLaunchPath = "game:\\default.xex"

// LoaderData is the state one title hands to the next across a title
// switch. The embedding emulator clears it when the switch completes.
type LoaderData struct {
	LaunchData        []byte
	LaunchDataPresent bool
	LaunchPath        string
	LaunchFlags       uint32
}

// LoaderSetLaunchData stores the blob delivered to the next launched
// title. An empty blob leaves launch data marked absent.
func (m *Module) LoaderSetLaunchData(data []byte) kernel.XError {
	m.loaderMu.Lock()
	defer m.loaderMu.Unlock()

	m.loader.LaunchDataPresent = len(data) != 0
	m.loader.LaunchData = append([]byte(nil), data...)
	return kernel.XErrorSuccess
}

// LoaderGetLaunchDataSize writes the stored blob size through sizeOut.
// With no launch data present the size is zero and the call reports
// NOT_FOUND.
func (m *Module) LoaderGetLaunchDataSize(sizeOut memory.GuestAddress) kernel.XError {
	view, err := m.mem.TranslateRange(sizeOut, 4)
	if err != nil {
		return kernel.XErrorInvalidParameter
	}

	m.loaderMu.Lock()
	defer m.loaderMu.Unlock()

	if !m.loader.LaunchDataPresent {
		memory.StoreUint32(view, 0, 0)
		return kernel.XErrorNotFound
	}
	memory.StoreUint32(view, 0, uint32(len(m.loader.LaunchData)))
	return kernel.XErrorSuccess
}

// LoaderGetLaunchData copies up to bufferSize bytes of the stored blob
// into the guest buffer, truncating silently.
func (m *Module) LoaderGetLaunchData(buffer memory.GuestAddress, bufferSize uint32) kernel.XError {
	m.loaderMu.Lock()
	defer m.loaderMu.Unlock()

	if !m.loader.LaunchDataPresent {
		return kernel.XErrorNotFound
	}

	copySize := uint32(len(m.loader.LaunchData))
	if bufferSize < copySize {
		copySize = bufferSize
	}
	view, err := m.mem.TranslateRange(buffer, copySize)
	if err != nil {
		return kernel.XErrorInvalidParameter
	}
	memory.CopyBytes(view, m.loader.LaunchData, copySize)
	return kernel.XErrorSuccess
}

// LoaderLaunchTitle records the launch target and flags, then hands
// control to the emulator's termination hook. The dispatcher arranges
// for the guest call to never return.
func (m *Module) LoaderLaunchTitle(path string, flags uint32) {
	if path == "" {
		path = defaultLaunchPath
	}
	m.loaderMu.Lock()
	m.loader.LaunchFlags = flags
	m.loader.LaunchPath = path
	m.loaderMu.Unlock()

	log.Infof("title requested launch of %s (flags=%#x)", path, flags)
	m.terminateTitle()
}

// LoaderTerminateTitle hands control to the emulator's termination hook.
// The dispatcher arranges for the guest call to never return.
func (m *Module) LoaderTerminateTitle() {
	m.terminateTitle()
}

func (m *Module) terminateTitle() {
	if m.onTerminate != nil {
		m.onTerminate()
	}
}

// LoaderData returns a snapshot of the current loader state.
func (m *Module) LoaderData() LoaderData {
	m.loaderMu.Lock()
	defer m.loaderMu.Unlock()

	snap := m.loader
	snap.LaunchData = append([]byte(nil), m.loader.LaunchData...)
	return snap
}

// ClearLoaderData resets launch state after a completed title switch.
func (m *Module) ClearLoaderData() {
	m.loaderMu.Lock()
	defer m.loaderMu.Unlock()
	m.loader = LoaderData{}
}
