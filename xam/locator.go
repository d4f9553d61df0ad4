package xam

import (
	"fmt"

	"github.com/chazu/xenon/kernel"
	"github.com/chazu/xenon/memory"
)

// buildResourceLocator writes a resource locator string into the guest
// buffer of count wide characters. Module 0 resolves to a local file
// locator (the console resolved it against its own resource archives; a
// local .xzp next to the media works the same way). The copy truncates at
// the declared capacity and terminates only if room remains.
func (m *Module) buildResourceLocator(module uint64, container, resource string, buffer memory.GuestAddress, count uint32) kernel.XError {
	var path string
	if module == 0 {
		path = fmt.Sprintf("file://media:/%s.xzp#%s", container, resource)
		log.Debugf("resource locator resolves to local file %s.xzp", container)
	} else {
		path = fmt.Sprintf("section://%X,%s#%s", uint32(module), container, resource)
	}

	if count > ^uint32(0)/2 {
		return kernel.XErrorInvalidParameter
	}
	view, err := m.mem.TranslateRange(buffer, count*2)
	if err != nil {
		return kernel.XErrorInvalidParameter
	}
	memory.CopyStringUTF16(view, path, count)
	return kernel.XErrorSuccess
}

// BuildResourceLocator services XamBuildResourceLocator.
func (m *Module) BuildResourceLocator(module uint64, container, resource string, buffer memory.GuestAddress, count uint32) kernel.XError {
	return m.buildResourceLocator(module, container, resource, buffer, count)
}

// BuildGamercardResourceLocator resolves gamercard art resources.
func (m *Module) BuildGamercardResourceLocator(filename string, buffer memory.GuestAddress, count uint32) kernel.XError {
	return m.buildResourceLocator(0, "gamercrd", filename, buffer, count)
}

// BuildSharedSystemResourceLocator resolves shared dashboard resources.
func (m *Module) BuildSharedSystemResourceLocator(filename string, buffer memory.GuestAddress, count uint32) kernel.XError {
	return m.buildResourceLocator(0, "shrdres", filename, buffer, count)
}

// BuildLegacySystemResourceLocator is the pre-NXE name for the shared
// system locator.
func (m *Module) BuildLegacySystemResourceLocator(filename string, buffer memory.GuestAddress, count uint32) kernel.XError {
	return m.BuildSharedSystemResourceLocator(filename, buffer, count)
}

// BuildXamResourceLocator resolves resources out of the system module
// itself.
func (m *Module) BuildXamResourceLocator(filename string, buffer memory.GuestAddress, count uint32) kernel.XError {
	return m.buildResourceLocator(0, "xam", filename, buffer, count)
}
