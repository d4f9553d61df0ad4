package xam

import (
	"github.com/chazu/xenon/content"
	"github.com/chazu/xenon/kernel"
	"github.com/chazu/xenon/memory"
)

// Content types titles enumerate.
const (
	ContentTypeSavedGame   uint32 = 0x00000001
	ContentTypeMarketplace uint32 = 0x00000002
	ContentTypePublisher   uint32 = 0x00000003
	ContentTypeProfile     uint32 = 0x00010000
)

// Guest XCONTENT_DATA layout.
const (
	contentDeviceIDOffset    = 0x000
	contentTypeOffset        = 0x004
	contentDisplayNameOffset = 0x008
	contentDisplayNameChars  = 128
	contentFileNameOffset    = 0x108
	contentFileNameLen       = 42

	// ContentDataSize is the guest structure size, padded to a 4-byte
	// boundary.
	ContentDataSize uint32 = 0x134
)

// serializeContentEntry lays a catalog entry out as a guest
// XCONTENT_DATA record.
func serializeContentEntry(e content.Entry) []byte {
	buf := make(memory.HostView, ContentDataSize)
	memory.StoreUint32(buf, contentDeviceIDOffset, e.DeviceID)
	memory.StoreUint32(buf, contentTypeOffset, e.ContentType)
	memory.CopyStringUTF16(buf[contentDisplayNameOffset:], e.DisplayName, contentDisplayNameChars)
	memory.CopyString(buf[contentFileNameOffset:contentFileNameOffset+contentFileNameLen], e.FileName, contentFileNameLen)
	return buf
}

// ContentCreateEnumerator builds an enumerator over the catalog's
// packages of the given content type, registers it in the object table,
// and returns its handle plus the buffer size the title should pass to
// each Enumerate call. A deviceID of zero matches every device.
func (m *Module) ContentCreateEnumerator(deviceID, contentType, itemsPerEnumerate uint32) (handle uint32, bufferSize uint32, result kernel.XError) {
	if itemsPerEnumerate == 0 {
		return 0, 0, kernel.XErrorInvalidParameter
	}

	e := kernel.NewStaticEnumerator(ContentDataSize, itemsPerEnumerate)

	if m.catalog != nil {
		entries, err := m.catalog.List(contentType)
		if err != nil {
			log.Errorf("content catalog query failed: %v", err)
			return 0, 0, kernel.XErrorFunctionFailed
		}
		for _, ent := range entries {
			if deviceID != 0 && ent.DeviceID != deviceID {
				continue
			}
			if err := e.AppendItem(serializeContentEntry(ent)); err != nil {
				log.Errorf("content entry rejected: %v", err)
				return 0, 0, kernel.XErrorFunctionFailed
			}
		}
	}

	return m.objects.Insert(e), itemsPerEnumerate * ContentDataSize, kernel.XErrorSuccess
}
