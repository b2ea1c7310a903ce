package cv

import (
	"runtime"

	"github.com/murkland/corevideo/cf"
)

// AttachmentMode says whether an attachment is copied to buffers derived
// from this one.
type AttachmentMode uint32

const (
	AttachmentModeShouldNotPropagate AttachmentMode = 0
	AttachmentModeShouldPropagate    AttachmentMode = 1
)

// Buffer is implemented by every CVBuffer type.
type Buffer interface {
	cf.Type
	Attachment(key cf.Type) (*cf.Object, AttachmentMode, bool)
	SetAttachment(key cf.Type, value cf.Type, mode AttachmentMode)
	RemoveAttachment(key cf.Type)
	RemoveAllAttachments()
	PropagateAttachments(dst Buffer)
}

// ImageBuffer is implemented by every CVImageBuffer type.
type ImageBuffer interface {
	Buffer
	EncodedSize() Size
	DisplaySize() Size
	CleanRect() Rect
	IsFlipped() bool
}

type buffer struct {
	*cf.Object
	rt Runtime
}

// Attachment returns the attachment for key, retained for the caller.
func (b buffer) Attachment(key cf.Type) (*cf.Object, AttachmentMode, bool) {
	defer runtime.KeepAlive(key)
	defer b.KeepAlive()
	ref, mode := b.rt.BufferGetAttachment(b.Ref(), key.Ref())
	if ref == nil {
		return nil, 0, false
	}
	return cf.WrapUnderGetRule(ref), mode, true
}

func (b buffer) SetAttachment(key cf.Type, value cf.Type, mode AttachmentMode) {
	defer runtime.KeepAlive(value)
	defer runtime.KeepAlive(key)
	defer b.KeepAlive()
	b.rt.BufferSetAttachment(b.Ref(), key.Ref(), value.Ref(), mode)
}

func (b buffer) RemoveAttachment(key cf.Type) {
	defer runtime.KeepAlive(key)
	defer b.KeepAlive()
	b.rt.BufferRemoveAttachment(b.Ref(), key.Ref())
}

func (b buffer) RemoveAllAttachments() {
	defer b.KeepAlive()
	b.rt.BufferRemoveAllAttachments(b.Ref())
}

// PropagateAttachments copies the propagating attachments of b onto dst.
func (b buffer) PropagateAttachments(dst Buffer) {
	defer runtime.KeepAlive(dst)
	defer b.KeepAlive()
	b.rt.BufferPropagateAttachments(b.Ref(), dst.Ref())
}

type imageBuffer struct {
	buffer
}

// EncodedSize is the full size of the buffer, including padding.
func (b imageBuffer) EncodedSize() Size {
	defer b.KeepAlive()
	return b.rt.ImageBufferGetEncodedSize(b.Ref())
}

// DisplaySize is the nominal output size, with pixel aspect ratio applied.
func (b imageBuffer) DisplaySize() Size {
	defer b.KeepAlive()
	return b.rt.ImageBufferGetDisplaySize(b.Ref())
}

// CleanRect is the region of the buffer that holds picture.
func (b imageBuffer) CleanRect() Rect {
	defer b.KeepAlive()
	return b.rt.ImageBufferGetCleanRect(b.Ref())
}

func (b imageBuffer) IsFlipped() bool {
	defer b.KeepAlive()
	return b.rt.ImageBufferIsFlipped(b.Ref())
}
