package bind_group_provider

// BufferWrite is one queued write into the buffer at Binding on Provider, starting at Offset.
// Writes are applied in slice order before the frame's render pass is encoded.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// WholeBufferWrite builds a write that replaces the contents of binding 0 from offset 0, the shape
// of every uniform update.
//
// Parameters:
//   - provider: the provider owning the uniform buffer
//   - data: the marshalled uniform bytes
//
// Returns:
//   - BufferWrite: the write description
func WholeBufferWrite(provider BindGroupProvider, data []byte) BufferWrite {
	return BufferWrite{Provider: provider, Data: data}
}
