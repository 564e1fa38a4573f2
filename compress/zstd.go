package compress

// ZstdCodec streams Zstandard frames.
//
// On cgo builds the codec uses the libzstd bindings; pure-Go builds fall back
// to the klauspost implementation. The two produce interchangeable frames.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}
