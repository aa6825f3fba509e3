package cartridge

// A FormatError reports that the input is not a cartridge, or that a value
// cannot be represented in one.
type FormatError string

func (e FormatError) Error() string { return "cartridge: invalid format: " + string(e) }

// A DecodeError reports that the cartridge data is damaged.
type DecodeError string

func (e DecodeError) Error() string { return "cartridge: decode error: " + string(e) }

// An UnsupportedError reports that the input uses a recognized but
// unimplemented feature.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "cartridge: unsupported feature: " + string(e) }

const (
	errTruncated   = DecodeError("truncated stream")
	errInvalidUTF8 = DecodeError("code is not valid UTF-8")
)
