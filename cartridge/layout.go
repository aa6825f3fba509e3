package cartridge

const (
	// Size is the number of bytes stored in a cartridge image
	Size = 0x8000

	codeOffset = 0x4300
	codeSize   = Size - codeOffset

	// Offsets relative to codeOffset
	magicOffset            = 0
	decompressedLenOffset  = 4
	compressedLenOffset    = 6
	headerSize             = 8
	mtfSize                = 256
	compressedStreamOffset = headerSize + mtfSize
)

const (
	magicV1 = 0x3a633a00 // ":c:\x00"
	magicV2 = 0x00707861 // "\x00pxa"
)
