package gles

// GL token values used by argl. Values are the standard GL enumerants
// so a Driver can forward them to any binding unchanged.
const (
	// String names.
	VERSION    uint32 = 0x1F02
	EXTENSIONS uint32 = 0x1F03

	// Integer state.
	VIEWPORT         uint32 = 0x0BA2
	MAX_TEXTURE_SIZE uint32 = 0x0D33

	// Capabilities.
	TEXTURE_2D uint32 = 0x0DE1
	DEPTH_TEST uint32 = 0x0B71
	LIGHTING   uint32 = 0x0B50

	// Texture environment.
	TEXTURE_ENV      uint32 = 0x2300
	TEXTURE_ENV_MODE uint32 = 0x2200
	REPLACE          uint32 = 0x1E01
	MODULATE         uint32 = 0x2100

	// Texture units.
	TEXTURE0 uint32 = 0x84C0
	TEXTURE1 uint32 = 0x84C1

	// Texture parameters.
	TEXTURE_MAG_FILTER uint32 = 0x2800
	TEXTURE_MIN_FILTER uint32 = 0x2801
	TEXTURE_WRAP_S     uint32 = 0x2802
	TEXTURE_WRAP_T     uint32 = 0x2803
	LINEAR             uint32 = 0x2601
	CLAMP_TO_EDGE      uint32 = 0x812F

	// Pixel storage.
	UNPACK_ALIGNMENT uint32 = 0x0CF5

	// Pixel formats.
	RGB             uint32 = 0x1907
	RGBA            uint32 = 0x1908
	LUMINANCE       uint32 = 0x1909
	LUMINANCE_ALPHA uint32 = 0x190A
	BGRA            uint32 = 0x80E1

	// Pixel types.
	UNSIGNED_BYTE          uint32 = 0x1401
	UNSIGNED_SHORT_4_4_4_4 uint32 = 0x8033
	UNSIGNED_SHORT_5_5_5_1 uint32 = 0x8034
	UNSIGNED_SHORT_5_6_5   uint32 = 0x8363

	// Matrix modes.
	MODELVIEW  uint32 = 0x1700
	PROJECTION uint32 = 0x1701

	// Client arrays.
	VERTEX_ARRAY        uint32 = 0x8074
	TEXTURE_COORD_ARRAY uint32 = 0x8078

	// Draw modes.
	TRIANGLE_STRIP uint32 = 0x0005
)
