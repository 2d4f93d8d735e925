package argl

import (
	"strings"

	"github.com/arvideo/argl/gles"
)

// HasExtension reports whether name occurs as a complete token in the
// space-delimited extension list extString, as returned by a driver's
// GetString(gles.EXTENSIONS). Matching is exact: no wildcard and no
// prefix match, so "GL_EXT_tex" does not match "GL_EXT_texture". An
// empty name never matches.
//
// HasExtension is a free function with no driver dependency so hosts
// can probe extension lists they obtained elsewhere.
func HasExtension(name, extString string) bool {
	if name == "" || strings.ContainsAny(name, " \t\n") {
		return false
	}
	for ext := range strings.FieldsSeq(extString) {
		if ext == name {
			return true
		}
	}
	return false
}

// VersionBCD parses a GL version string into the binary-coded-decimal
// form used by CapabilityCheck: version 1.1 becomes 0x0101, 2.0 becomes
// 0x0200. Leading vendor prose ("OpenGL ES-CM 1.1 Apple...") is
// skipped; a string with no parsable version yields 0.
func VersionBCD(version string) uint16 {
	i := strings.IndexFunc(version, func(r rune) bool { return r >= '0' && r <= '9' })
	if i < 0 {
		return 0
	}
	var major, minor int
	s := version[i:]
	for len(s) > 0 && s[0] >= '0' && s[0] <= '9' {
		major = major*10 + int(s[0]-'0')
		s = s[1:]
	}
	if len(s) > 0 && s[0] == '.' {
		s = s[1:]
		for len(s) > 0 && s[0] >= '0' && s[0] <= '9' {
			minor = minor*10 + int(s[0]-'0')
			s = s[1:]
		}
	}
	if major > 0xFF {
		major = 0xFF
	}
	if minor > 0xFF {
		minor = 0xFF
	}
	return uint16(major)<<8 | uint16(minor)
}

// CapabilityCheck reports whether the live driver offers a capability,
// either because its version meets or exceeds minVersion (in BCD form,
// e.g. 0x0200 for 2.0) or because extension appears in its extension
// list.
//
// A zero minVersion never satisfies the version test; pass 0 to force
// an extension-only check for capabilities that were never folded into
// core. An empty extension never satisfies the extension test. With
// both absent (or a nil driver) the check fails.
//
// CapabilityCheck needs no ContextSettings and may be called before
// Setup, so hosts can pick a drawing strategy up front.
func CapabilityCheck(d gles.Driver, minVersion uint16, extension string) bool {
	if d == nil {
		return false
	}
	if minVersion > 0 && VersionBCD(d.GetString(gles.VERSION)) >= minVersion {
		return true
	}
	if extension != "" && HasExtension(extension, d.GetString(gles.EXTENSIONS)) {
		return true
	}
	return false
}

// npotSupported reports whether the driver can allocate textures with
// non-power-of-two dimensions. In core from GL 2.0; older drivers
// advertise it through one of the NPOT extensions.
func npotSupported(d gles.Driver) bool {
	return CapabilityCheck(d, 0x0200, "GL_ARB_texture_non_power_of_two") ||
		CapabilityCheck(d, 0, "GL_OES_texture_npot") ||
		CapabilityCheck(d, 0, "GL_APPLE_texture_2D_limited_npot")
}

// nextPOT returns the smallest power of two >= n, for padding texture
// geometry on drivers without NPOT support.
func nextPOT(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// isPOT reports whether n is a power of two.
func isPOT(n int) bool {
	return n > 0 && n&(n-1) == 0
}
