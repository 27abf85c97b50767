package m3u8

import (
	"testing"

	"github.com/matryer/is"
)

func TestKeyEqualIsStructural(t *testing.T) {
	is := is.New(t)

	a := &Key{Method: "AES-128", URI: "k.bin"}
	b := &Key{Method: "AES-128", URI: "k.bin"}
	c := &Key{Method: "AES-128", URI: "other.bin"}

	is.True(a.Equal(b))  // same fields, different pointers
	is.True(!a.Equal(c)) // differing URI
	is.True(!a.Equal(nil))

	var nilKey *Key
	is.True(nilKey.Equal(nil)) // both nil compare equal
}

func TestKeyIsNull(t *testing.T) {
	is := is.New(t)

	none := &Key{Method: "NONE"}
	aes := &Key{Method: "AES-128"}

	is.True(none.IsNull())
	is.True(!aes.IsNull())
	is.True(!(*Key)(nil).IsNull())
}

func TestBlackoutIsAbsent(t *testing.T) {
	is := is.New(t)

	var zero Blackout
	is.True(zero.IsAbsent())

	is.True(!Blackout{State: BlackoutTrue}.IsAbsent())
	is.True(!Blackout{State: BlackoutPayload, Payload: "x"}.IsAbsent())
}

func TestPlaylistModeString(t *testing.T) {
	is := is.New(t)

	is.Equal(ModeUnknown.String(), "unknown")
	is.Equal(ModeMedia.String(), "media")
	is.Equal(ModeMultivariant.String(), "multivariant")
}
