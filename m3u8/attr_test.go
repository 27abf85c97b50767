package m3u8

import (
	"testing"

	"github.com/matryer/is"
)

func TestDecodeAttributesQuotedCommas(t *testing.T) {
	is := is.New(t)

	attrs := decodeAttributes(`METHOD=AES-128,URI="https://example.com/key,1.bin",IV=0x10`)
	is.Equal(len(attrs), 3) // the comma inside the quoted URI does not split the list
	is.Equal(attrs[0].Key, "METHOD")
	is.Equal(attrs[0].Val, "AES-128")
	is.Equal(attrs[1].Key, "URI")
	is.Equal(attrs[1].Val, `"https://example.com/key,1.bin"`)
	is.Equal(attrs[2].Val, "0x10")
}

func TestDecodeAndTrimAttributesStripsQuotes(t *testing.T) {
	is := is.New(t)

	out := decodeAndTrimAttributes(`BANDWIDTH=1280000,CODECS="avc1.4d401f,mp4a.40.2"`)
	is.Equal(out["BANDWIDTH"], "1280000")
	is.Equal(out["CODECS"], "avc1.4d401f,mp4a.40.2")
}

func TestDecodeAndTrimAttributesLastKeyWins(t *testing.T) {
	is := is.New(t)

	out := decodeAndTrimAttributes(`ID="a",ID="b"`)
	is.Equal(out["ID"], "b") // duplicate keys: last one wins
}

func TestDecodeAttributesDropsMalformedPairs(t *testing.T) {
	is := is.New(t)

	attrs := decodeAttributes(`=noKey,OK=1,STRAY=`)
	is.Equal(len(attrs), 2) // the empty-key pair is dropped, the trailing STRAY= keeps a pair with an empty value
	is.Equal(attrs[0].Key, "OK")
	is.Equal(attrs[1].Key, "STRAY")
	is.Equal(attrs[1].Val, "")
}

func TestDeQuote(t *testing.T) {
	is := is.New(t)

	is.Equal(deQuote(`"abc"`), "abc")
	is.Equal(deQuote("abc"), "abc")
	is.Equal(deQuote(`"`), `"`)
	is.Equal(deQuote(""), "")
}
