// Package m3u8 decodes HTTP Live Streaming playlists into a single,
// strongly-typed record.
//
// HLS (HTTP Live Streaming) is described in [IETF RFC8216][rfc8216], with
// ongoing low-latency and multi-rendition additions tracked in the
// [rfc8216bis] series of Internet Drafts.
//
// Unlike libraries that expose distinct MasterPlaylist and MediaPlaylist
// types, this package normalizes both shapes into one Playlist value: a
// media playlist populates Segments and leaves Playlists/IFramePlaylists
// empty, while a multivariant playlist does the reverse and sets IsVariant.
// Callers that already know which shape they expect can check IsVariant
// once and ignore the rest.
//
// Decoding is a single pass over the input text. The decoder never touches
// disk or network, never retains state between calls, and never panics on
// malformed input: by default it degrades gracefully (missing numbers
// become zero, unknown tags are skipped), and a strict mode can be enabled
// to turn the same conditions into a *ParseError instead of silent
// degradation.
//
//	pl, err := m3u8.DecodeFrom(r, false)
//	if err != nil {
//	    return err
//	}
//	for _, seg := range pl.Segments {
//	    fmt.Println(seg.URI, seg.Duration)
//	}
//
// Unrecognized #EXT tags can be handed to a caller-supplied CustomDecoder,
// passed as the trailing arguments of Decode or DecodeFrom, without the core needing to know
// anything about them.
//
// [rfc8216]: https://tools.ietf.org/html/rfc8216
// [rfc8216bis]: https://tools.ietf.org/html/draft-pantos-rfc8216bis
package m3u8
