package m3u8

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const isoDateLayout1 = "2006-01-02T15:04:05.999999999Z0700"
const isoDateLayout2 = "2006-01-02T15:04:05.999999999Z07:00"
const isoDateLayout3 = "2006-01-02T15:04:05.999999999Z07"

// parseISODate implements ISO/IEC 8601:2004 with fractional seconds and a
// numeric or colon-separated timezone offset, the format EXT-X-PROGRAM-DATE-TIME
// and EXT-X-DATERANGE timestamps use.
func parseISODate(value string) (time.Time, error) {
	var firstErr error
	for _, layout := range []string{isoDateLayout1, isoDateLayout2, isoDateLayout3} {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// decodeState carries the single sliding window of cross-line context the
// decoder threads through one Decode/DecodeFrom call. It is never shared
// between calls and never exported.
type decodeState struct {
	playlist *Playlist
	mode     PlaylistMode
	strict   bool
	lineNo   int

	pendingSegment *Segment
	pendingVariant *StreamInf

	currentKey *Key
	currentMap *Map

	pendingDateRanges []*DateRange
	pendingParts      []*Part

	pdtAnchor    *time.Time
	pdtAccumSecs float64

	sawUnencryptedSegment bool
	sawNullKey            bool
	seenKeys              []*Key
	seenSessionKeys       []*Key
	seenMaps              []*Map

	customDecoders []CustomDecoder
}

func newDecodeState(strict bool, customDecoders []CustomDecoder) *decodeState {
	return &decodeState{
		playlist:       &Playlist{},
		strict:         strict,
		customDecoders: customDecoders,
	}
}

func (d *decodeState) view() StateView {
	return StateView{Mode: d.mode, LineNumber: d.lineNo}
}

func (d *decodeState) fail(kind ErrorKind, rawLine string) error {
	if !d.strict {
		return nil
	}
	return &ParseError{Kind: kind, Line: d.lineNo, Excerpt: excerpt(rawLine)}
}

func (d *decodeState) ensureSegment() *Segment {
	if d.pendingSegment == nil {
		d.pendingSegment = &Segment{}
	}
	return d.pendingSegment
}

func (d *decodeState) setMediaMode() {
	if d.mode == ModeUnknown {
		d.mode = ModeMedia
	}
}

func (d *decodeState) setMultivariantMode() {
	if d.mode == ModeUnknown {
		d.mode = ModeMultivariant
	}
}

// Decode parses the HLS/M3U8 text in data into a Playlist. strict turns
// malformed-content conditions that would otherwise silently degrade into
// a returned *ParseError. customDecoders, if given, are consulted for any
// #EXT tag the core dispatcher does not recognize.
func Decode(data []byte, strict bool, customDecoders ...CustomDecoder) (*Playlist, error) {
	return DecodeFrom(bytes.NewReader(data), strict, customDecoders...)
}

// DecodeFrom is Decode reading from an io.Reader instead of a byte slice.
func DecodeFrom(r io.Reader, strict bool, customDecoders ...CustomDecoder) (*Playlist, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		raw = []byte(strings.ToValidUTF8(string(raw), string(utf8.RuneError)))
	}
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})

	d := newDecodeState(strict, customDecoders)

	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	sawAnyLine := false
	sawHeader := false
	for scanner.Scan() {
		d.lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !sawAnyLine {
			sawAnyLine = true
			if line != "#EXTM3U" {
				if err := d.fail(ErrMissingHeader, line); err != nil {
					return nil, err
				}
			} else {
				sawHeader = true
			}
		}
		if line == "#EXTM3U" {
			sawHeader = true
			continue
		}
		if strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "#EXT") {
			continue // comment
		}
		if err := d.decodeLine(line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	_ = sawHeader

	return d.finalize(), nil
}

// decodeLine dispatches one non-blank logical line: either a #EXT tag or a
// bare URI line.
func (d *decodeState) decodeLine(line string) error {
	if !strings.HasPrefix(line, "#") {
		return d.decodeURI(line)
	}

	tag, payload, hasColon := splitTag(line)

	switch tag {
	case "#EXT-X-VERSION":
		d.playlist.HasVersion = true
		if v, ok := parseIntDefault(payload); ok {
			d.playlist.Version = v
		} else if err := d.fail(ErrInvalidNumber, line); err != nil {
			return err
		}

	case "#EXT-X-TARGETDURATION":
		d.setMediaMode()
		if v, ok := parseIntDefault(payload); ok {
			d.playlist.TargetDuration = v
		} else if err := d.fail(ErrInvalidNumber, line); err != nil {
			return err
		}

	case "#EXT-X-MEDIA-SEQUENCE":
		if v, ok := parseIntDefault(payload); ok {
			d.playlist.MediaSequence = &v
		} else if err := d.fail(ErrInvalidNumber, line); err != nil {
			return err
		}

	case "#EXT-X-DISCONTINUITY-SEQUENCE":
		if v, ok := parseIntDefault(payload); ok {
			d.playlist.DiscontinuitySequence = v
		} else if err := d.fail(ErrInvalidNumber, line); err != nil {
			return err
		}

	case "#EXT-X-ALLOW-CACHE":
		d.playlist.AllowCache = payload

	case "#EXT-X-PLAYLIST-TYPE":
		d.playlist.PlaylistType = payload

	case "#EXT-X-ENDLIST":
		d.playlist.IsEndlist = true

	case "#EXT-X-I-FRAMES-ONLY":
		d.playlist.IsIFramesOnly = true
		d.setMediaMode()

	case "#EXT-X-IMAGES-ONLY":
		d.playlist.IsImagesOnly = true

	case "#EXT-X-INDEPENDENT-SEGMENTS":
		d.playlist.IsIndependentSegments = true

	case "#EXTINF":
		d.setMediaMode()
		return d.decodeExtinf(payload, line)

	case "#EXT-X-BYTERANGE":
		d.ensureSegment().Byterange = payload

	case "#EXT-X-BITRATE":
		if v, ok := parseIntDefault(payload); ok {
			d.ensureSegment().Bitrate = &v
		} else if err := d.fail(ErrInvalidNumber, line); err != nil {
			return err
		}

	case "#EXT-X-DISCONTINUITY":
		d.ensureSegment().Discontinuity = true

	case "#EXT-X-GAP":
		d.ensureSegment().GapTag = true

	case "#EXT-X-CUE-IN":
		d.ensureSegment().CueIn = true

	case "#EXT-X-CUE-OUT":
		return d.decodeCueOut(payload, hasColon)

	case "#EXT-X-CUE-OUT-CONT":
		return d.decodeCueOutCont(payload)

	case "#EXT-OATCLS-SCTE35":
		d.ensureSegment().OatclsSCTE35 = payload

	case "#EXT-X-SCTE35":
		attrs := decodeAndTrimAttributes(payload)
		if cue, ok := attrs["CUE"]; ok {
			d.ensureSegment().SCTE35 = cue
		}

	case "#EXT-X-ASSET":
		attrs := decodeAndTrimAttributes(payload)
		seg := d.ensureSegment()
		if seg.AssetMetadata == nil {
			seg.AssetMetadata = make(map[string]string, len(attrs))
		}
		for k, v := range attrs {
			seg.AssetMetadata[k] = v
		}

	case "#EXT-X-BLACKOUT":
		seg := d.ensureSegment()
		if !hasColon {
			seg.Blackout = Blackout{State: BlackoutTrue}
		} else {
			seg.Blackout = Blackout{State: BlackoutPayload, Payload: payload}
		}

	case "#EXT-X-PROGRAM-DATE-TIME":
		t, err := parseISODate(payload)
		if err != nil {
			if ferr := d.fail(ErrInvalidNumber, line); ferr != nil {
				return ferr
			}
			break
		}
		if d.pendingSegment != nil {
			d.pendingSegment.ProgramDateTime = &t
		} else {
			d.playlist.ProgramDateTime = &t
			anchor := t
			d.pdtAnchor = &anchor
			d.pdtAccumSecs = 0
		}

	case "#EXT-X-KEY":
		return d.decodeKey(payload, line, true)

	case "#EXT-X-SESSION-KEY":
		return d.decodeKey(payload, line, false)

	case "#EXT-X-MAP":
		return d.decodeMap(payload)

	case "#EXT-X-DATERANGE":
		return d.decodeDateRange(payload, line)

	case "#EXT-X-PART":
		return d.decodePart(payload, line)

	case "#EXT-X-STREAM-INF":
		d.setMultivariantMode()
		return d.decodeStreamInf(payload, line)

	case "#EXT-X-I-FRAME-STREAM-INF":
		d.setMultivariantMode()
		return d.decodeIFrameStreamInf(payload, line)

	case "#EXT-X-IMAGE-STREAM-INF":
		d.setMultivariantMode()
		return d.decodeImageStreamInf(payload, line)

	case "#EXT-X-MEDIA":
		return d.decodeMedia(payload, line)

	case "#EXT-X-SESSION-DATA":
		return d.decodeSessionData(payload)

	case "#EXT-X-START":
		return d.decodeStart(payload, line)

	case "#EXT-X-SERVER-CONTROL":
		return d.decodeServerControl(payload, line)

	case "#EXT-X-PART-INF":
		return d.decodePartInf(payload, line)

	case "#EXT-X-SKIP":
		return d.decodeSkip(payload, line)

	case "#EXT-X-PRELOAD-HINT":
		return d.decodePreloadHint(payload, line)

	case "#EXT-X-RENDITION-REPORT":
		return d.decodeRenditionReport(payload, line)

	case "#EXT-X-CONTENT-STEERING":
		return d.decodeContentSteering(payload)

	case "#EXT-X-TILES":
		return d.decodeTiles(payload, line)

	default:
		return d.decodeCustomTag(tag, payload)
	}
	return nil
}

func splitTag(line string) (tag, payload string, hasColon bool) {
	idx := strings.IndexByte(line, ':')
	if idx == -1 {
		return line, "", false
	}
	return line[:idx], line[idx+1:], true
}

func (d *decodeState) decodeCustomTag(tag, payload string) error {
	for _, dec := range d.customDecoders {
		if !strings.HasPrefix(tag, strings.TrimSuffix(dec.TagName(), ":")) {
			continue
		}
		t, err := dec.Decode(tag, payload, d.view())
		if err != nil {
			if d.strict {
				return err
			}
			continue
		}
		if dec.SegmentTag() {
			seg := d.ensureSegment()
			if seg.Custom == nil {
				seg.Custom = make(map[string]CustomTag)
			}
			seg.Custom[t.TagName()] = t
		} else {
			if d.playlist.Custom == nil {
				d.playlist.Custom = make(map[string]CustomTag)
			}
			d.playlist.Custom[t.TagName()] = t
		}
	}
	return nil
}

func (d *decodeState) decodeExtinf(payload, line string) error {
	sep := strings.IndexByte(payload, ',')
	durationStr := payload
	title := ""
	if sep != -1 {
		durationStr = payload[:sep]
		title = payload[sep+1:]
	}
	seg := d.ensureSegment()
	if durationStr != "" {
		v, err := strconv.ParseFloat(durationStr, 64)
		if err != nil {
			if ferr := d.fail(ErrInvalidNumber, line); ferr != nil {
				return ferr
			}
			v = 0
		}
		seg.Duration = v
	}
	seg.Title = title
	return nil
}

func (d *decodeState) decodeCueOut(payload string, hasColon bool) error {
	seg := d.ensureSegment()
	seg.CueOut = true
	seg.CueOutStart = true
	if !hasColon || payload == "" {
		return nil
	}
	var durationStr string
	if strings.Contains(payload, "=") {
		durationStr = decodeAndTrimAttributes(payload)["DURATION"]
	} else {
		durationStr = payload
	}
	if durationStr == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(durationStr, 64); err == nil {
		seg.CueOutExplicitlyDuration = true
		seg.SCTE35Duration = &v
	}
	return nil
}

func (d *decodeState) decodeCueOutCont(payload string) error {
	seg := d.ensureSegment()
	seg.CueOut = true
	attrs := decodeAndTrimAttributes(payload)
	if v, ok := attrs["ElapsedTime"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			seg.SCTE35ElapsedTime = &f
		}
	}
	if v, ok := attrs["Duration"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			seg.SCTE35Duration = &f
		}
	}
	if v, ok := attrs["SCTE35"]; ok {
		seg.SCTE35 = v
	}
	return nil
}

func (d *decodeState) decodeKey(payload, line string, updatesCurrent bool) error {
	attrs := decodeAndTrimAttributes(payload)
	key := &Key{
		Method:            attrs["METHOD"],
		URI:               attrs["URI"],
		IV:                attrs["IV"],
		Keyformat:         attrs["KEYFORMAT"],
		Keyformatversions: attrs["KEYFORMATVERSIONS"],
	}
	if key.Method == "" {
		if err := d.fail(ErrMissingRequiredAttribute, line); err != nil {
			return err
		}
	}
	// EXT-X-KEY governs the segments that follow and is recorded in the
	// segment-level Keys list; EXT-X-SESSION-KEY only ever appends to the
	// separate SessionKeys list and never becomes the active segment key.
	if updatesCurrent {
		d.appendKey(key)
		d.currentKey = key
	} else {
		d.appendSessionKey(key)
	}
	return nil
}

// appendKey appends key to the playlist's segment-level Keys list,
// deduplicating by structural equality and representing METHOD=NONE as a
// nil placeholder.
func (d *decodeState) appendKey(key *Key) {
	if key.IsNull() {
		if d.sawNullKey {
			return
		}
		d.sawNullKey = true
		d.playlist.Keys = append(d.playlist.Keys, nil)
		return
	}
	for _, seen := range d.seenKeys {
		if seen.Equal(key) {
			return
		}
	}
	d.seenKeys = append(d.seenKeys, key)
	d.playlist.Keys = append(d.playlist.Keys, key)
}

// appendSessionKey appends key to the playlist's SessionKeys list,
// deduplicating by structural equality. Session keys never trigger the
// null-key placeholder; that signal belongs to the segment-level Keys list.
func (d *decodeState) appendSessionKey(key *Key) {
	for _, seen := range d.seenSessionKeys {
		if seen.Equal(key) {
			return
		}
	}
	d.seenSessionKeys = append(d.seenSessionKeys, key)
	d.playlist.SessionKeys = append(d.playlist.SessionKeys, key)
}

func (d *decodeState) decodeMap(payload string) error {
	attrs := decodeAndTrimAttributes(payload)
	m := &Map{URI: attrs["URI"], Byterange: attrs["BYTERANGE"]}
	d.currentMap = m
	for _, seen := range d.seenMaps {
		if seen.Equal(m) {
			return nil
		}
	}
	d.seenMaps = append(d.seenMaps, m)
	d.playlist.SegmentMaps = append(d.playlist.SegmentMaps, m)
	return nil
}

func (d *decodeState) decodeDateRange(payload, line string) error {
	attrs := decodeAndTrimAttributes(payload)
	id, ok := attrs["ID"]
	if !ok || id == "" {
		return d.fail(ErrMissingRequiredAttribute, line)
	}
	dr := &DateRange{
		ID:        id,
		Class:     attrs["CLASS"],
		SCTE35Cmd: attrs["SCTE35-CMD"],
		SCTE35Out: attrs["SCTE35-OUT"],
		SCTE35In:  attrs["SCTE35-IN"],
	}
	if v, ok := attrs["START-DATE"]; ok {
		if t, err := parseISODate(v); err == nil {
			dr.StartDate = &t
		}
	}
	if v, ok := attrs["END-DATE"]; ok {
		if t, err := parseISODate(v); err == nil {
			dr.EndDate = &t
		}
	}
	if v, ok := attrs["DURATION"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			dr.Duration = &f
		}
	}
	if v, ok := attrs["PLANNED-DURATION"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			dr.PlannedDuration = &f
		}
	}
	if v, ok := attrs["END-ON-NEXT"]; ok {
		dr.EndOnNext = strings.EqualFold(v, "YES")
	}
	for _, a := range decodeAttributes(payload) {
		if strings.HasPrefix(a.Key, "X-") {
			if dr.ClientAttributes == nil {
				dr.ClientAttributes = make(map[string]string)
			}
			dr.ClientAttributes[a.Key] = deQuote(a.Val)
		}
	}
	d.pendingDateRanges = append(d.pendingDateRanges, dr)
	return nil
}

func (d *decodeState) decodePart(payload, line string) error {
	attrs := decodeAndTrimAttributes(payload)
	part := &Part{
		URI:       attrs["URI"],
		Byterange: attrs["BYTERANGE"],
	}
	if v, ok := attrs["DURATION"]; ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			if ferr := d.fail(ErrInvalidNumber, line); ferr != nil {
				return ferr
			}
		}
		part.Duration = f
	}
	part.Independent = strings.EqualFold(attrs["INDEPENDENT"], "YES")
	part.Gap = strings.EqualFold(attrs["GAP"], "YES")
	part.DateRanges = d.pendingDateRanges
	d.pendingDateRanges = nil
	d.pendingParts = append(d.pendingParts, part)
	return nil
}

func (d *decodeState) decodeStreamInf(payload, line string) error {
	attrs := decodeAndTrimAttributes(payload)
	si, err := d.buildStreamInf(attrs, line)
	if err != nil {
		return err
	}
	d.pendingVariant = si
	return nil
}

func (d *decodeState) buildStreamInf(attrs map[string]string, line string) (*StreamInf, error) {
	si := &StreamInf{
		Resolution:      attrs["RESOLUTION"],
		Codecs:          attrs["CODECS"],
		Video:           attrs["VIDEO"],
		Audio:           attrs["AUDIO"],
		Subtitles:       attrs["SUBTITLES"],
		ClosedCaptions:  attrs["CLOSED-CAPTIONS"],
		VideoRange:      attrs["VIDEO-RANGE"],
		HDCPLevel:       attrs["HDCP-LEVEL"],
		PathwayID:       attrs["PATHWAY-ID"],
		StableVariantID: attrs["STABLE-VARIANT-ID"],
		ReqVideoLayout:  attrs["REQ-VIDEO-LAYOUT"],
	}
	if v, ok := attrs["BANDWIDTH"]; ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			if ferr := d.fail(ErrInvalidNumber, line); ferr != nil {
				return nil, ferr
			}
		}
		si.Bandwidth = n
	}
	if v, ok := attrs["AVERAGE-BANDWIDTH"]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			si.AverageBandwidth = &n
		}
	}
	if v, ok := attrs["FRAME-RATE"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			si.FrameRate = &f
		}
	}
	if v, ok := attrs["PROGRAM-ID"]; ok {
		if n, ok := parseIntDefault(v); ok {
			si.ProgramID = &n
		}
	}
	return si, nil
}

func (d *decodeState) decodeIFrameStreamInf(payload, line string) error {
	attrs := decodeAndTrimAttributes(payload)
	si, err := d.buildStreamInf(attrs, line)
	if err != nil {
		return err
	}
	d.playlist.IFramePlaylists = append(d.playlist.IFramePlaylists, &VariantPlaylist{
		URI:       attrs["URI"],
		StreamInf: si,
	})
	return nil
}

func (d *decodeState) decodeImageStreamInf(payload, line string) error {
	attrs := decodeAndTrimAttributes(payload)
	si, err := d.buildStreamInf(attrs, line)
	if err != nil {
		return err
	}
	d.playlist.ImagePlaylists = append(d.playlist.ImagePlaylists, &VariantPlaylist{
		URI:       attrs["URI"],
		StreamInf: si,
	})
	return nil
}

func (d *decodeState) decodeMedia(payload, line string) error {
	attrs := decodeAndTrimAttributes(payload)
	r := &Rendition{
		Type:              attrs["TYPE"],
		URI:               attrs["URI"],
		GroupID:           attrs["GROUP-ID"],
		Language:          attrs["LANGUAGE"],
		AssocLanguage:     attrs["ASSOC-LANGUAGE"],
		Name:              attrs["NAME"],
		StableRenditionID: attrs["STABLE-RENDITION-ID"],
		InstreamID:        attrs["INSTREAM-ID"],
		BitDepth:          attrs["BIT-DEPTH"],
		SampleRate:        attrs["SAMPLE-RATE"],
		Characteristics:   attrs["CHARACTERISTICS"],
		Channels:          attrs["CHANNELS"],
	}
	r.Default = strings.EqualFold(attrs["DEFAULT"], "YES")
	r.Autoselect = strings.EqualFold(attrs["AUTOSELECT"], "YES")
	r.Forced = strings.EqualFold(attrs["FORCED"], "YES")
	_ = line
	d.playlist.Media = append(d.playlist.Media, r)
	return nil
}

func (d *decodeState) decodeSessionData(payload string) error {
	attrs := decodeAndTrimAttributes(payload)
	d.playlist.SessionData = append(d.playlist.SessionData, &SessionData{
		DataID:   attrs["DATA-ID"],
		Value:    attrs["VALUE"],
		URI:      attrs["URI"],
		Format:   attrs["FORMAT"],
		Language: attrs["LANGUAGE"],
	})
	return nil
}

func (d *decodeState) decodeStart(payload, line string) error {
	attrs := decodeAndTrimAttributes(payload)
	sp := &StartPoint{}
	if v, ok := attrs["TIME-OFFSET"]; ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			if ferr := d.fail(ErrInvalidNumber, line); ferr != nil {
				return ferr
			}
		}
		sp.TimeOffset = f
	}
	if v, ok := attrs["PRECISE"]; ok {
		b := strings.EqualFold(v, "YES")
		sp.Precise = &b
	}
	d.playlist.Start = sp
	return nil
}

func (d *decodeState) decodeServerControl(payload, line string) error {
	attrs := decodeAndTrimAttributes(payload)
	sc := &ServerControl{}
	if v, ok := attrs["CAN-BLOCK-RELOAD"]; ok {
		b := strings.EqualFold(v, "YES")
		sc.CanBlockReload = &b
	}
	if v, ok := attrs["HOLD-BACK"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			sc.HoldBack = &f
		} else if ferr := d.fail(ErrInvalidNumber, line); ferr != nil {
			return ferr
		}
	}
	if v, ok := attrs["PART-HOLD-BACK"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			sc.PartHoldBack = &f
		}
	}
	if v, ok := attrs["CAN-SKIP-UNTIL"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			sc.CanSkipUntil = &f
		}
	}
	if v, ok := attrs["CAN-SKIP-DATERANGES"]; ok {
		b := strings.EqualFold(v, "YES")
		sc.CanSkipDateranges = &b
	}
	d.playlist.ServerControlV = sc
	return nil
}

func (d *decodeState) decodePartInf(payload, line string) error {
	attrs := decodeAndTrimAttributes(payload)
	pi := &PartInf{}
	if v, ok := attrs["PART-TARGET"]; ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			if ferr := d.fail(ErrInvalidNumber, line); ferr != nil {
				return ferr
			}
		}
		pi.PartTarget = &f
	}
	d.playlist.PartInfV = pi
	return nil
}

func (d *decodeState) decodeSkip(payload, line string) error {
	attrs := decodeAndTrimAttributes(payload)
	s := &Skip{}
	if v, ok := attrs["SKIPPED-SEGMENTS"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			if ferr := d.fail(ErrInvalidNumber, line); ferr != nil {
				return ferr
			}
		}
		s.SkippedSegments = n
	}
	if v, ok := attrs["RECENTLY-REMOVED-DATERANGES"]; ok {
		s.RecentlyRemovedDateranges = &v
	}
	d.playlist.Skip = s
	return nil
}

func (d *decodeState) decodePreloadHint(payload, line string) error {
	attrs := decodeAndTrimAttributes(payload)
	ph := &PreloadHint{Type: attrs["TYPE"], URI: attrs["URI"]}
	if v, ok := attrs["BYTERANGE-START"]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			ph.ByterangeStart = &n
		} else if ferr := d.fail(ErrInvalidNumber, line); ferr != nil {
			return ferr
		}
	}
	if v, ok := attrs["BYTERANGE-LENGTH"]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			ph.ByterangeLength = &n
		}
	}
	d.playlist.PreloadHint = ph
	return nil
}

func (d *decodeState) decodeRenditionReport(payload, line string) error {
	attrs := decodeAndTrimAttributes(payload)
	rr := &RenditionReport{URI: attrs["URI"]}
	if v, ok := attrs["LAST-MSN"]; ok {
		if n, ok := parseIntDefault(v); ok {
			rr.LastMSN = &n
		} else if ferr := d.fail(ErrInvalidNumber, line); ferr != nil {
			return ferr
		}
	}
	if v, ok := attrs["LAST-PART"]; ok {
		if n, ok := parseIntDefault(v); ok {
			rr.LastPart = &n
		}
	}
	d.playlist.RenditionReports = append(d.playlist.RenditionReports, rr)
	return nil
}

func (d *decodeState) decodeContentSteering(payload string) error {
	attrs := decodeAndTrimAttributes(payload)
	cs := &ContentSteering{ServerURI: attrs["SERVER-URI"]}
	if v, ok := attrs["PATHWAY-ID"]; ok {
		cs.PathwayID = &v
	}
	d.playlist.ContentSteering = cs
	return nil
}

func (d *decodeState) decodeTiles(payload, line string) error {
	attrs := decodeAndTrimAttributes(payload)
	t := &Tiles{Resolution: attrs["RESOLUTION"], Layout: attrs["LAYOUT"]}
	if v, ok := attrs["DURATION"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			t.Duration = &f
		} else if ferr := d.fail(ErrInvalidNumber, line); ferr != nil {
			return ferr
		}
	}
	d.playlist.Tiles = append(d.playlist.Tiles, t)
	return nil
}

// decodeURI handles a non-tag line: either the URI that finishes a
// segment (media mode) or the URI that finishes an EXT-X-STREAM-INF
// variant (multivariant mode).
func (d *decodeState) decodeURI(line string) error {
	switch {
	case d.pendingSegment != nil:
		d.finalizeSegment(line)
	case d.pendingVariant != nil:
		d.playlist.Playlists = append(d.playlist.Playlists, &VariantPlaylist{
			URI:       line,
			StreamInf: d.pendingVariant,
		})
		d.pendingVariant = nil
	default:
		if err := d.fail(ErrUnexpectedURI, line); err != nil {
			return err
		}
	}
	return nil
}

func (d *decodeState) finalizeSegment(uri string) {
	seg := d.pendingSegment
	seg.URI = uri
	seg.SeqID = len(d.playlist.Segments)
	seg.Key = d.currentKey
	seg.Map = d.currentMap
	seg.DateRanges = d.pendingDateRanges
	seg.Parts = d.pendingParts
	d.pendingDateRanges = nil
	d.pendingParts = nil

	if seg.ProgramDateTime != nil {
		anchor := *seg.ProgramDateTime
		d.pdtAnchor = &anchor
		d.pdtAccumSecs = 0
	}
	if d.pdtAnchor != nil {
		cpdt := d.pdtAnchor.Add(time.Duration(d.pdtAccumSecs * float64(time.Second)))
		seg.CurrentProgramDateTime = &cpdt
	}
	d.pdtAccumSecs += seg.Duration

	if seg.Key == nil || seg.Key.Method == "" || seg.Key.Method == "NONE" {
		d.sawUnencryptedSegment = true
	}

	d.playlist.Segments = append(d.playlist.Segments, seg)
	d.pendingSegment = nil
}

func (d *decodeState) finalize() *Playlist {
	p := d.playlist
	p.IsVariant = d.mode == ModeMultivariant
	if p.MediaSequence == nil && d.mode != ModeMultivariant {
		zero := 0
		p.MediaSequence = &zero
	}
	if d.sawUnencryptedSegment && !d.sawNullKey {
		p.Keys = append([]*Key{nil}, p.Keys...)
	}
	return p
}

func parseIntDefault(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
