package m3u8

import "time"

// PlaylistMode distinguishes a media playlist (segments) from a
// multivariant playlist (variant streams), or records that neither has
// been determined yet.
type PlaylistMode int

const (
	ModeUnknown PlaylistMode = iota
	ModeMedia
	ModeMultivariant
)

func (m PlaylistMode) String() string {
	switch m {
	case ModeMedia:
		return "media"
	case ModeMultivariant:
		return "multivariant"
	default:
		return "unknown"
	}
}

// BlackoutState distinguishes the three observable shapes of
// EXT-X-BLACKOUT: absent, a bare tag, or a tag carrying a payload string.
type BlackoutState int

const (
	BlackoutAbsent BlackoutState = iota
	BlackoutTrue
	BlackoutPayload
)

// Blackout is a sum type modeling EXT-X-BLACKOUT. A bare tag ("no payload")
// yields State == BlackoutTrue; a tag with text after the colon yields
// State == BlackoutPayload with Payload set; no tag at all leaves the zero
// value, State == BlackoutAbsent.
type Blackout struct {
	State   BlackoutState
	Payload string
}

// IsAbsent reports whether no EXT-X-BLACKOUT tag was seen for this segment.
func (b Blackout) IsAbsent() bool { return b.State == BlackoutAbsent }

// Key represents EXT-X-KEY / EXT-X-SESSION-KEY. Two keys with identical
// fields are the same key: Equal performs that structural comparison.
type Key struct {
	Method            string
	URI               string
	IV                string
	Keyformat         string
	Keyformatversions string
}

// Equal reports whether two keys are structurally identical.
func (k *Key) Equal(other *Key) bool {
	if k == nil || other == nil {
		return k == other
	}
	return *k == *other
}

// IsNull reports whether the key represents an explicit absence of
// encryption (METHOD=NONE), stored as the nil placeholder the Keys list
// carries when any segment in the playlist is unencrypted.
func (k *Key) IsNull() bool {
	return k != nil && k.Method == "NONE"
}

// Map represents EXT-X-MAP, a byte range of initialization data that must
// be fetched before a segment's media bytes.
type Map struct {
	URI       string
	Byterange string
}

// Equal reports whether two maps are structurally identical.
func (m *Map) Equal(other *Map) bool {
	if m == nil || other == nil {
		return m == other
	}
	return *m == *other
}

// DateRange represents EXT-X-DATERANGE. ClientAttributes collects every
// attribute whose key begins with "X-".
type DateRange struct {
	ID               string
	Class            string
	StartDate        *time.Time
	EndDate          *time.Time
	Duration         *float64
	PlannedDuration  *float64
	SCTE35Cmd        string
	SCTE35Out        string
	SCTE35In         string
	EndOnNext        bool
	ClientAttributes map[string]string
}

// Part represents EXT-X-PART, a low-latency sub-segment.
type Part struct {
	URI         string
	Duration    float64
	Byterange   string
	Independent bool
	Gap         bool
	DateRanges  []*DateRange
}

// Segment is one media chunk of a media playlist.
type Segment struct {
	SeqID    int
	URI      string
	Duration float64
	Title    string

	Byterange string
	Bitrate   *int

	Discontinuity bool

	ProgramDateTime        *time.Time
	CurrentProgramDateTime *time.Time

	CueIn                    bool
	CueOut                   bool
	CueOutStart              bool
	CueOutExplicitlyDuration bool
	SCTE35                   string
	OatclsSCTE35             string
	SCTE35Duration           *float64
	SCTE35ElapsedTime        *float64

	AssetMetadata map[string]string

	Key *Key
	Map *Map

	DateRanges []*DateRange
	Parts      []*Part

	GapTag   bool
	Blackout Blackout

	Custom map[string]CustomTag
}

// StreamInf carries the attributes of EXT-X-STREAM-INF.
type StreamInf struct {
	ProgramID        *int
	Bandwidth        int64
	AverageBandwidth *int64
	Resolution       string
	Codecs           string
	FrameRate        *float64
	Video            string
	Audio            string
	Subtitles        string
	ClosedCaptions   string
	VideoRange       string
	HDCPLevel        string
	PathwayID        string
	StableVariantID  string
	ReqVideoLayout   string
}

// VariantPlaylist is one entry of Playlists, IFramePlaylists, or
// ImagePlaylists: a reference to another playlist plus its stream
// attributes.
type VariantPlaylist struct {
	URI       string
	StreamInf *StreamInf
}

// Rendition represents EXT-X-MEDIA, an alternative audio, video, subtitle,
// or closed-caption track.
type Rendition struct {
	Type              string
	URI               string
	GroupID           string
	Language          string
	AssocLanguage     string
	Name              string
	StableRenditionID string
	Default           bool
	Autoselect        bool
	Forced            bool
	InstreamID        string
	BitDepth          string
	SampleRate        string
	Characteristics   string
	Channels          string
}

// StartPoint represents EXT-X-START.
type StartPoint struct {
	TimeOffset float64
	Precise    *bool
}

// ServerControl represents EXT-X-SERVER-CONTROL.
type ServerControl struct {
	CanBlockReload    *bool
	HoldBack          *float64
	PartHoldBack      *float64
	CanSkipUntil      *float64
	CanSkipDateranges *bool
}

// PartInf represents EXT-X-PART-INF.
type PartInf struct {
	PartTarget *float64
}

// Skip represents EXT-X-SKIP.
type Skip struct {
	SkippedSegments           int
	RecentlyRemovedDateranges *string
}

// PreloadHint represents EXT-X-PRELOAD-HINT.
type PreloadHint struct {
	Type            string
	URI             string
	ByterangeStart  *int64
	ByterangeLength *int64
}

// ContentSteering represents EXT-X-CONTENT-STEERING.
type ContentSteering struct {
	ServerURI string
	PathwayID *string
}

// RenditionReport represents EXT-X-RENDITION-REPORT.
type RenditionReport struct {
	URI      string
	LastMSN  *int
	LastPart *int
}

// SessionData represents EXT-X-SESSION-DATA.
type SessionData struct {
	DataID   string
	Value    string
	URI      string
	Format   string
	Language string
}

// Tiles represents EXT-X-TILES (image-playlist tiling metadata).
type Tiles struct {
	Resolution string
	Layout     string
	Duration   *float64
}

// Playlist is the single normalized record produced by Decode/DecodeFrom.
// A media playlist populates Segments; a multivariant playlist populates
// Playlists/IFramePlaylists/ImagePlaylists/Media and sets IsVariant.
type Playlist struct {
	TargetDuration        int
	Version               int
	HasVersion            bool
	MediaSequence         *int
	DiscontinuitySequence int
	AllowCache            string
	PlaylistType          string
	ProgramDateTime       *time.Time
	IsVariant             bool
	IsEndlist             bool
	IsIFramesOnly         bool
	IsIndependentSegments bool
	IsImagesOnly          bool

	Start           *StartPoint
	ServerControlV  *ServerControl
	PartInfV        *PartInf
	Skip            *Skip
	PreloadHint     *PreloadHint
	ContentSteering *ContentSteering

	Segments         []*Segment
	Playlists        []*VariantPlaylist
	IFramePlaylists  []*VariantPlaylist
	ImagePlaylists   []*VariantPlaylist
	Media            []*Rendition
	Keys             []*Key
	SessionKeys      []*Key
	SegmentMaps      []*Map
	RenditionReports []*RenditionReport
	SessionData      []*SessionData
	Tiles            []*Tiles

	Custom map[string]CustomTag
}

// StateView is the read-only snapshot of decoder state handed to a
// CustomDecoder so it can make decisions without
// being able to mutate the core's own bookkeeping.
type StateView struct {
	Mode       PlaylistMode
	LineNumber int
}

// CustomDecoder decodes a single caller-recognized tag that the core
// dispatcher does not know about. TagName identifies the tag prefix (for
// example "#EXT-X-MY-TAG:") this decoder claims. SegmentTag reports
// whether the decoded value should be attached to the segment currently
// being assembled (true) or to the playlist as a whole (false).
type CustomDecoder interface {
	TagName() string
	Decode(tagName, rawPayload string, view StateView) (CustomTag, error)
	SegmentTag() bool
}

// CustomTag is the decoded representation of a custom tag, keyed by its
// own TagName in the Custom map it is stored into.
type CustomTag interface {
	TagName() string
}
