package removal

// Kind identifies a background removal engine family.
type Kind string

const (
	// KindSession is the session-based matting engine (fast).
	KindSession Kind = "rembg"

	// KindDeep is the deep segmentation engine (high quality).
	KindDeep Kind = "rmbg2"
)

// ParseKind maps an engine name to a Kind. Empty input selects the
// session engine.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindSession, KindDeep:
		return Kind(s), true
	case "":
		return KindSession, true
	default:
		return "", false
	}
}

// Well-known model identifiers.
const (
	// DefaultSessionModel is used when no session model is requested.
	DefaultSessionModel = "isnet-general-use"

	// FallbackSessionModel is the lightweight known-good model tried
	// once when the requested session model fails to load.
	FallbackSessionModel = "u2netp"

	// DeepModelID identifies the deep segmentation model.
	DeepModelID = "briaai/RMBG-2.0"
)

// ModelInfo describes the characteristics of a session model.
type ModelInfo struct {
	Size    string
	Quality string
	Speed   string
	BestFor string
}

// SessionModels catalogs the supported session matting models.
var SessionModels = map[string]ModelInfo{
	"u2netp":            {Size: "4.7MB", Quality: "good", Speed: "fast", BestFor: "general"},
	"u2net":             {Size: "176MB", Quality: "excellent", Speed: "slow", BestFor: "complex"},
	"isnet-general-use": {Size: "170MB", Quality: "excellent", Speed: "medium", BestFor: "objects"},
	"isnet-anime":       {Size: "170MB", Quality: "excellent", Speed: "medium", BestFor: "anime/icons"},
	"silueta":           {Size: "43MB", Quality: "good", Speed: "very fast", BestFor: "silhouettes"},
	"birefnet-general":  {Size: "900MB", Quality: "best", Speed: "slow", BestFor: "high-quality"},
}

// KnownSessionModel reports whether name is in the session model catalog.
func KnownSessionModel(name string) bool {
	_, ok := SessionModels[name]
	return ok
}
