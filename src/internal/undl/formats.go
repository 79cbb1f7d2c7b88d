package undl

import "fmt"

// DefaultFormat is the output-format name used when none (or an unknown one)
// is requested.
const DefaultFormat = "marcxml"

// formatCodes maps public output-format names to the catalog's format codes.
var formatCodes = map[string]string{
	"bibtex":     "btex",
	"marc":       "hm",
	"marcxml":    "xm",
	"dublincore": "xd",
	"endnote":    "xe",
	"nlm":        "xn",
	"refworks":   "xw",
	"ris":        "ris",
}

// Kind enumerates the response payload kinds the client knows how to decode.
// The set is closed: decoding dispatches exhaustively and anything outside it
// fails with ErrUnsupportedKind.
type Kind int

const (
	// KindMARCXML is a MARCXML payload projected into flattened records.
	KindMARCXML Kind = iota
	// KindJSON is the lightweight JSON hits payload, passed through.
	KindJSON
)

func (k Kind) String() string {
	switch k {
	case KindMARCXML:
		return "marcxml"
	case KindJSON:
		return "json"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}
