package ingestion

import (
	"strings"

	"github.com/poiesic/lexfeed/core"
)

// Citation is the display metadata for referencing a document. Derivation is
// deterministic and side-effect free.
type Citation struct {
	Authority     string // display name
	DocumentType  string
	Reference     string // document number, or URL when absent
	FormattedDate string
}

// knownAuthorities maps configuration identifiers to display names.
var knownAuthorities = map[string]string{
	"boverket":          "Boverket (National Board of Housing)",
	"skatteverket":      "Skatteverket (Swedish Tax Agency)",
	"arbetsmiljoverket": "Arbetsmiljöverket (Work Environment Authority)",
}

// DeriveCitation builds citation metadata for a document.
func DeriveCitation(doc *core.RegulatoryDocument) Citation {
	authority := displayAuthority(doc.Authority)

	reference := doc.DocumentNumber
	if reference == "" {
		reference = doc.URL
	}

	date := doc.PublishedAt
	if date.IsZero() {
		date = doc.InsertedAt
	}
	formatted := ""
	if !date.IsZero() {
		formatted = date.UTC().Format("2 January 2006")
	}

	return Citation{
		Authority:     authority,
		DocumentType:  inferDocumentType(doc.Title, doc.DocumentNumber),
		Reference:     reference,
		FormattedDate: formatted,
	}
}

func displayAuthority(id string) string {
	key := strings.ToLower(strings.TrimSpace(id))
	if name, ok := knownAuthorities[key]; ok {
		return name
	}
	if id == "" {
		return "Unknown authority"
	}
	return id
}

// inferDocumentType classifies the document from its title. Falls back to
// "regulation" for anything carrying a document number, "notice" otherwise.
func inferDocumentType(title, documentNumber string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "decision") || strings.Contains(lower, "beslut"):
		return "decision"
	case strings.Contains(lower, "guidance") || strings.Contains(lower, "vägledning"):
		return "guidance"
	case strings.Contains(lower, "amendment") || strings.Contains(lower, "ändring"):
		return "amendment"
	case strings.Contains(lower, "consultation") || strings.Contains(lower, "remiss"):
		return "consultation"
	case documentNumber != "":
		return "regulation"
	default:
		return "notice"
	}
}
