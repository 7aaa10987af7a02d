package websave

import "strings"

// Format determines which output artifacts a conversion produces.
type Format string

// Output formats.
const (
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "markdown"
	FormatBoth     Format = "both"
)

// ParseFormat parses a string into a Format.
// Returns EINVALID for unknown formats.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "pdf":
		return FormatPDF, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "both":
		return FormatBoth, nil
	default:
		return "", Errorf(EINVALID, "invalid format %q", s)
	}
}

func (f Format) String() string {
	return string(f)
}

// Extensions returns the file extensions (without dot) produced for
// this format, in the order they are written.
func (f Format) Extensions() []string {
	switch f {
	case FormatPDF:
		return []string{"pdf"}
	case FormatMarkdown:
		return []string{"md"}
	case FormatBoth:
		return []string{"pdf", "md"}
	default:
		return nil
	}
}

// IncludesPDF reports whether the format produces a PDF artifact.
func (f Format) IncludesPDF() bool {
	return f == FormatPDF || f == FormatBoth
}

// IncludesMarkdown reports whether the format produces a Markdown artifact.
func (f Format) IncludesMarkdown() bool {
	return f == FormatMarkdown || f == FormatBoth
}
