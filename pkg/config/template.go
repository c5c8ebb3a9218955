package config

import (
	"bytes"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every option with its default.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format.
	Format FileFormat
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	format := opts.Format
	if format == "" {
		format = FileFormatYAML
	}

	switch format {
	case FileFormatJSON:
		// JSON has no comments, so the template is the default configuration.
		return NewConfig().ToJSON()
	case FileFormatYAML, FileFormatTOML:
	default:
		return nil, fmt.Errorf("unknown template format %q", format)
	}

	if opts.Full {
		return generateFullTemplate(format), nil
	}
	return generateMinimalTemplate(format), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate(format FileFormat) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")
	for _, key := range []string{"print_width", "indent_width", "use_tabs", "quotes", "hex_case"} {
		option, _ := LookupOption(key)
		writeOption(&buf, format, option, false)
	}
	buf.WriteString("\n# File patterns to skip (glob patterns)\n")
	if format == FileFormatTOML {
		buf.WriteString("# ignore = [\"vendor/**\", \"node_modules/**\"]\n")
	} else {
		buf.WriteString("# ignore:\n#   - \"vendor/**\"\n#   - \"node_modules/**\"\n")
	}

	return buf.Bytes()
}

// generateFullTemplate documents every option.
func generateFullTemplate(format FileFormat) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n#\n# This template lists every option with its default value.\n# Uncomment and modify settings as needed.\n\n")

	for _, option := range Options() {
		if option.Kind == KindStringList {
			continue
		}
		writeOption(&buf, format, option, true)
	}

	return buf.Bytes()
}

func writeOption(buf *bytes.Buffer, format FileFormat, option Option, commented bool) {
	buf.WriteString("# " + wrapComment(option.Description, commentWrapWidth) + "\n")
	if len(option.Values) > 0 {
		buf.WriteString("# Values: " + strings.Join(option.Values, ", ") + "\n")
	}

	prefix := ""
	if commented || option.Kind == KindBool && option.Default != "false" && option.Default != "true" {
		prefix = "# "
	}

	value := option.Default
	switch option.Kind {
	case KindString, KindEnum:
		if value == "none" {
			prefix = "# "
		}
		value = fmt.Sprintf("%q", value)
	case KindBool:
		if value != "true" && value != "false" {
			value = "false"
		}
	}

	if format == FileFormatTOML {
		fmt.Fprintf(buf, "%s%s = %s\n\n", prefix, option.Key, value)
		return
	}
	fmt.Fprintf(buf, "%s%s: %s\n\n", prefix, option.Key, value)
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# cssfmt configuration
# See: https://github.com/yaklabco/cssfmt`
}
