// Package validation checks calculator inputs before they reach the engines.
// Every failure wraps ErrInvalidInput, and a single call reports all of the
// problems it finds rather than stopping at the first one.
package validation

import (
	"strings"

	"github.com/iwvelando/toolhub/pkg/constants"
)

var outputFormats = []string{constants.OutputFormatPretty, constants.OutputFormatCSV}

// ValidateOutputFormat accepts the report formats the output package can
// render. Names are matched exactly.
func ValidateOutputFormat(format string) error {
	for _, supported := range outputFormats {
		if format == supported {
			return nil
		}
	}
	var c checker
	c.fail("format", "Output format %q is not supported, use one of %s", format, strings.Join(outputFormats, ", "))
	return c.err
}
