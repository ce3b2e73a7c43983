package sanitize

import "github.com/microcosm-cc/bluemonday"

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// HTML cleans user-generated markup, keeping the tags a comment or rich-text
// fragment is allowed to carry.
func HTML(input string) string {
	return ugc.Sanitize(input)
}

// Plain strips all markup; for titles and short descriptions.
func Plain(input string) string {
	return strict.Sanitize(input)
}
