package ghkk

import (
	"fmt"
	"io"
)

// ProfileRenderer writes a /user payload as labelled lines.
type ProfileRenderer struct {
	Out     io.Writer
	Log     *DebugLogger
	Verbose bool

	// Label decorates a "Label:" prefix. Nil leaves it plain.
	Label func(string) string

	// JSON decorates the pretty-printed document in verbose mode. Nil leaves it plain.
	JSON func(string) string
}

// Render parses payload and writes the summary. It returns false, writing
// nothing to Out, when the payload is not a valid profile.
func (r *ProfileRenderer) Render(payload []byte) bool {
	profile, err := ParseProfile(payload)
	if err != nil {
		r.Log.Error("Failed to parse user profile: %v", err)
		if r.Verbose {
			r.Log.Error("Raw response: %s", truncateForLog(string(payload), 4000))
		}
		return false
	}

	fmt.Fprintf(r.Out, "%s %s\n", r.label("Active GitHub User:"), profile.Login)
	for _, f := range profile.Fields() {
		fmt.Fprintf(r.Out, "%s %s\n", r.label(f.Label+":"), f.Value)
	}

	if r.Verbose {
		pretty, err := PrettyJSON(payload)
		if err != nil {
			pretty = string(payload)
		}
		if r.JSON != nil {
			pretty = r.JSON(pretty)
		}
		fmt.Fprintf(r.Out, "\n%s\n%s\n", r.label("Full response:"), pretty)
	}
	return true
}

func (r *ProfileRenderer) label(s string) string {
	if r.Label == nil {
		return s
	}
	return r.Label(s)
}
