package oracle

import (
	"encoding/json"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// cleanModelJSON strips the wrappers models add despite instructions:
// markdown fences, leading prose, trailing commentary. It keeps the first
// balanced-looking JSON object or array it can locate.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	// Keep only the outermost JSON value if prose surrounds it.
	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")
	switch {
	case arrStart != -1 && (objStart == -1 || arrStart < objStart):
		if end := strings.LastIndex(s, "]"); end > arrStart {
			s = s[arrStart : end+1]
		}
	case objStart != -1:
		if end := strings.LastIndex(s, "}"); end > objStart {
			s = s[objStart : end+1]
		}
	}

	return strings.TrimSpace(s)
}

// decodeModelJSON cleans raw model output and unmarshals it into out,
// falling back to a repair pass for near-JSON (single quotes, trailing
// commas, unclosed brackets). The caller never sees a parse error from a
// salvageable payload; a truly irrecoverable one returns the unmarshal
// error for the adapter to swallow.
func decodeModelJSON(raw string, out interface{}) error {
	clean := cleanModelJSON(raw)

	if err := json.Unmarshal([]byte(clean), out); err == nil {
		return nil
	}

	repaired, err := jsonrepair.RepairJSON(clean)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(repaired), out)
}
