package measurement

// DebugReport is the body returned by the validation endpoint.
type DebugReport struct {
	HitParsingResult []HitParsingResult `json:"hitParsingResult"`
	ParserMessage    []ParserMessage    `json:"parserMessage"`
}

// HitParsingResult is the verdict for one submitted hit.
type HitParsingResult struct {
	Valid         bool            `json:"valid"`
	Hit           string          `json:"hit"`
	ParserMessage []ParserMessage `json:"parserMessage"`
}

// ParserMessage describes a single validation finding.
type ParserMessage struct {
	MessageType string `json:"messageType"`
	Description string `json:"description"`
	MessageCode string `json:"messageCode,omitempty"`
	Parameter   string `json:"parameter,omitempty"`
}

// Valid reports whether the first parsed hit was accepted.
// A report without any result is not valid.
func (r DebugReport) Valid() bool {
	return len(r.HitParsingResult) > 0 && r.HitParsingResult[0].Valid
}

// Problems lists the descriptions attached to the first parsed hit.
func (r DebugReport) Problems() []string {
	if len(r.HitParsingResult) == 0 {
		return nil
	}

	msgs := r.HitParsingResult[0].ParserMessage
	out := make([]string, 0, len(msgs))

	for _, m := range msgs {
		if m.Parameter != "" {
			out = append(out, m.Parameter+": "+m.Description)

			continue
		}

		out = append(out, m.Description)
	}

	return out
}
