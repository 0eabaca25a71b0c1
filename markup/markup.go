package markup

// Format converts text to HTML by applying every rule in order.
func Format(text string) string {
	return apply(text, false)
}

// FormatInline applies only the inline rules (emphasis, images, links,
// line breaks and non-breaking spaces), leaving block structure untouched.
func FormatInline(text string) string {
	return apply(text, true)
}

func apply(text string, inline bool) string {
	for _, c := range compiledRules() {
		if inline && c.rule.Block {
			continue
		}

		out, err := c.re.Replace(text, c.rule.Replacement, -1, -1)
		if err != nil {
			// Only a match timeout can fail, and none is configured.
			continue
		}

		text = out
	}

	return text
}
