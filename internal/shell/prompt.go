package shell

import "strings"

// prompt returns the prompt stored under the configured key, or the default
// prompt when it is unset or empty.
func (s *Shell) prompt() string {
	if p, ok := s.env.Get(s.config.PromptEnv); ok && p != "" {
		return p
	}
	return s.config.DefaultPrompt
}

// setPrompt stores value as the prompt, minus one pair of surrounding double
// quotes.
func (s *Shell) setPrompt(value string) error {
	if len(value) > 1 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = value[1 : len(value)-1]
	}
	return s.env.Set(s.config.PromptEnv, value)
}
