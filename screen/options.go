package screen

type config struct {
	events      EventSource
	moreContext int
	prompt      Style
}

func defaultConfig() config {
	return config{moreContext: 1}
}

// Option configures a WrapBuffer.
type Option func(*config)

// WithEvents supplies the input source the paging prompt waits on. Without
// one the prompt is skipped and output scrolls freely.
func WithEvents(ev EventSource) Option {
	return func(c *config) { c.events = ev }
}

// WithMoreContext sets how many lines of already-seen text stay visible
// above fresh output when the paging prompt fires. The default is 1.
func WithMoreContext(n int) Option {
	return func(c *config) { c.moreContext = n }
}

// WithPromptStyle sets the style of the "[more]" prompt.
func WithPromptStyle(s Style) Option {
	return func(c *config) { c.prompt = s }
}
