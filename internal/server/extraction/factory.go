package extraction

import "time"

// Options selects and configures an Extractor.
type Options struct {
	Mock    bool
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// New returns a MockClient in mock mode and a real Client otherwise.
func New(opts Options) Extractor {
	if opts.Mock {
		return NewMockClient()
	}
	return NewClient(opts.BaseURL, opts.APIKey, opts.Model, opts.Timeout)
}
