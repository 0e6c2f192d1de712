package mdinline

// ParseOption configures parsing behavior.
type ParseOption func(*parseConfig)

type parseConfig struct {
	literalTriple bool
}

func newParseConfig(opts []ParseOption) parseConfig {
	cfg := parseConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithLiteralBoldOrItalic makes the parser keep *** as literal text instead of
// failing with *UnsupportedTokenError. The literal is merged into the
// neighbouring text leaf.
func WithLiteralBoldOrItalic(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.literalTriple = enabled
	}
}
