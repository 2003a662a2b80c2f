package config

// SiteConfig holds site-specific configuration for a single hostname.
// This allows pre-seeding rule answers and customizing request behavior
// per audited site.
type SiteConfig struct {
	// Answers pre-seeds the option store for checks of this site. Keys
	// use the persisted option key format, e.g. "global_iconfont" or
	// "table_markup_has_table_data".
	Answers map[string]string `yaml:"answers,omitempty"`

	// Headers are custom HTTP headers to include when fetching this site.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// File represents the structure of the .srcheck configuration file.
type File struct {
	// Sites maps hostnames to their site-specific configurations.
	// Keys should be the bare hostname (e.g., "example.com").
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains default site configuration applied to all sites
	// unless overridden in the site-specific configuration.
	Defaults SiteConfig `yaml:"defaults,omitempty"`

	// ValidatorURL overrides the validator service endpoint.
	ValidatorURL string `yaml:"validatorUrl,omitempty"`
}

// GetSiteConfig returns the configuration for a specific hostname.
// It merges the site-specific configuration over the defaults; answer
// maps are merged key by key so a site only overrides what it sets.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	result := SiteConfig{}

	if len(cf.Defaults.Answers) > 0 || len(cf.Defaults.Headers) > 0 {
		result.Answers = make(map[string]string, len(cf.Defaults.Answers))
		for k, v := range cf.Defaults.Answers {
			result.Answers[k] = v
		}
		result.Headers = make(map[string]string, len(cf.Defaults.Headers))
		for k, v := range cf.Defaults.Headers {
			result.Headers[k] = v
		}
	}

	siteConfig, ok := cf.Sites[host]
	if !ok {
		return result
	}

	if len(siteConfig.Answers) > 0 {
		if result.Answers == nil {
			result.Answers = make(map[string]string, len(siteConfig.Answers))
		}
		for k, v := range siteConfig.Answers {
			result.Answers[k] = v
		}
	}
	if len(siteConfig.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string, len(siteConfig.Headers))
		}
		for k, v := range siteConfig.Headers {
			result.Headers[k] = v
		}
	}

	return result
}
