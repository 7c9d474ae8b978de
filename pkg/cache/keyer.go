package cache

// ResultKeyOpts holds the options that change a mining result for an
// otherwise identical configuration and dataset.
type ResultKeyOpts struct {
	Limit int `json:"limit,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey returns the key for the missing rows of the dataset whose
	// hash is datasetHash under config (as rendered by row.Config.String).
	ResultKey(config, datasetHash string, opts ResultKeyOpts) string
}

// DefaultKeyer produces keys of the form "result:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(config, datasetHash string, opts ResultKeyOpts) string {
	return hashKey("result", config, datasetHash, opts)
}
