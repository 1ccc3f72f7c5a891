package snapshot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options controls how a Layout writes and reads snapshots.
type Options struct {
	// Compress stores the data region as a single zstd frame.
	Compress bool `yaml:"compress"`

	// Align pads the data region and every section to 8 bytes so that
	// sections can be aliased in place.
	Align bool `yaml:"align"`

	// ZeroCopy makes Decode alias section bytes as element slices instead of
	// copying them, for element types without padding or bools. For
	// uncompressed snapshots the decoded context then shares memory with the
	// input buffer, which must outlive it and must not be modified.
	ZeroCopy bool `yaml:"zero_copy"`

	// CheckAlignment verifies the memory alignment of each section before
	// aliasing it and copies misaligned sections instead.
	CheckAlignment bool `yaml:"check_alignment"`
}

// LoadOptions reads Options from a YAML file. Keys that are absent keep the
// values already in opts.
func LoadOptions(path string, opts Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("snapshot: options %s: %w", path, err)
	}
	return opts, nil
}
