package repository

import "os"

// Option applies a configuration option to the CSVStore.
type Option func(*CSVStore)

// WithPath maps a sport to its snapshot file.
func WithPath(sport, path string) Option {
	return func(s *CSVStore) {
		if sport != "" && path != "" {
			s.paths[sport] = path
		}
	}
}

// WithFileMode sets the permission bits of written snapshots.
func WithFileMode(mode os.FileMode) Option {
	return func(s *CSVStore) {
		if mode != 0 {
			s.fileMode = mode
		}
	}
}

// WithPaths maps several sports at once; empty paths are skipped.
func WithPaths(paths map[string]string) Option {
	return func(s *CSVStore) {
		for sport, path := range paths {
			WithPath(sport, path)(s)
		}
	}
}
