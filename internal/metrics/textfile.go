package metrics

import (
	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/mdbook-force-relative-links/internal/foundation/errors"
)

// WriteTextfile writes every metric gathered from g to path in the Prometheus text
// exposition format. The file is replaced atomically, so a node_exporter textfile
// collector never sees a partial write.
func WriteTextfile(g prom.Gatherer, path string) error {
	if err := prom.WriteToTextfile(path, g); err != nil {
		return ferrors.FileSystemError("failed to write metrics textfile").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
