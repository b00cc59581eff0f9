// Package logging configures the file logger the tool records scan
// activity to.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// DefaultLogFile is where scan activity is recorded when no log file is
// configured.
const DefaultLogFile = "duplicate_finder.log"

// Setup creates a logger writing timestamped plain-text entries to the
// given file, appending across runs. Verbose raises the level to Debug.
// The returned closer releases the log file handle.
func Setup(path string, verbose bool) (*logrus.Logger, io.Closer, error) {
	if path == "" {
		path = DefaultLogFile
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log := logrus.New()
	log.SetOutput(file)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	return log, file, nil
}
