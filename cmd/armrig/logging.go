package main

import (
	"io"
	"log"
	"os"
)

// setupLogging points the standard logger at path. With no path, logs go to
// stderr for headless commands and are dropped while a UI owns the screen.
func setupLogging(path string, interactive bool) (*os.File, error) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	if path == "" {
		if interactive {
			log.SetOutput(io.Discard)
		} else {
			log.SetOutput(os.Stderr)
		}
		return nil, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f, nil
}
