package logger

import "github.com/rs/zerolog"

// Reset drops the singleton so the next Init rebuilds it.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	instance = nil
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}
