package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNoCurrentTrack    = errors.New("nothing is playing")
	ErrTrackNotFound     = errors.New("track not found")
	ErrServerUnreachable = errors.New("player server unreachable")
	ErrPlayerNotFound    = errors.New("playback binary not found")
	ErrQuotaExceeded     = errors.New("api quota exceeded")
	ErrNotConfigured     = errors.New("service not configured")
	ErrNetworkError      = errors.New("network error")
	ErrTimeout           = errors.New("request timeout")
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// SonicError wraps an error with a user-friendly suggestion.
type SonicError struct {
	Err        error
	Suggestion string
}

func (e *SonicError) Error() string {
	return e.Err.Error()
}

func (e *SonicError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &SonicError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check if it's already a SonicError with suggestion
	var sonicErr *SonicError
	if errors.As(err, &sonicErr) && sonicErr.Suggestion != "" {
		return sonicErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Server errors
	if errors.Is(err, ErrServerUnreachable) || strings.Contains(errStr, "connection refused") {
		return "Run 'sonic serve' (or 'sonic tui') in another terminal to start the player"
	}

	// Playback backend errors
	if errors.Is(err, ErrPlayerNotFound) || strings.Contains(errStr, "executable file not found") {
		return "Install mpv, or point player.binary in your config at a compatible player"
	}

	// Nothing playing
	if errors.Is(err, ErrNoCurrentTrack) || strings.Contains(errStr, "nothing is playing") {
		return "Start something with 'sonic play <query>'"
	}

	// Track errors
	if errors.Is(err, ErrTrackNotFound) || strings.Contains(errStr, "track not found") {
		return "Try a broader search query"
	}

	// Quota errors
	if errors.Is(err, ErrQuotaExceeded) || strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "403") {
		return "The search API quota is exhausted. Try again tomorrow or use a different api_key"
	}

	// Configuration errors
	if errors.Is(err, ErrNotConfigured) || strings.Contains(errStr, "not configured") {
		return "Add the missing api_key to ~/.config/sonic/config.toml or set the SONIC_* environment variable"
	}

	// Network errors
	if errors.Is(err, ErrNetworkError) || errors.Is(err, ErrTimeout) ||
		strings.Contains(errStr, "network") || strings.Contains(errStr, "timeout") {
		return "Check your internet connection and try again"
	}

	// Config errors
	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) ||
		strings.Contains(errStr, "config") {
		return "Check ~/.config/sonic/config.toml for mistakes"
	}

	// Server errors
	if strings.Contains(errStr, "500") || strings.Contains(errStr, "server error") {
		return "The upstream service is having issues. Try again in a moment"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
