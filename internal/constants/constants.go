// Package constants defines application-wide constants and default values.
package constants

import "time"

const (
	AppName    = "VibeFlix"
	AppVersion = "1.0.0"

	// Default configuration values
	DefaultPort     = "5000"
	DefaultLogLevel = "info"
	DefaultLocale   = "en"

	// PlaceholderAPIKey is the value shipped in sample configuration
	PlaceholderAPIKey = "YOUR_TMDB_API_KEY_HERE"

	// Catalog service endpoints
	TMDBBaseURL          = "https://api.themoviedb.org/3"
	TMDBImageBaseURL     = "https://image.tmdb.org/t/p/w500"
	TMDBBackdropBaseURL  = "https://image.tmdb.org/t/p/original"
	PlaceholderPosterURL = "https://images.unsplash.com/photo-1536440136628-849c177e76a1?auto=format&fit=crop&w=300&q=80"
	PlaceholderDetailURL = "https://images.unsplash.com/photo-1536440136628-849c177e76a1?auto=format&fit=crop&w=500&q=80"
	TMDBSettingsURL      = "https://www.themoviedb.org/settings/api"

	// Session storage
	DefaultSessionCapacity = 1000
	DefaultSessionTTL      = 24 * time.Hour
	SessionCookie          = "vibeflix_session"

	// Rate limiting of incoming requests
	DefaultRateLimitRPS   = 10
	DefaultRateLimitBurst = 20
)

// Rendering constants
const (
	SkeletonCards       = 12
	CardStaggerSeconds  = 0.05
	MaxCardGenres       = 2
	OverlayTransitionMS = 300
)
