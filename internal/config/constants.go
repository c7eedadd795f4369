package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for startup and health checks
const DBPingTimeout = 5 * time.Second

// Admin sessions live for seven days.
const AdminSessionTTL = 7 * 24 * time.Hour

// Background job intervals
const CleanupJobInterval = 5 * time.Minute

// Request body ceilings. Upload routes must clear the 2 MiB file limit plus
// multipart framing overhead; everything else is plain JSON.
const (
	MaxJSONBodySize   = 1 << 20
	MaxUploadBodySize = 3 << 20
)

// MaxLogoFileSize is the inclusive upload file-size ceiling.
const MaxLogoFileSize = 2 * 1024 * 1024
