package constants

import "time"

const (
	// a cached token is reused only while it has at least this much validity left
	TokenExpirySkew = 10 * time.Second

	TopScoresLimit = 3
)

const (
	ExternalAPITimeout = 10 * time.Second
	StorageTimeout     = 5 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	ReportsFile  = "reports.json"
	ProfilesFile = "profiles.json"
	DeviceIDFile = "device_id"
)
