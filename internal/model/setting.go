package model

import "time"

// Setting is a key/value configuration row. Sensitive values (such as the
// quote provider API token) are stored fernet-encrypted.
type Setting struct {
	Key       string
	Value     string
	Encrypted bool
	UpdatedAt time.Time
}

// Setting keys currently in use.
const (
	SettingQuoteAPIToken = "quote_api_token"
)
