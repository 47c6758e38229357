package config

// ProviderConfig exposes the identity-provider settings consumed from the
// environment. The gateway treats these as already resolved; it never loads
// configuration inside business logic.
type ProviderConfig interface {
	GetGoogleClientID() string
	GetGoogleClientSecret() string
	GetGoogleTokenURL() string
	GetGoogleUserinfoURL() string
	GetAuthentikURL() string
	GetAuthentikClientID() string
}

type Providers struct{}

var _ ProviderConfig = Providers{}

func (Providers) GetGoogleClientID() string {
	return GetEnv("GOOGLE_CLIENT_ID", "")
}

func (Providers) GetGoogleClientSecret() string {
	return GetEnv("GOOGLE_CLIENT_SECRET", "")
}

func (Providers) GetGoogleTokenURL() string {
	return GetEnv("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token")
}

func (Providers) GetGoogleUserinfoURL() string {
	return GetEnv("GOOGLE_USERINFO_URL", "https://www.googleapis.com/oauth2/v3/userinfo")
}

// GetAuthentikURL returns the Authentik base URL. Empty means the provider
// is not configured and must never be called.
func (Providers) GetAuthentikURL() string {
	return GetEnv("AUTHENTIK_URL", "")
}

func (Providers) GetAuthentikClientID() string {
	return GetEnv("AUTHENTIK_CLIENT_ID", "")
}
