package request

import "strings"

type ClientType string

const (
	ClientWeb ClientType = "web"
	ClientCLI ClientType = "cli"
)

// ResolveClientType trusts an explicit X-Client-Type header and otherwise
// treats browsers as web clients.
func ResolveClientType(header, userAgent string) ClientType {
	switch strings.ToLower(strings.TrimSpace(header)) {
	case string(ClientCLI):
		return ClientCLI
	case string(ClientWeb):
		return ClientWeb
	}
	if strings.Contains(userAgent, "Mozilla") {
		return ClientWeb
	}
	return ClientCLI
}

func IsWebClient(t ClientType) bool {
	return t == ClientWeb
}
