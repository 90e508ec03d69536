package config

import (
	"fmt"
	"net/url"
)

// ProxyAuth carries proxy credentials. It is only attached to a ProxyConfig
// when both fields resolve, so callers can distinguish "no auth" from
// partially configured credentials.
type ProxyAuth struct {
	Username string
	Password string
}

// ProxyConfig describes an outbound HTTP proxy.
type ProxyConfig struct {
	Protocol string
	Host     string
	Port     string
	Auth     *ProxyAuth
}

// ResolveProxy reads the proxy block from the provider. It returns nil when
// proxy usage is disabled or any required field is missing, which callers must
// treat as "no proxy". Credentials are attached only when both username and
// password are present.
func ResolveProxy(p Provider) *ProxyConfig {
	if !GetBool(p, KeyProxyUse, false) {
		return nil
	}

	protocol, ok := p.Get(KeyProxyProtocol)
	if !ok {
		return nil
	}
	host, ok := p.Get(KeyProxyHost)
	if !ok {
		return nil
	}
	port, ok := p.Get(KeyProxyPort)
	if !ok {
		return nil
	}

	cfg := &ProxyConfig{
		Protocol: protocol,
		Host:     host,
		Port:     port,
	}

	username, hasUser := p.Get(KeyProxyAuthUsername)
	password, hasPass := p.Get(KeyProxyAuthPassword)
	if hasUser && hasPass {
		cfg.Auth = &ProxyAuth{Username: username, Password: password}
	}

	return cfg
}

// URL builds the proxy URL for http.Transport.Proxy.
func (c *ProxyConfig) URL() (*url.URL, error) {
	u, err := url.Parse(fmt.Sprintf("%s://%s:%s", c.Protocol, c.Host, c.Port))
	if err != nil {
		return nil, fmt.Errorf("invalid proxy configuration: %w", err)
	}
	if c.Auth != nil {
		u.User = url.UserPassword(c.Auth.Username, c.Auth.Password)
	}
	return u, nil
}
