package protocol

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// NewDialer returns the dialer shared by both transports.
//
// With an empty proxyAddress the dialer connects directly. Otherwise
// proxyAddress names a SOCKS5 proxy in "host:port" or
// "user:password@host:port" format and every connection is tunnelled
// through it. The timeout bounds connection establishment only.
func NewDialer(proxyAddress string, timeout time.Duration) (proxy.ContextDialer, error) {
	direct := &net.Dialer{Timeout: timeout}
	if proxyAddress == "" {
		return direct, nil
	}

	auth, hostPort, err := parseProxyAddress(proxyAddress)
	if err != nil {
		return nil, err
	}

	d, err := proxy.SOCKS5("tcp", hostPort, auth, direct)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
	}

	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("SOCKS5 dialer does not support contexts: %w", ErrInvalidProxyAddress)
	}
	return cd, nil
}

// parseProxyAddress splits optional credentials from a proxy address.
func parseProxyAddress(address string) (*proxy.Auth, string, error) {
	var auth *proxy.Auth
	hostPort := address

	if at := strings.LastIndex(address, "@"); at >= 0 {
		user, password, _ := strings.Cut(address[:at], ":")
		if user == "" {
			return nil, "", ErrInvalidProxyAddress
		}
		auth = &proxy.Auth{User: user, Password: password}
		hostPort = address[at+1:]
	}

	if err := ValidateAddress(hostPort); err != nil {
		return nil, "", ErrInvalidProxyAddress
	}
	return auth, hostPort, nil
}

// ValidateAddress checks that address is in "host:port" format with a
// non-empty host and a port between 1 and 65535.
func ValidateAddress(address string) error {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return ErrInvalidAddress
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return ErrInvalidAddress
	}
	return nil
}
