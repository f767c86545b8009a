package net

import (
	"net"
	"strconv"

	"github.com/pkg/errors"
)

type IPv4Addr string

var ErrNoValidNetworkInterfaceFound = errors.New("no valid network interface found")

// FindAvailableIPv4Addr returns the first IPv4 address of an up, non-loopback
// interface.
func FindAvailableIPv4Addr() (IPv4Addr, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", errors.Wrap(err, "list interfaces")
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			return "", errors.Wrapf(err, "list addresses of %s", iface.Name)
		}
		for _, addr := range addrs {
			if ipNet, ok := addr.(*net.IPNet); ok {
				if ip4 := ipNet.IP.To4(); ip4 != nil {
					return IPv4Addr(ip4.String()), nil
				}
			}
		}
	}
	return "", ErrNoValidNetworkInterfaceFound
}

// AdvertiseAddr turns a listen address into the host and port other services
// should use to reach it. Wildcard hosts are replaced by an interface address.
func AdvertiseAddr(addr net.Addr) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "", 0, errors.Wrapf(err, "split address %s", addr)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, errors.Wrapf(err, "parse port %s", portStr)
	}
	ip := net.ParseIP(host)
	if host != "" && (ip == nil || !ip.IsUnspecified()) {
		return host, port, nil
	}
	found, err := FindAvailableIPv4Addr()
	if err != nil {
		return "", 0, err
	}
	return string(found), port, nil
}
