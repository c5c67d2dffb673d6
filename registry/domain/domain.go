package domain

import (
	"net"
	"strconv"
	"time"
)

// Key is the identity of a registration: two registrations with equal keys are the same record.
type Key struct {
	Name    string
	Version string
	Address string
	Port    int
}

// String renders the key as name@version/host:port.
func (k Key) String() string {
	return k.Name + "@" + k.Version + "/" + net.JoinHostPort(k.Address, strconv.Itoa(k.Port))
}

// Record is one live instance of one service version at one endpoint.
type Record struct {
	Name     string
	Version  string
	Address  string // host or IP, not checked for reachability
	Port     int
	LastSeen time.Time // last register or refresh
}

// Key returns the identity of r.
func (r Record) Key() Key {
	return Key{Name: r.Name, Version: r.Version, Address: r.Address, Port: r.Port}
}

// HostPort returns the dialable address of r.
func (r Record) HostPort() string {
	return net.JoinHostPort(r.Address, strconv.Itoa(r.Port))
}
