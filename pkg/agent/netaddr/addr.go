package netaddr

import (
	"fmt"
	"net"
)

// Family tags the address family of an Address.
type Family uint8

const (
	FamilyUnknown Family = iota
	FamilyIPv4
	FamilyIPv6
)

// MaxLen is the size of the fixed address buffer, large enough for IPv6.
const MaxLen = 16

// Length returns the number of significant address bytes for the family.
func (f Family) Length() int {
	switch f {
	case FamilyIPv4:
		return 4
	case FamilyIPv6:
		return 16
	}
	return 0
}

func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	}
	return "unknown"
}

// v4MappedPrefix is the ::ffff:0:0/96 prefix used to embed IPv4 into IPv6.
var v4MappedPrefix = [12]byte{10: 0xff, 11: 0xff}

// Address is an IPv4 or IPv6 address held in a fixed 16-byte buffer plus a
// family tag. The zero value is the invalid address. Addresses are comparable
// and can be used as map keys; equality is over the tag-normalized bytes.
type Address struct {
	data   [MaxLen]byte
	family Family
}

// AddrFrom4 builds an IPv4 address.
func AddrFrom4(b [4]byte) Address {
	a := Address{family: FamilyIPv4}
	copy(a.data[:4], b[:])
	return a
}

// AddrFrom16 builds an IPv6 address.
func AddrFrom16(b [16]byte) Address {
	return Address{data: b, family: FamilyIPv6}
}

// AddrFromSlice builds an address from 4 or 16 raw bytes.
func AddrFromSlice(b []byte) (Address, error) {
	switch len(b) {
	case 4:
		var v [4]byte
		copy(v[:], b)
		return AddrFrom4(v), nil
	case 16:
		var v [16]byte
		copy(v[:], b)
		return AddrFrom16(v), nil
	}
	return Address{}, fmt.Errorf("invalid address length %d", len(b))
}

// AddrFromNetIP converts a net.IP, preserving its 4-byte form when present.
func AddrFromNetIP(ip net.IP) Address {
	if v4 := ip.To4(); v4 != nil {
		var b [4]byte
		copy(b[:], v4)
		return AddrFrom4(b)
	}
	if v6 := ip.To16(); v6 != nil {
		var b [16]byte
		copy(b[:], v6)
		return AddrFrom16(b)
	}
	return Address{}
}

// Any returns the family's all-zero wildcard address.
func Any(family Family) Address {
	return Address{family: family}
}

func (a Address) Family() Family {
	return a.family
}

func (a Address) IsValid() bool {
	return a.family != FamilyUnknown
}

// Data returns the significant address bytes.
func (a Address) Data() []byte {
	return a.data[:a.family.Length()]
}

// IsNull reports whether the address is all zero (including the invalid address).
func (a Address) IsNull() bool {
	return a.data == [MaxLen]byte{}
}

// ToV6 maps an IPv4 address into the ::ffff:0:0/96 prefix. IPv6 addresses are
// returned unchanged.
func (a Address) ToV6() Address {
	if a.family != FamilyIPv4 {
		return a
	}
	var b [16]byte
	copy(b[:12], v4MappedPrefix[:])
	copy(b[12:], a.data[:4])
	return AddrFrom16(b)
}

// IsMappedV4 reports whether the address is an IPv4 address embedded in the
// v4-in-v6 mapped prefix.
func (a Address) IsMappedV4() bool {
	if a.family != FamilyIPv6 {
		return false
	}
	var prefix [12]byte
	copy(prefix[:], a.data[:12])
	return prefix == v4MappedPrefix
}

// UnmapV4 undoes ToV6 where applicable.
func (a Address) UnmapV4() Address {
	if !a.IsMappedV4() {
		return a
	}
	var b [4]byte
	copy(b[:], a.data[12:])
	return AddrFrom4(b)
}

func (a Address) netIP() net.IP {
	return net.IP(a.Data())
}

// IsLoopback reports 127.0.0.0/8 and ::1.
func (a Address) IsLoopback() bool {
	return a.IsValid() && a.netIP().IsLoopback()
}

// IsPrivate reports RFC1918 ranges and fc00::/7.
func (a Address) IsPrivate() bool {
	return a.IsValid() && a.netIP().IsPrivate()
}

// IsPublic reports whether the address is neither private, loopback,
// link-local nor unspecified.
func (a Address) IsPublic() bool {
	if !a.IsValid() || a.IsNull() {
		return false
	}
	ip := a.netIP()
	return !ip.IsPrivate() && !ip.IsLoopback() && !ip.IsLinkLocalUnicast() && !ip.IsLinkLocalMulticast()
}

func (a Address) String() string {
	switch a.family {
	case FamilyIPv4, FamilyIPv6:
		return a.netIP().String()
	}
	return "<invalid>"
}
