package netaddr

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressMapping(t *testing.T) {
	v4 := AddrFrom4([4]byte{10, 0, 0, 1})
	assert.Equal(t, FamilyIPv4, v4.Family())
	assert.Equal(t, "10.0.0.1", v4.String())

	mapped := v4.ToV6()
	assert.Equal(t, FamilyIPv6, mapped.Family())
	assert.True(t, mapped.IsMappedV4())
	assert.Equal(t, v4, mapped.UnmapV4())
	assert.NotEqual(t, v4, mapped)

	v6 := AddrFromNetIP(net.ParseIP("2001:db8::1"))
	assert.Equal(t, FamilyIPv6, v6.Family())
	assert.Equal(t, v6, v6.ToV6())
	assert.False(t, v6.IsMappedV4())
}

func TestAddressClassification(t *testing.T) {
	tests := []struct {
		addr     string
		private  bool
		loopback bool
		public   bool
	}{
		{"10.1.2.3", true, false, false},
		{"172.16.0.1", true, false, false},
		{"192.168.1.1", true, false, false},
		{"127.0.0.1", false, true, false},
		{"8.8.8.8", false, false, true},
		{"fd00::1", true, false, false},
		{"::1", false, true, false},
		{"2001:db8::1", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			a := AddrFromNetIP(net.ParseIP(tt.addr))
			assert.Equal(t, tt.private, a.IsPrivate(), "private")
			assert.Equal(t, tt.loopback, a.IsLoopback(), "loopback")
			assert.Equal(t, tt.public, a.IsPublic(), "public")
		})
	}
}

func TestAnyAndNull(t *testing.T) {
	any4 := Any(FamilyIPv4)
	assert.True(t, any4.IsNull())
	assert.Equal(t, "0.0.0.0", any4.String())
	assert.Equal(t, "::", Any(FamilyIPv6).String())

	ep := NewEndpoint(any4, 0)
	assert.True(t, ep.IsNull())
	assert.False(t, NewEndpoint(any4, 80).IsNull())
}

func TestIPNetContains(t *testing.T) {
	base := AddrFromNetIP(net.ParseIP("203.0.113.77"))
	n := NewIPNet(base, 24)
	assert.Equal(t, "203.0.113.0/24", n.String())
	assert.True(t, n.Contains(AddrFromNetIP(net.ParseIP("203.0.113.5"))))
	assert.False(t, n.Contains(AddrFromNetIP(net.ParseIP("203.0.114.5"))))
	assert.False(t, n.Contains(AddrFromNetIP(net.ParseIP("::ffff:203.0.113.5"))))

	n6 := NewIPNet(AddrFromNetIP(net.ParseIP("2001:db8::")), 32)
	assert.True(t, n6.Contains(AddrFromNetIP(net.ParseIP("2001:db8:0:1::5"))))
	assert.False(t, n6.Contains(AddrFromNetIP(net.ParseIP("2001:db9::1"))))
}

func TestIPNetMasksBase(t *testing.T) {
	a := NewIPNet(AddrFromNetIP(net.ParseIP("10.1.2.3")), 16)
	b := NewIPNet(AddrFromNetIP(net.ParseIP("10.1.9.9")), 16)
	assert.Equal(t, a, b)
	assert.Equal(t, "10.1.0.0/16", a.String())

	single := SingleAddressNet(AddrFrom4([4]byte{10, 0, 0, 1}))
	assert.True(t, single.IsAddress())
	assert.EqualValues(t, 32, single.Bits())
}
