// Package nodemeta carries the identity of the node the agent runs on.
package nodemeta

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	"github.com/conntrail/conntrail/pkg/agent/netaddr"
)

var (
	once       sync.Once
	nodeName   string
	instanceID string
)

// Init resolves the node identity. Failing to determine the hostname is the
// one startup error the agent does not work around.
func Init() error {
	var err error
	once.Do(func() {
		nodeName, err = os.Hostname()
		if err != nil {
			err = fmt.Errorf("failed to determine hostname: %w", err)
			return
		}
		if env := os.Getenv("NODE_NAME"); env != "" {
			nodeName = env
		}
		instanceID = uuid.NewString()
	})
	return err
}

func NodeName() string {
	return nodeName
}

// InstanceID identifies this agent process across reconnects.
func InstanceID() string {
	return instanceID
}

// HostIPs discovers the public global unicast addresses of the node's own
// interfaces; private, loopback and link-local addresses are skipped. They seed the known-public-IP set until the aggregator
// publishes its own view.
func HostIPs() []netaddr.Address {
	links, err := netlink.LinkList()
	if err != nil {
		log.Errorf("failed get host link list: %v", err)
		return nil
	}

	var ret []netaddr.Address
	for _, link := range links {
		for _, family := range []int{unix.AF_INET, unix.AF_INET6} {
			addrs, err := netlink.AddrList(link, family)
			if err != nil {
				log.Errorf("failed get addrs from link %s: %v", link.Attrs().Name, err)
				continue
			}
			for _, addr := range addrs {
				if !addr.IP.IsGlobalUnicast() {
					continue
				}
				a := netaddr.AddrFromNetIP(addr.IP)
				if a.IsValid() && a.IsPublic() {
					ret = append(ret, a)
				}
			}
		}
	}
	return ret
}
