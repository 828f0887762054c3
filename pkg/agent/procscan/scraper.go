package procscan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/prometheus/procfs"
	log "github.com/sirupsen/logrus"

	"github.com/conntrail/conntrail/pkg/agent/conntrack"
)

// DefaultProcRoot is where the host's proc filesystem is expected unless
// configured otherwise (e.g. /host/proc when running containerized).
const DefaultProcRoot = "/proc"

// Scraper walks a proc filesystem and attributes kernel sockets to
// containers by correlating fd inode sets, network-namespace inodes and
// cgroup membership. All file handles are scoped to a single Scrape call.
type Scraper struct {
	procRoot string
	fs       procfs.FS
}

func NewScraper(procRoot string) (*Scraper, error) {
	if procRoot == "" {
		procRoot = DefaultProcRoot
	}
	fs, err := procfs.NewFS(procRoot)
	if err != nil {
		return nil, fmt.Errorf("failed open proc root %s: %w", procRoot, err)
	}
	return &Scraper{procRoot: procRoot, fs: fs}, nil
}

// Scrape reads all container connections, and listening endpoints when
// withListenEndpoints is set, in a single pass. Per-process errors are
// logged at debug level and skipped; only an unreadable proc root fails the
// scrape.
func (s *Scraper) Scrape(withListenEndpoints bool) ([]conntrack.Connection, []conntrack.ContainerEndpoint, error) {
	procs, err := s.fs.AllProcs()
	if err != nil {
		return nil, nil, fmt.Errorf("failed list processes under %s: %w", s.procRoot, err)
	}

	// netns inode -> socket inode -> connection info
	connsByNS := make(map[uint32]map[uint64]connInfo)
	// container id -> netns inode -> socket inodes
	socketsByContainer := make(map[string]map[uint32]map[uint64]struct{})

	for _, p := range procs {
		containerID, ok := s.containerOf(p)
		if !ok {
			continue
		}

		netns, ok := s.netnsOf(p)
		if !ok {
			continue
		}

		inodes, ok := s.socketInodesOf(p)
		if !ok || len(inodes) == 0 {
			continue
		}

		nsSockets := socketsByContainer[containerID]
		if nsSockets == nil {
			nsSockets = make(map[uint32]map[uint64]struct{})
			socketsByContainer[containerID] = nsSockets
		}
		set := nsSockets[netns]
		if set == nil {
			set = make(map[uint64]struct{})
			nsSockets[netns] = set
		}
		for _, ino := range inodes {
			set[ino] = struct{}{}
		}

		// First sockets seen in this netns: read its connection table via
		// this process's net/tcp[6].
		if _, ok := connsByNS[netns]; !ok {
			conns, err := readNetNSConns(fmt.Sprintf("%s/%d", s.procRoot, p.PID))
			if err != nil {
				log.Debugf("pid %d: failed read connection table: %v", p.PID, err)
				continue
			}
			connsByNS[netns] = conns
		}
	}

	conns, endpoints := resolveSocketInodes(socketsByContainer, connsByNS, withListenEndpoints)
	return conns, endpoints, nil
}

// containerOf derives the container id from the process's cgroup membership.
// Processes outside a recognized container scope are not reported.
func (s *Scraper) containerOf(p procfs.Proc) (string, bool) {
	cgroups, err := p.Cgroups()
	if err != nil {
		log.Debugf("pid %d: failed read cgroup: %v", p.PID, err)
		return "", false
	}
	for _, cg := range cgroups {
		if id := containerIDFromCgroupPath(cg.Path); id != "" {
			return id, true
		}
	}
	return "", false
}

func (s *Scraper) netnsOf(p procfs.Proc) (uint32, bool) {
	namespaces, err := p.Namespaces()
	if err != nil {
		log.Debugf("pid %d: failed read namespaces: %v", p.PID, err)
		return 0, false
	}
	ns, ok := namespaces["net"]
	if !ok {
		return 0, false
	}
	return ns.Inode, true
}

// socketInodesOf collects the socket inodes from the process's fd symlinks,
// which have the form `socket:[<inode>]`. Non-socket fds are skipped.
func (s *Scraper) socketInodesOf(p procfs.Proc) ([]uint64, bool) {
	targets, err := p.FileDescriptorTargets()
	if err != nil {
		log.Debugf("pid %d: failed read fd targets: %v", p.PID, err)
		return nil, false
	}
	var inodes []uint64
	for _, target := range targets {
		rest, ok := strings.CutPrefix(target, "socket:[")
		if !ok || !strings.HasSuffix(rest, "]") {
			continue
		}
		ino, err := strconv.ParseUint(rest[:len(rest)-1], 10, 64)
		if err != nil {
			continue
		}
		inodes = append(inodes, ino)
	}
	return inodes, true
}

// resolveSocketInodes synthesizes the per-container socket inode sets and the
// per-netns connection tables into connection and listen-endpoint lists.
// Unresolved inodes are dropped.
func resolveSocketInodes(socketsByContainer map[string]map[uint32]map[uint64]struct{},
	connsByNS map[uint32]map[uint64]connInfo, withListenEndpoints bool) ([]conntrack.Connection, []conntrack.ContainerEndpoint) {
	var conns []conntrack.Connection
	var endpoints []conntrack.ContainerEndpoint

	for containerID, nsSockets := range socketsByContainer {
		for netns, inodes := range nsSockets {
			table := connsByNS[netns]
			if table == nil {
				continue
			}
			for ino := range inodes {
				info, ok := table[ino]
				if !ok {
					continue
				}
				if info.isListen {
					if withListenEndpoints {
						endpoints = append(endpoints, conntrack.ContainerEndpoint{
							ContainerID: containerID,
							Endpoint:    info.local,
							L4Proto:     info.l4proto,
						})
					}
					continue
				}
				conns = append(conns, conntrack.Connection{
					ContainerID: containerID,
					Local:       info.local,
					Remote:      info.remote,
					L4Proto:     info.l4proto,
					IsServer:    info.isServer,
				})
			}
		}
	}
	return conns, endpoints
}
