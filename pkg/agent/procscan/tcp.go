package procscan

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/conntrail/conntrail/pkg/agent/netaddr"
)

const readLimit = 4294967296 // Byte -> 4 GiB

// connInfo is the interesting subset of one net/tcp[6] row, keyed by socket
// inode in the per-netns table.
type connInfo struct {
	local    netaddr.Endpoint
	remote   netaddr.Endpoint
	l4proto  netaddr.L4Proto
	isServer bool
	isListen bool
}

// hostIsLittleEndian decides whether the 4-byte chunks of the kernel's hex
// address encoding need to be reversed to recover wire order.
var hostIsLittleEndian = binary.NativeEndian.Uint16([]byte{0x01, 0x00}) == 1

// parseHexEndpoint parses the kernel's `ADDR:PORT` hex form. ADDR is encoded
// as host-byte-order 32-bit words, so each 4-byte chunk is reversed on
// little-endian hosts.
func parseHexEndpoint(s string, family netaddr.Family) (netaddr.Endpoint, error) {
	addrHex, portHex, ok := strings.Cut(s, ":")
	if !ok {
		return netaddr.Endpoint{}, fmt.Errorf("cannot parse address field %q", s)
	}

	raw, err := hex.DecodeString(addrHex)
	if err != nil {
		return netaddr.Endpoint{}, fmt.Errorf("cannot parse address field %q: %w", addrHex, err)
	}
	if len(raw) != family.Length() {
		return netaddr.Endpoint{}, fmt.Errorf("address %q has wrong length for %s", addrHex, family)
	}
	if hostIsLittleEndian {
		for off := 0; off < len(raw); off += 4 {
			raw[off], raw[off+1], raw[off+2], raw[off+3] = raw[off+3], raw[off+2], raw[off+1], raw[off]
		}
	}
	addr, err := netaddr.AddrFromSlice(raw)
	if err != nil {
		return netaddr.Endpoint{}, err
	}

	port, err := strconv.ParseUint(portHex, 16, 16)
	if err != nil {
		return netaddr.Endpoint{}, fmt.Errorf("cannot parse port value %q: %w", portHex, err)
	}

	return netaddr.NewEndpoint(addr, uint16(port)), nil
}

type connLine struct {
	local  netaddr.Endpoint
	remote netaddr.Endpoint
	inode  uint64
}

// parseConnLine parses a single non-header line of net/tcp[6]. Field layout:
// sl local_address rem_address st tx_queue:rx_queue tr:tm->when retrnsmt uid
// timeout inode ...
func parseConnLine(fields []string, family netaddr.Family) (connLine, error) {
	var line connLine
	if len(fields) < 10 {
		return line, fmt.Errorf("socket line has less than 10 columns: %q", strings.Join(fields, " "))
	}

	var err error
	if line.local, err = parseHexEndpoint(fields[1], family); err != nil {
		return line, err
	}
	if line.remote, err = parseHexEndpoint(fields[2], family); err != nil {
		return line, err
	}
	if line.inode, err = strconv.ParseUint(fields[9], 10, 64); err != nil {
		return line, fmt.Errorf("cannot parse inode value %q: %w", fields[9], err)
	}
	return line, nil
}

// ephemeralRank grades how likely a port is to be kernel-assigned. Operating
// systems disagree on the range, so the result is a confidence, not a bool.
func ephemeralRank(port uint16) int {
	switch {
	case port >= 49152:
		return 4 // IANA range
	case port >= 32768:
		return 3 // modern Linux kernel range
	case port >= 1025 && port <= 5000:
		return 2 // FreeBSD (partial) + old Windows range
	case port == 1024:
		return 1 // FreeBSD
	}
	return 0
}

// localIsServer decides which end of a connection is the server, given the
// listen endpoints observed in the same net/tcp[6] file. Closing a listen
// socket does not tear down established connections, so the port-range
// heuristic is the final fallback.
func localIsServer(local, remote netaddr.Endpoint, listens map[netaddr.Endpoint]struct{}) bool {
	if _, ok := listens[local]; ok {
		return true
	}
	anyLocal := netaddr.NewEndpoint(netaddr.Any(local.Family()), local.Port)
	if _, ok := listens[anyLocal]; ok {
		return true
	}
	return ephemeralRank(remote.Port) > ephemeralRank(local.Port)
}

// readConnsFromFile merges one net/tcp[6] file into the per-netns inode
// table. Listen rows are stored flagged so resolution can attribute them to
// the container owning the socket fd. Malformed lines are skipped; rows with
// inode 0 belong to sockets closed mid-scrape and are dropped.
func readConnsFromFile(r io.Reader, family netaddr.Family, l4proto netaddr.L4Proto, conns map[uint64]connInfo) error {
	s := bufio.NewScanner(io.LimitReader(r, readLimit))
	s.Scan() // skip the header line

	listens := make(map[netaddr.Endpoint]struct{})
	type pending struct {
		line   connLine
		listen bool
	}
	var rows []pending

	for s.Scan() {
		fields := strings.Fields(s.Text())
		line, err := parseConnLine(fields, family)
		if err != nil {
			continue
		}
		if line.remote.IsNull() {
			listens[line.local] = struct{}{}
			if line.inode != 0 {
				rows = append(rows, pending{line: line, listen: true})
			}
			continue
		}
		if line.inode == 0 {
			continue
		}
		rows = append(rows, pending{line: line})
	}
	if err := s.Err(); err != nil {
		return err
	}

	for _, row := range rows {
		conns[row.line.inode] = connInfo{
			local:    row.line.local,
			remote:   row.line.remote,
			l4proto:  l4proto,
			isServer: row.listen || localIsServer(row.line.local, row.line.remote, listens),
			isListen: row.listen,
		}
	}
	return nil
}

// readNetNSConns reads the connection table of the netns the given proc
// entry lives in.
func readNetNSConns(procDir string) (map[uint64]connInfo, error) {
	conns := make(map[uint64]connInfo)

	for _, t := range []struct {
		name   string
		family netaddr.Family
	}{
		{"net/tcp", netaddr.FamilyIPv4},
		{"net/tcp6", netaddr.FamilyIPv6},
	} {
		f, err := os.Open(procDir + "/" + t.name)
		if err != nil {
			return nil, err
		}
		err = readConnsFromFile(f, t.family, netaddr.L4ProtoTCP, conns)
		f.Close()
		if err != nil {
			return nil, err
		}
	}
	return conns, nil
}
