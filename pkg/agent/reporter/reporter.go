package reporter

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"

	"github.com/conntrail/conntrail/pkg/agent/conntrack"
	"github.com/conntrail/conntrail/pkg/agent/procscan"
	"github.com/conntrail/conntrail/pkg/agent/rpc"
)

// Reporter drives the scrape/delta/write loop against the aggregator and
// applies inbound control messages. All tracker state is owned by the loop
// goroutine; the receive goroutine only touches the normalizer snapshot.
type Reporter struct {
	cfg     atomic.Pointer[Config]
	scraper *procscan.Scraper
	tracker *conntrack.Tracker

	cancel context.CancelFunc
	done   chan struct{}

	status atomic.Pointer[Status]

	lastNewConnCounters conntrack.Stats
	lastStatsReport     time.Time
}

// Status is a point-in-time view of the reporter for the status page. The
// counts are taken from the last fetched snapshots, so reading it does not
// touch the tracker from another goroutine.
type Status struct {
	StreamConnected    bool      `json:"stream_connected"`
	LastScrape         time.Time `json:"last_scrape,omitempty"`
	TrackedConnections int       `json:"tracked_connections"`
	TrackedEndpoints   int       `json:"tracked_endpoints"`
}

// Status returns the latest reporter state snapshot.
func (r *Reporter) Status() Status {
	if s := r.status.Load(); s != nil {
		return *s
	}
	return Status{}
}

func (r *Reporter) setStreamConnected(connected bool) {
	next := r.Status()
	next.StreamConnected = connected
	r.status.Store(&next)
}

func New(cfg Config, scraper *procscan.Scraper, tracker *conntrack.Tracker) *Reporter {
	r := &Reporter{
		scraper: scraper,
		tracker: tracker,
		done:    make(chan struct{}),
	}
	r.cfg.Store(&cfg)
	return r
}

// UpdateConfig swaps the configuration; the loop picks it up on its next tick.
func (r *Reporter) UpdateConfig(cfg Config) {
	r.cfg.Store(&cfg)
	log.Info("reporter configuration updated")
}

// Start runs the reporter loop until Stop is called.
func (r *Reporter) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	go func() {
		defer close(r.done)
		r.run(ctx)
	}()
	log.Info("started network status reporter")
}

// Stop cancels the in-flight stream and all sleeps and waits for the loop to
// exit.
func (r *Reporter) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	<-r.done
	log.Info("stopped network status reporter")
}

// run is the outer reconnect loop: establish the duplex stream, run the
// scrape loop over it, and retry after a fixed pause when it breaks.
func (r *Reporter) run(ctx context.Context) {
	for {
		if err := r.runStream(ctx); err != nil {
			log.Errorf("error streaming network connection info: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectInterval):
			reconnectsTotal.Inc()
		}
	}
}

func (r *Reporter) runStream(ctx context.Context) error {
	cfg := r.cfg.Load()

	conn, err := grpc.Dial(cfg.AggregatorAddr, grpc.WithInsecure())
	if err != nil {
		return errors.Wrapf(err, "failed to dial aggregator %s", cfg.AggregatorAddr)
	}
	defer conn.Close()

	if err := waitUntilReady(ctx, conn); err != nil {
		return err
	}

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	client := rpc.NewNetworkConnectionInfoServiceClient(conn)
	stream, err := client.PushNetworkConnectionInfo(streamCtx)
	if err != nil {
		return errors.Wrap(err, "failed to open connection info stream")
	}
	log.Info("established network connection info stream")
	r.setStreamConnected(true)
	defer r.setStreamConnected(false)

	recvDone := make(chan error, 1)
	go func() {
		for {
			msg, err := stream.Recv()
			if err != nil {
				recvDone <- err
				return
			}
			r.onControlMessage(msg)
		}
	}()

	runErr := r.runSingle(streamCtx, stream, recvDone)
	if ctx.Err() != nil {
		return nil
	}

	var hangup *recvFailure
	if errors.As(runErr, &hangup) {
		if errors.Is(hangup.err, io.EOF) {
			// the server finished the stream cleanly; still a reason to reconnect
			log.Error("aggregator closed the connection info stream")
			return nil
		}
		return hangup.err
	}

	_ = stream.CloseSend()
	select {
	case err := <-recvDone:
		if runErr == nil && !errors.Is(err, io.EOF) {
			runErr = err
		}
	case <-time.After(streamFinishTimeout):
		log.Warn("timed out waiting for the stream to finish")
	}
	return runErr
}

// recvFailure marks a session ended by the receive side of the stream.
type recvFailure struct {
	err error
}

func (e *recvFailure) Error() string {
	return "control stream receive failed: " + e.err.Error()
}

// waitUntilReady blocks until the underlying connection is writable, bounded
// by the connect deadline.
func waitUntilReady(ctx context.Context, conn *grpc.ClientConn) error {
	readyCtx, cancel := context.WithTimeout(ctx, connectReadyTimeout)
	defer cancel()

	conn.Connect()
	for {
		state := conn.GetState()
		if state == connectivity.Ready {
			return nil
		}
		if !conn.WaitForStateChange(readyCtx, state) {
			return errors.New("timed out waiting for the aggregator connection to become ready")
		}
	}
}

// runState is the delta memory carried between ticks of one stream session.
type runState struct {
	oldConns        conntrack.ConnMap
	oldEndpoints    conntrack.EndpointMap
	lastScrape      int64
	prevExternalIPs bool
}

// runSingle ticks every scrape interval until the stream breaks, the server
// hangs up, or the reporter is stopped.
func (r *Reporter) runSingle(ctx context.Context, stream rpc.NetworkConnectionInfoService_PushNetworkConnectionInfoClient, recvDone <-chan error) error {
	state := &runState{
		oldConns:        make(conntrack.ConnMap),
		oldEndpoints:    make(conntrack.EndpointMap),
		lastScrape:      time.Now().UnixMicro(),
		prevExternalIPs: r.cfg.Load().EnableExternalIPs,
	}

	for {
		if err := r.tick(stream, state); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case err := <-recvDone:
			return &recvFailure{err: err}
		case <-time.After(r.cfg.Load().ScrapeInterval):
		}
	}
}

func (r *Reporter) tick(stream rpc.NetworkConnectionInfoService_PushNetworkConnectionInfoClient, state *runState) error {
	cfg := r.cfg.Load()
	now := time.Now()
	nowMicros := now.UnixMicro()

	if !cfg.TurnOffScrape {
		scrapesTotal.Inc()
		conns, endpoints, err := r.scraper.Scrape(cfg.ScrapeListenEndpoints)
		if err != nil {
			scrapeErrorsTotal.Inc()
			log.Errorf("failed to scrape connections, nothing to report: %v", err)
			return nil
		}
		r.tracker.Update(conns, endpoints, nowMicros)
	}

	r.reportConnectionStats(now)

	afterglowMicros := int64(0)
	if cfg.EnableAfterglow {
		afterglowMicros = cfg.AfterglowPeriod.Microseconds()
	}
	r.tracker.EnableExternalIPs(cfg.EnableExternalIPs)
	r.tracker.SetAfterglowPeriod(afterglowMicros)

	newConns := r.tracker.FetchConnState(true, true, nowMicros)

	var connDelta conntrack.ConnMap
	if cfg.EnableAfterglow {
		connDelta = conntrack.ComputeDeltaAfterglow(newConns, state.oldConns, nowMicros, state.lastScrape, afterglowMicros)
		if state.prevExternalIPs != cfg.EnableExternalIPs {
			r.tracker.CloseConnectionsOnRuntimeConfigChange(state.oldConns, connDelta, cfg.EnableExternalIPs)
		}
	} else {
		connDelta = conntrack.ComputeDelta(newConns, state.oldConns)
	}
	state.prevExternalIPs = cfg.EnableExternalIPs

	newEndpoints := r.tracker.FetchEndpointState(true, true, nowMicros)
	epDelta := conntrack.ComputeDelta(newEndpoints, state.oldEndpoints)

	st := r.Status()
	st.LastScrape = now
	st.TrackedConnections = len(newConns)
	st.TrackedEndpoints = len(newEndpoints)
	r.status.Store(&st)

	msg := buildInfoMessage(connDelta, epDelta, now, cfg.PerContainerRateLimit, cfg.ScrapeInterval)

	if cfg.EnableAfterglow {
		state.oldConns = conntrack.UpdateOldState(newConns, state.oldConns, nowMicros, afterglowMicros)
	} else {
		state.oldConns = newConns
	}
	state.oldEndpoints = newEndpoints
	state.lastScrape = nowMicros

	if msg == nil {
		log.Debug("no update to report")
		return nil
	}

	if err := stream.Send(msg); err != nil {
		return errors.Wrap(err, "failed to write network connection info")
	}
	messagesSentTotal.Inc()
	return nil
}

// reportConnectionStats publishes the tracker totals and per-second creation
// rates since the previous tick.
func (r *Reporter) reportConnectionStats(now time.Time) {
	stored := r.tracker.StoredConnectionStats()
	storedConnectionsGauge.WithLabelValues("inbound", "private").Set(float64(stored.Inbound.Private))
	storedConnectionsGauge.WithLabelValues("inbound", "public").Set(float64(stored.Inbound.Public))
	storedConnectionsGauge.WithLabelValues("outbound", "private").Set(float64(stored.Outbound.Private))
	storedConnectionsGauge.WithLabelValues("outbound", "public").Set(float64(stored.Outbound.Public))

	counters := r.tracker.NewConnectionCounters()
	if !r.lastStatsReport.IsZero() {
		if dt := now.Sub(r.lastStatsReport).Seconds(); dt > 0 {
			rate := func(cur, prev uint64) float64 { return float64(cur-prev) / dt }
			connectionRateGauge.WithLabelValues("inbound", "private").Set(rate(counters.Inbound.Private, r.lastNewConnCounters.Inbound.Private))
			connectionRateGauge.WithLabelValues("inbound", "public").Set(rate(counters.Inbound.Public, r.lastNewConnCounters.Inbound.Public))
			connectionRateGauge.WithLabelValues("outbound", "private").Set(rate(counters.Outbound.Private, r.lastNewConnCounters.Outbound.Private))
			connectionRateGauge.WithLabelValues("outbound", "public").Set(rate(counters.Outbound.Public, r.lastNewConnCounters.Outbound.Public))
		}
	}
	r.lastNewConnCounters = counters
	r.lastStatsReport = now
}
