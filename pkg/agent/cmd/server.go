package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	gops "github.com/google/gops/agent"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conntrail/conntrail/pkg/agent/conntrack"
	"github.com/conntrail/conntrail/pkg/agent/nodemeta"
	"github.com/conntrail/conntrail/pkg/agent/procscan"
	"github.com/conntrail/conntrail/pkg/agent/reporter"
	"github.com/conntrail/conntrail/version"
)

// serverCmd represents the server command
var (
	serverCmd = &cobra.Command{
		Use:   "server",
		Short: "start the conntrail agent",
		Run: func(cmd *cobra.Command, args []string) {
			srv := &agentServer{
				v:   *viper.New(),
				ctx: context.Background(),
			}

			log.Infof("start with config file %s", configPath)
			srv.v.SetConfigFile(configPath)
			if err := srv.MergeConfig(); err != nil {
				log.Errorf("merge config err: %v", err)
				return
			}

			if srv.config.DebugMode {
				log.SetLevel(log.DebugLevel)
			}

			if err := srv.start(); err != nil {
				log.Errorf("start server err: %v", err)
				return
			}
		},
	}

	configPath = "/etc/conntrail/config.yaml"
)

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "/etc/conntrail/config.yaml", "config file path")
}

type agentConfig struct {
	DebugMode bool            `yaml:"debugmode" mapstructure:"debugmode"`
	Port      uint16          `yaml:"port" mapstructure:"port"`
	Reporter  reporter.Config `yaml:"reporter" mapstructure:"reporter"`
}

type agentServer struct {
	v        viper.Viper
	config   agentConfig
	ctx      context.Context
	reporter *reporter.Reporter
}

func (s *agentServer) MergeConfig() error {
	err := s.v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return fmt.Errorf("config file %s not found", s.v.ConfigFileUsed())
		}
		return fmt.Errorf("config file err: %w", err)
	}

	cfg := agentConfig{Reporter: reporter.DefaultConfig()}
	if err := s.v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("config file err: %w", err)
	}

	s.config = cfg
	return nil
}

func (s *agentServer) reload() error {
	cfg := agentConfig{Reporter: reporter.DefaultConfig()}
	if err := s.v.Unmarshal(&cfg); err != nil {
		return err
	}
	s.config = cfg
	s.reporter.UpdateConfig(cfg.Reporter)
	return nil
}

func (s *agentServer) start() error {
	// without a node identity there is nothing to report under
	if err := nodemeta.Init(); err != nil {
		log.Fatalf("failed resolve node identity: %v", err)
	}
	log.Infof("starting on node %s (instance %s)", nodemeta.NodeName(), nodemeta.InstanceID())

	if err := gops.Listen(gops.Options{}); err != nil {
		log.Infof("start gops err: %v", err)
	}

	scraper, err := procscan.NewScraper(s.config.Reporter.ProcRoot)
	if err != nil {
		return fmt.Errorf("failed create scraper: %w", err)
	}

	normalizer := conntrack.NewNormalizer()
	// seed with the node's own addresses until the aggregator publishes its view
	if hostIPs := nodemeta.HostIPs(); len(hostIPs) > 0 {
		normalizer.UpdateKnownPublicIPs(hostIPs)
		log.Infof("seeded %d host addresses as known public IPs", len(hostIPs))
	}
	tracker := conntrack.NewTracker(normalizer)

	s.reporter = reporter.New(s.config.Reporter, scraper, tracker)

	// config hot reload process
	s.v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("start reload config")
		if err := s.reload(); err != nil {
			log.Warnf("reload config error: %v", err)
			return
		}
		log.Info("config reload succeed")
	})
	s.v.WatchConfig()

	s.reporter.Start(s.ctx)

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		http.Handle("/", http.HandlerFunc(defaultPage))
		http.Handle("/config", http.HandlerFunc(s.configPage))
		http.Handle("/status", http.HandlerFunc(s.statusPage))
		if s.config.DebugMode {
			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			http.Handle("/internal", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		}
		listenAddr := fmt.Sprintf(":%d", s.config.Port)
		log.Infof("agent start metric server, listenAddr: %s", listenAddr)
		srv := &http.Server{Addr: listenAddr}
		if err := srv.ListenAndServe(); err != nil {
			log.Errorf("agent start metric server err: %v", err)
		}
	}()

	WaitSignals(s, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	return nil
}

func WaitSignals(s *agentServer, sgs ...os.Signal) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, sgs...)
	sig := <-c
	log.Warnf("receive signal %s, stopping", sig.String())
	s.reporter.Stop()
}

func defaultPage(w http.ResponseWriter, _ *http.Request) {
	// nolint
	w.Write([]byte(`<html>
		<head><title>Conntrail Agent</title></head>
		<body>
		<h1>Conntrail Agent</h1>
		<p><a href="/metrics">Metrics</a></p>
		</body>
		</html>`))
}

func (s *agentServer) configPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	rawText, _ := json.MarshalIndent(s.config, " ", "    ")
	w.WriteHeader(http.StatusOK)
	w.Write(rawText) // nolint
}

func (s *agentServer) statusPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	res := map[string]interface{}{
		"version":  version.String(),
		"node":     nodemeta.NodeName(),
		"instance": nodemeta.InstanceID(),
		"reporter": s.reporter.Status(),
	}

	rawText, err := json.Marshal(res)
	if err != nil {
		log.Errorf("failed marshal reporter status: %v", err)
	}
	w.Write(rawText) // nolint
}
