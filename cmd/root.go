package cmd

import (
	"os"
	"time"

	"github.com/AzielCF/az-evo-relay/botengine"
	"github.com/AzielCF/az-evo-relay/core/config"
	domainHealth "github.com/AzielCF/az-evo-relay/domains/health"
	domainInstance "github.com/AzielCF/az-evo-relay/domains/instance"
	domainMessageLog "github.com/AzielCF/az-evo-relay/domains/messagelog"
	domainSend "github.com/AzielCF/az-evo-relay/domains/send"
	domainWebhook "github.com/AzielCF/az-evo-relay/domains/webhook"
	"github.com/AzielCF/az-evo-relay/infrastructure/evolution"
	"github.com/AzielCF/az-evo-relay/infrastructure/forwarder"
	infraMessageLog "github.com/AzielCF/az-evo-relay/infrastructure/messagelog"
	"github.com/AzielCF/az-evo-relay/pkg/botmonitor"
	"github.com/AzielCF/az-evo-relay/pkg/msgworker"
	"github.com/AzielCF/az-evo-relay/pkg/utils"
	"github.com/AzielCF/az-evo-relay/ui/websocket"
	"github.com/AzielCF/az-evo-relay/usecase"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	appConfig *config.Config

	// Infrastructure
	gatewayClient  *evolution.Client
	eventForwarder *forwarder.Forwarder
	messagePool    *msgworker.Pool
	relayMonitor   *botmonitor.Monitor
	wsHub          *websocket.Hub

	// Usecase
	sendUsecase       domainSend.ISendUsecase
	webhookUsecase    domainWebhook.IWebhookUsecase
	instanceUsecase   domainInstance.IInstanceUsecase
	messageLogUsecase domainMessageLog.IMessageLogUsecase
	healthUsecase     domainHealth.IHealthUsecase
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "az-evo-relay",
	Short: "Evolution API webhook relay with a keyword reply bot",
	Long: `Receives Evolution API webhook events, answers text messages with keyword
replies through the gateway's sendText endpoint and optionally forwards the raw
events to downstream webhooks. Runs the REST server when no subcommand is given.`,
	Run: restServer,
}

func init() {
	// Load environment variables first
	utils.LoadConfig(".")

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()

	cobra.OnInitialize(initApp)
}

func initFlags() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("port", "p", "", "change port number with --port <number> | example: --port=8000")
	flags.String("host", "", "listen host --host <ip> | example: --host=0.0.0.0")
	flags.BoolP("debug", "d", false, "hide or displaying log with --debug <true/false> | example: --debug=true")
	flags.String("mode", "", `webhook mode --mode <reply|forward|both> | example: --mode=both`)
	flags.String("forward-urls", "", `comma separated downstream webhook(s) --forward-urls <url,...> | example: --forward-urls="https://yourcallback.com/callback"`)
	flags.String("rules", "", `keyword rules YAML file --rules <path> | example: --rules=rules.yaml`)

	bindings := map[string]string{
		"port_api":           "port",
		"host_api":           "host",
		"app_debug":          "debug",
		"webhook_mode":       "mode",
		"forward_urls":       "forward-urls",
		"keyword_rules_file": "rules",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			logrus.Fatalf("[CONFIG] failed to bind flag %s: %v", flag, err)
		}
	}
}

func initApp() {
	cfg, err := config.LoadConfig(viper.GetViper())
	if err != nil {
		logrus.Fatalf("[CONFIG] invalid configuration: %v", err)
	}
	appConfig = cfg

	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.WithFields(logrus.Fields(cfg.GetAllSettings())).Debug("[CONFIG] Loaded settings")

	engine := botengine.NewDefaultEngine()
	if cfg.Bot.RulesFile != "" {
		engine, err = botengine.LoadRulesFile(cfg.Bot.RulesFile)
		if err != nil {
			logrus.Fatalf("[BOT] failed to load keyword rules: %v", err)
		}
		logrus.Infof("[BOT] Loaded %d keyword rule(s) from %s", len(engine.Rules()), cfg.Bot.RulesFile)
	}

	// 1. Infrastructure
	gatewayClient = evolution.NewClient(cfg.Gateway)
	eventForwarder = forwarder.New(cfg.Forward)
	relayMonitor = botmonitor.New(cfg.Monitor.BufferSize)
	wsHub = websocket.NewHub()
	if cfg.Webhook.Async {
		messagePool = msgworker.NewPool(cfg.WorkerPool.Size, cfg.WorkerPool.QueueSize)
	}

	// 2. Usecases
	sendUsecase = usecase.NewSendService(gatewayClient, cfg.Gateway)
	messageLogUsecase = usecase.NewMessageLogService(infraMessageLog.NewMemoryStore(), wsHub)
	instanceUsecase = usecase.NewInstanceService(cfg.Gateway)
	webhookUsecase = usecase.NewWebhookService(usecase.WebhookDeps{
		Config:     cfg.Webhook,
		Instance:   cfg.Gateway.InstanceName,
		Engine:     engine,
		Send:       sendUsecase,
		Forwarder:  eventForwarder,
		MessageLog: messageLogUsecase,
		Monitor:    relayMonitor,
		Pool:       messagePool,
	})
	healthUsecase = usecase.NewHealthService(cfg, messageLogUsecase, relayMonitor, messagePool)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// StopApp drains the worker pool and releases pooled connections.
func StopApp() {
	logrus.Info("[APP] Stopping application...")

	if messagePool != nil {
		messagePool.Stop()
	}
	if gatewayClient != nil {
		gatewayClient.Close()
	}
	if eventForwarder != nil {
		eventForwarder.Close()
	}

	logrus.Info("[APP] Application stopped cleanly.")
}
