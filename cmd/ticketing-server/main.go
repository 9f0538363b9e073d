package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/amlesh-kumar01/NFT-Event-Ticketing/api/handlers"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/api/servers"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/cmd/flags"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/interfaces"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/notify"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/registry"
	"github.com/amlesh-kumar01/NFT-Event-Ticketing/storage"
)

var serverFlags = []cli.Flag{
	flags.ListenAddrFlag,
	flags.MetricsAddrFlag,
	flags.JWTSecretFlag,
	&cli.StringFlag{
		Name:     "admin",
		Usage:    "principal granted the administrator role on startup. 0x-prefixed 40-char hex string",
		Required: true,
	},
	&cli.StringFlag{
		Name:  "registry-name",
		Value: "EventTickets",
		Usage: "human-readable registry name",
	},
	&cli.StringFlag{
		Name:  "registry-symbol",
		Value: "ETK",
		Usage: "short registry symbol",
	},
	&cli.StringFlag{
		Name:  "metadata-store",
		Usage: "location new metadata documents are published to, e.g. file:///var/lib/ticketing or ipfs://",
	},
	&cli.StringFlag{
		Name:  "metadata-dir",
		Value: "",
		Usage: "directory backing file:// metadata locations",
	},
	&cli.StringFlag{
		Name:  "ipfs-api",
		Value: "127.0.0.1:5001",
		Usage: "host:port of the IPFS API node for ipfs:// metadata locations",
	},
	&cli.StringFlag{
		Name:  "s3-region",
		Value: "us-east-1",
		Usage: "region for s3:// metadata locations",
	},
	&cli.StringFlag{
		Name:    "amqp-url",
		Usage:   "AMQP broker URL; notifications are only published when set",
		EnvVars: []string{"TICKETING_AMQP_URL"},
	},
	&cli.StringFlag{
		Name:  "amqp-queue",
		Value: "ticketing.notifications",
		Usage: "queue notifications are published to",
	},
	flags.LogJSONFlag,
	flags.LogDebugFlag,
	flags.LogUIDFlag,
	flags.LogServiceFlag,
	flags.PprofFlag,
	flags.DrainSecondsFlag,
}

func main() {
	app := &cli.App{
		Name:  "ticketing-server",
		Usage: "Serve the event ticketing registry API",
		Flags: serverFlags,
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			admin, err := interfaces.NewPrincipalFromHex(cCtx.String("admin"))
			if err != nil {
				logger.Error("Invalid admin principal", "err", err)
				return err
			}

			// The in-memory log always runs so the snapshot endpoint has
			// data; the AMQP publisher is layered on when configured.
			notificationLog := notify.NewLog()
			var sink interfaces.Sink = notificationLog
			if amqpURL := cCtx.String("amqp-url"); amqpURL != "" {
				publisher, err := notify.NewAMQPPublisher(amqpURL, cCtx.String("amqp-queue"), logger)
				if err != nil {
					logger.Error("Failed to connect to AMQP broker", "err", err)
					return err
				}
				defer publisher.Close()
				sink = notify.Multi{notificationLog, publisher}
				logger.Info("Publishing notifications to AMQP", "queue", cCtx.String("amqp-queue"))
			}

			reg, err := registry.New(cCtx.String("registry-name"), cCtx.String("registry-symbol"), admin, sink, logger)
			if err != nil {
				logger.Error("Failed to create registry", "err", err)
				return err
			}

			storageFactory := storage.NewFactory(storage.Config{
				IPFSAPIAddr: cCtx.String("ipfs-api"),
				PublishDir:  cCtx.String("metadata-dir"),
				S3Region:    cCtx.String("s3-region"),
				S3Endpoint:  os.Getenv("TICKETING_S3_ENDPOINT"),
				S3AccessKey: os.Getenv("TICKETING_S3_ACCESS_KEY"),
				S3SecretKey: os.Getenv("TICKETING_S3_SECRET_KEY"),
			}, logger)

			var publish interfaces.MetadataLocation
			if store := cCtx.String("metadata-store"); store != "" {
				publish, err = interfaces.ParseMetadataLocation(store)
				if err != nil {
					logger.Error("Invalid metadata store location", "err", err)
					return err
				}
				if _, err := storageFactory.BackendFor(publish); err != nil {
					logger.Error("Metadata store backend unavailable", "err", err)
					return err
				}
			}

			handler := handlers.NewHandler(reg, storageFactory, publish, notificationLog, logger)

			cfg := flags.ConfigureServer(cCtx, logger, []byte(cCtx.String(flags.JWTSecretFlag.Name)))
			server, err := servers.New(cfg, handler)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			logger.Info("Starting ticketing registry server",
				"listenAddr", cfg.ListenAddr,
				"admin", admin.String(),
				"version", "dev")
			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
			<-exit

			logger.Info("Shutting down...")
			server.Shutdown()
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
