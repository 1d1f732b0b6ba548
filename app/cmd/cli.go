package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/configs"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/db/seeders"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models/migrations"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/repositories"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/services"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
)

// NewCli builds the command tree. serve is the action used when no
// subcommand is given.
func NewCli(env configs.ENV, log *logrus.Logger, serve cli.ActionFunc) *cli.Command {
	openDB := func() (*gorm.DB, error) {
		return configs.OpenConnection(env, log)
	}

	newJob := func(db *gorm.DB) *services.FeatureExtractionJob {
		return services.NewFeatureExtractionJob(
			repositories.NewProductRepository(db),
			repositories.NewProductFeatureRepository(db),
			log,
		)
	}

	return &cli.Command{
		Name:   "bloomie",
		Usage:  "Bloomie flower shop storefront",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openDB()
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Info("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Fill the database with a sample flower catalog",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "migrate", Usage: "run migrations before seeding"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openDB()
					if err != nil {
						return err
					}
					if c.Bool("migrate") {
						if err := migrations.AutoMigrate(db); err != nil {
							return err
						}
					}
					if err := seeders.DBSeed(db, log); err != nil {
						return err
					}
					log.Info("✅ Seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication and encryption keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "env-file", Value: configs.DefaultKeysFile, Usage: "file the keys are appended to"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSessionKeys(os.Stdout, c.String("env-file")); err != nil {
						return err
					}
					log.Info("✅ Key generation complete.")
					return nil
				},
			},
			{
				Name:  "extract-features",
				Usage: "Run the image feature extraction job once",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openDB()
					if err != nil {
						return err
					}
					indexed, err := newJob(db).Run(ctx)
					if err != nil {
						return err
					}
					log.Infof("✅ Indexed %d products", indexed)
					return nil
				},
			},
			{
				Name:  "image-worker",
				Usage: "Consume feature extraction jobs from RabbitMQ",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "amqp-url", Value: env.RabbitMQURL, Usage: "RabbitMQ connection URL"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					url := c.String("amqp-url")
					if url == "" {
						return cli.Exit("RABBITMQ_URL is not set", 1)
					}
					db, err := openDB()
					if err != nil {
						return err
					}
					ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
					defer stop()
					return services.ConsumeExtractionJobs(ctx, url, newJob(db), log)
				},
			},
		},
	}
}

func RunCli(env configs.ENV, log *logrus.Logger, serve cli.ActionFunc) {
	if err := NewCli(env, log, serve).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
