package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/MatheusOtenio/Pink-Note/internal/config"
	"github.com/MatheusOtenio/Pink-Note/internal/constant"
	"github.com/MatheusOtenio/Pink-Note/internal/entity"
	"github.com/MatheusOtenio/Pink-Note/internal/repository"
	"github.com/MatheusOtenio/Pink-Note/internal/service"
	"github.com/MatheusOtenio/Pink-Note/pkg/blobstore"
	"github.com/MatheusOtenio/Pink-Note/pkg/database"
	"github.com/MatheusOtenio/Pink-Note/pkg/logger"
)

// application is the composition the desktop shell embeds. Everything the
// interface does goes through these services.
type application struct {
	Folders     service.IFolderService
	Notes       service.INoteService
	Attachments service.IAttachmentService
	Events      service.IEventService
	Changes     service.IChangeFeedService
}

func main() {
	godotenv.Load()

	cfg, err := config.Load(config.DefaultDataDir())
	if err != nil {
		panic(err)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	log, closeLog, err := logger.New(logger.Config{
		FilePath: cfg.Log.FilePath,
		Level:    level,
		Pretty:   cfg.Log.Pretty,
	})
	if err != nil {
		panic(err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.Database.Path, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer database.Close(db)

	if err := repository.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}
	if err := repository.Seed(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("seed database")
	}

	blobs, err := newBlobStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open blob store")
	}

	folderRepository := repository.NewFolderRepository(db)
	noteRepository := repository.NewNoteRepository(db)
	attachmentRepository := repository.NewAttachmentRepository(db)
	eventRepository := repository.NewEventRepository(db)

	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	publisherService := service.NewPublisherService(constant.DataChangedTopicName, pubSub)

	app := application{
		Folders:     service.NewFolderService(folderRepository, noteRepository, attachmentRepository, blobs, publisherService, log, db),
		Notes:       service.NewNoteService(noteRepository, folderRepository, attachmentRepository, blobs, publisherService, log, db),
		Attachments: service.NewAttachmentService(noteRepository, attachmentRepository, blobs, publisherService, log, db),
		Events:      service.NewEventService(eventRepository, publisherService, log),
		Changes:     service.NewChangeFeedService(pubSub, constant.DataChangedTopicName, log),
	}

	changes, err := app.Changes.Subscribe(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("subscribe to change feed")
	}

	tree, err := app.Folders.GetTree(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load folder tree")
	}

	today := entity.DateKeyOf(time.Now())
	events, err := app.Events.ListOnDate(ctx, today)
	if err != nil {
		log.Fatal().Err(err).Msg("load today's events")
	}

	log.Info().
		Str("data_dir", cfg.DataDir()).
		Int("folders", len(tree)).
		Int("events_today", len(events)).
		Msg("pinknote core ready")

	for notification := range changes {
		log.Info().
			Str("entity", notification.Entity).
			Str("action", notification.Action).
			Str("id", notification.Id).
			Msg("data changed")
	}

	log.Info().Msg("shutting down")
}

func newBlobStore(cfg *config.Config) (blobstore.Store, error) {
	if cfg.Storage.Backend == "s3" {
		return blobstore.NewS3(blobstore.S3Config{
			AccessKey: cfg.Storage.S3.AccessKey,
			SecretKey: cfg.Storage.S3.SecretKey,
			Endpoint:  cfg.Storage.S3.Endpoint,
			Region:    cfg.Storage.S3.Region,
			Bucket:    cfg.Storage.S3.Bucket,
		})
	}
	return blobstore.NewDisk(cfg.Storage.Root)
}
