package container

import (
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/hitrelay/internal/dispatch"
	"github.com/serroba/hitrelay/internal/health"
	"github.com/serroba/hitrelay/internal/middleware"
	"github.com/serroba/hitrelay/internal/relay"
	"github.com/serroba/hitrelay/pkg/measurement"
	"go.uber.org/zap"
)

const receiptLength = 21

// ErrMissingTrackingID is returned when hits would be delivered without a tracking ID.
var ErrMissingTrackingID = errors.New("tracking id is required to deliver hits")

type Options struct {
	Port          int    `default:"8888"                             help:"Port to listen on"                                short:"p"`
	RedisAddr     string `default:"localhost:6379"                   help:"Redis server address"                             short:"r"`
	LogFormat     string `default:"console"                          help:"Log format: console or json"`
	Topic         string `default:"hits.accepted"                    help:"Stream accepted hits are published to"`
	ConsumerGroup string `default:"hit-dispatchers"                  help:"Redis stream consumer group of the workers"`
	Workers       int    `default:"1"                                help:"Dispatch workers sharing the consumer group"`
	InProcess     bool   `default:"false"                            help:"Also run dispatch workers inside the server"`
	TrackingID    string `help:"Tracking ID hits are delivered to"                                                            short:"t"`
	CollectorURL  string `default:"https://www.google-analytics.com" help:"Collection endpoint base URL"`
	Debug         bool   `default:"false"                            help:"Validate hits against the debug endpoint"`
	UserAgent     string `help:"User-Agent header sent to the collector"`
	AcceptPixel   bool   `default:"false"                            help:"Treat a 2xx tracking pixel as success. The production collect endpoint answers every hit with a pixel, so without this flag and outside debug mode every hit is reported as rejected"`
}

func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		return NewLogger(do.MustInvoke[*Options](i).LogFormat)
	})
}

// NewLogger builds a development logger for console output and a production
// logger for json.
func NewLogger(format string) (*zap.Logger, error) {
	switch format {
	case "", "console":
		return zap.NewDevelopment()
	case "json":
		return zap.NewProduction()
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		opts := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{Addr: opts.RedisAddr}), nil
	})
}

func MeasurementPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*measurement.Client, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if opts.TrackingID == "" {
			return nil, ErrMissingTrackingID
		}

		clientOpts := []measurement.Option{
			measurement.WithDebug(opts.Debug),
			measurement.WithUserAgent(opts.UserAgent),
			measurement.WithLogger(logger.Named("measurement")),
		}

		if opts.CollectorURL != "" {
			clientOpts = append(clientOpts, measurement.WithBaseURL(opts.CollectorURL))
		}

		switch {
		case opts.AcceptPixel:
			clientOpts = append(clientOpts, measurement.WithPixelAsSuccess())
		case !opts.Debug:
			logger.Warn("tracking pixel responses will be reported as rejected hits; enable accept-pixel for a pixel-serving collector",
				zap.String("collectorUrl", opts.CollectorURL),
			)
		}

		return measurement.New(opts.TrackingID, clientOpts...), nil
	})
}

func PublisherPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*dispatch.Queue, error) {
		opts := do.MustInvoke[*Options](i)
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client:     client,
			Marshaller: redisstream.DefaultMarshallerUnmarshaller{},
		}, NewWatermillLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create hit publisher: %w", err)
		}

		return dispatch.NewQueue(publisher, opts.Topic), nil
	})

	do.Provide(injector, func(i *do.Injector) (dispatch.Enqueue, error) {
		return do.MustInvoke[*dispatch.Queue](i).Enqueue, nil
	})
}

func WorkerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*dispatch.Group, error) {
		opts := do.MustInvoke[*Options](i)
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)

		sender, err := do.Invoke[*measurement.Client](i)
		if err != nil {
			return nil, err
		}

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			Unmarshaller:  redisstream.DefaultMarshallerUnmarshaller{},
			ConsumerGroup: opts.ConsumerGroup,
		}, NewWatermillLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create hit subscriber: %w", err)
		}

		return dispatch.NewGroup(subscriber, opts.Topic, sender, opts.Workers, logger.Named("worker")), nil
	})
}

func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		client := do.MustInvoke[*redis.Client](i)
		enqueue := do.MustInvoke[dispatch.Enqueue](i)
		logger := do.MustInvoke[*zap.Logger](i)

		newReceipt, err := nanoid.Standard(receiptLength)
		if err != nil {
			return nil, fmt.Errorf("create receipt generator: %w", err)
		}

		api := humachi.New(router, huma.DefaultConfig("Hit Relay", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(api))

		relay.RegisterRoutes(api, relay.NewHandler(
			enqueue,
			relay.ReceiptGenerator(newReceipt),
			uuid.NewString,
			logger.Named("relay"),
		))
		health.RegisterRoutes(api, health.NewHandler(health.NewQueueChecker(client)))

		return api, nil
	})
}
