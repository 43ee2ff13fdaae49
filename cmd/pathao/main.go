// Command pathao is a small CLI for exercising the SDK against the
// sandbox or a configured merchant account.
//
// Usage:
//
//	pathao cities              list coverage cities
//	pathao stores              list the merchant's stores
//	pathao resolve <city>      resolve a city name to its identifier
//	pathao webhook <addr>      serve the webhook receiver on addr
//
// Credentials come from PATHAO_* environment variables; with -sandbox
// the public sandbox credentials are used instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/parceldesk/pathao-sdk-go/internal/logger"
	"github.com/parceldesk/pathao-sdk-go/models"
	"github.com/parceldesk/pathao-sdk-go/pathao"
	"github.com/parceldesk/pathao-sdk-go/webhook"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	sandbox := flag.Bool("sandbox", false, "use the public sandbox credentials")
	version := flag.Bool("version", false, "print build info and exit")
	flag.Parse()

	if *version {
		printBuildInfo()
		return
	}

	log := logger.NewLogger("pathao-cli")

	cfg := pathao.Config{}
	if *sandbox {
		cfg = pathao.SandboxConfig()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flag.Args()
	if len(args) == 0 {
		log.Fatal().Msg("missing command: cities | stores | resolve <city> | webhook <addr>")
	}

	err := pathao.WithClient(ctx, cfg, func(client *pathao.Client) error {
		switch args[0] {
		case "cities":
			return listCities(ctx, client)
		case "stores":
			return listStores(ctx, client)
		case "resolve":
			if len(args) < 2 {
				return fmt.Errorf("usage: pathao resolve <city>")
			}
			return resolveCity(ctx, client, args[1])
		case "webhook":
			if len(args) < 2 {
				return fmt.Errorf("usage: pathao webhook <addr>")
			}
			return serveWebhook(ctx, client, args[1], log)
		default:
			return fmt.Errorf("unknown command %q", args[0])
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func listCities(ctx context.Context, client *pathao.Client) error {
	cities, err := client.Stores().GetCities(ctx)
	if err != nil {
		return err
	}

	for _, city := range cities {
		fmt.Printf("%4d  %s\n", city.CityID, city.CityName)
	}
	return nil
}

func listStores(ctx context.Context, client *pathao.Client) error {
	stores, err := client.Stores().ListStores(ctx, 0)
	if err != nil {
		return err
	}

	for _, store := range stores {
		fmt.Printf("%6d  %-30s  %s\n", store.StoreID, store.Name, store.Address)
	}
	return nil
}

func resolveCity(ctx context.Context, client *pathao.Client, name string) error {
	id, err := client.Stores().GetCityID(ctx, name)
	if err != nil {
		return err
	}

	fmt.Printf("%s = %d\n", name, id)
	return nil
}

func serveWebhook(ctx context.Context, client *pathao.Client, addr string, log *logger.Logger) error {
	secret := client.Config().WebhookSecret
	if secret == "" {
		return fmt.Errorf("PATHAO_WEBHOOK_SECRET is required for the webhook command")
	}

	handler := webhook.Router(secret, func(_ *http.Request, event models.WebhookEvent) error {
		log.Info().
			Str("event", event.EventName).
			Str("consignment_id", event.ConsignmentID).
			Str("merchant_order_id", event.MerchantOrderID).
			Msg("event received")
		return nil
	}, log)

	srv := &http.Server{Addr: addr, Handler: handler}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	log.Info().Str("addr", addr).Msg("webhook receiver listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
