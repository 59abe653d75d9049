package main

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	auction "silent-auction/internal/auctionService"
	"silent-auction/internal/events"
	"silent-auction/internal/identity"
	"silent-auction/internal/ledger"
	"silent-auction/internal/server"
	"silent-auction/utils"
)

func main() {
	args := ParseArgs()
	if !args.Validate() {
		fmt.Fprintln(os.Stderr, "missing arguments")
		os.Exit(1)
	}
	utils.SetLogLevel(args.LogLevel)

	store := ledger.NewMemoryStore()
	hub := events.NewHub()
	defer hub.Close()

	emitters := []events.Emitter{hub, events.LogEmitter{}}
	if args.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     args.Redis.Addr,
			Password: args.Redis.Password,
			DB:       args.Redis.DB,
		})
		stream := events.NewStreamEmitter(client, args.Redis.StreamKey)
		defer stream.Close()
		emitters = append(emitters, stream)
	}

	auctionSvc := auction.NewAuctionService(store, events.Multi(emitters...))
	router := server.SetupRouter(auctionSvc, newResolver(args), hub)

	fmt.Printf("Starting auction ledger server on %s...\n", args.ServerURL)
	if err := router.Run(args.ServerURL); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// newResolver picks the caller-identity resolver: verified bearer tokens when
// a secret is configured, a trusted header otherwise.
func newResolver(args Args) identity.Resolver {
	if args.TokenSecret != "" {
		return identity.TokenResolver{Secret: []byte(args.TokenSecret)}
	}
	utils.Warn("no token secret configured, trusting the identity header", map[string]any{
		"header": identity.DefaultIdentityHeader,
	})
	return identity.HeaderResolver{}
}
