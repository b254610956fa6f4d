//go:build ignore

package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/munin-search/autocomplete/internal/places"
	"github.com/munin-search/autocomplete/internal/poi"
	"github.com/munin-search/autocomplete/internal/poi/queue"
)

// test_publish pushes one sample raw POI onto the enrichment queue, for
// manually exercising a running pipeline worker end to end.
func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for the POI stream")
	stream := flag.String("stream", "poi:raw", "Stream name")
	flag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	q := queue.New(client, *stream, nil)

	raw := poi.RawPoi{
		ID:        "osm:test-cafe-1",
		Name:      "Cafe de Flore",
		Coord:     places.Coord{Lon: 2.3326, Lat: 48.8540},
		PoiTypeID: "amenity:cafe",
		Properties: map[string]string{
			"amenity": "cafe",
		},
	}

	if err := q.Publish(ctx, raw); err != nil {
		log.Fatalf("failed to publish raw poi: %v", err)
	}

	fmt.Printf("published raw poi %s to stream %s\n", raw.ID, *stream)
}
