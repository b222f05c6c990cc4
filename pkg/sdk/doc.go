// Package bizdex provides a Go client for the bizdex business directory
// backed by Valkey or Redis.
//
// The client embeds the same ranking and search pipeline as the HTTP
// service: equality filters are pushed down to storage, then the text
// filter, radius cutoff and composite score run in process.
//
//	client, _ := bizdex.New(ctx, bizdex.WithValkey("localhost:6379", ""))
//	defer client.Close()
//
//	_, _ = client.Businesses().Seed(ctx)
//	res, _ := client.Businesses().Search(ctx, bizdex.SearchParams{
//	    Query:    "wealth management",
//	    Near:     &bizdex.Coordinates{Lat: -26.1076, Lng: 28.0567},
//	    RadiusKm: bizdex.Float(50),
//	})
//	for _, b := range res {
//	    fmt.Println(b.Name, b.DistanceLabel(), *b.Score)
//	}
package bizdex
