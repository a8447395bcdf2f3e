package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/kroma-labs/fetch-go/fetch"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. A client with a base URL, debug logging and curl generation
	client := fetch.New(
		fetch.WithBaseURL("https://httpbin.org"),
		fetch.WithServiceName("httpbin"),
		fetch.WithDebug(),
		fetch.WithGenerateCurl(),
		fetch.WithRequestID(),
		fetch.WithDefaultHeaders(http.Header{
			"User-Agent": []string{"fetch-go-example/1.0"},
		}),
	)

	// 2. GET with query parameters, JSON response decoded into a map
	res := client.Get(ctx, "/get", &fetch.Options{
		Query: url.Values{
			"page":      []string{"1"},
			"page-size": []string{"20"},
		},
	})
	if res.Err != nil {
		log.Fatalf("GET failed: %v", res.Err)
	}
	fmt.Printf("GET status=%d body type=%T\n", res.Status, res.Body)
	if res.Debug != nil {
		fmt.Printf("reproduce with: %s\n", res.Debug.Curl)
	}

	// 3. POST a JSON body
	res = client.Post(ctx, "/post", &fetch.Options{
		ContentType: fetch.TagJSON,
		Body:        map[string]any{"name": "widget", "qty": 3},
	})
	if res.Err != nil {
		log.Fatalf("POST failed: %v", res.Err)
	}
	fmt.Printf("POST status=%d\n", res.Status)

	// 4. POST a form
	res = client.Post(ctx, "/post", &fetch.Options{
		ContentType: fetch.TagFormEncoded,
		Body:        url.Values{"username": []string{"alice"}},
	})
	if res.Err != nil {
		log.Fatalf("form POST failed: %v", res.Err)
	}
	fmt.Printf("form POST status=%d\n", res.Status)

	// 5. Per-request timing breakdown
	res = client.Get(ctx, "/get", &fetch.Options{EnableTrace: true})
	if res.Err != nil {
		log.Fatalf("traced GET failed: %v", res.Err)
	}
	fmt.Println(res.Debug.Trace)
}
