// Package librariesio provides an HTTP client for the Libraries.io API.
//
// # Overview
//
// This package fetches npm package metadata from Libraries.io
// (https://libraries.io/api), which aggregates registry data with
// popularity indicators (dependents, SourceRank, stars).
//
// # Usage
//
//	client, err := librariesio.NewClient(apiKey, 24*time.Hour)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	proj, err := client.FetchProject(ctx, "express", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(proj.Name, proj.LatestReleaseNumber)
//
// # Authentication and rate limits
//
// Every request carries the api_key query parameter. Libraries.io allows
// 60 requests per minute per key; 429 responses are retried with bounded
// backoff by the underlying [registry.Client] before surfacing as
// [registry.ErrRateLimited].
//
// # Project schema
//
// [Project] declares the fields this tool persists. Fields the API
// returns beyond the declared set are dropped during decoding, so adding
// response fields upstream never changes our artifacts.
//
// # Caching
//
// Responses are cached under the "librariesio:" namespace to reduce load
// on the API across repeated runs. Pass refresh=true to bypass.
package librariesio
