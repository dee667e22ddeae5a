// Package sitesearch embeds the site search engine in a Go program.
//
// The client talks to Redis with the search module directly, without going
// through the HTTP API. Query parameters use the same names as the HTTP
// endpoints (terms, types, catids, sort, page, pagesize, ...).
//
//	client, _ := sitesearch.New(ctx,
//	    sitesearch.WithRedis("localhost:6379", ""),
//	    sitesearch.WithCategoryOperator("OR"),
//	    sitesearch.WithMembers(),
//	)
//	defer client.Close()
//
//	res, _ := client.Search(ctx, url.Values{"terms": {"widget"}, "pagesize": {"20"}})
//	for _, it := range res.Items {
//	    fmt.Println(it.Kind, it.ID, it.Score)
//	}
package sitesearch
