// Package sitesearch embeds the blog search engine in a Go program without the
// HTTP service: the corpus is indexed in memory on New and queried in process.
//
//	client, _ := sitesearch.New(ctx) // bundled corpus
//	defer client.Close()
//
//	hits, _ := client.Search(ctx, "personalization")
//	for _, h := range hits {
//	    fmt.Println(h.Title, h.URL)
//	}
//
//	html, _ := client.Render(ctx, "personalization", sitesearch.ViewList)
//
// Use WithCorpusFile or WithDocuments to index another document set.
package sitesearch
