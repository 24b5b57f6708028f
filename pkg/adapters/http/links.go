package http

import "fmt"

// Link is a hypermedia reference in a response's _links object.
type Link struct {
	Href      string `json:"href"`
	Method    string `json:"method,omitempty"`
	Templated bool   `json:"templated,omitempty"`
}

// statusLinks builds the hypermedia links for a robot status payload.
func statusLinks(robotID string) map[string]Link {
	base := "/robots/" + robotID
	return map[string]Link{
		"self":         {Href: base + "/status"},
		"actions":      {Href: base + "/actions?page=1&size=5"},
		"move":         {Href: base + "/move", Method: "POST"},
		"pickup":       {Href: base + "/pickup/{itemId}", Method: "POST", Templated: true},
		"putdown":      {Href: base + "/putdown/{itemId}", Method: "POST", Templated: true},
		"attack":       {Href: base + "/attack/{targetId}", Method: "POST", Templated: true},
		"update_state": {Href: base + "/state", Method: "PATCH"},
	}
}

// pageLinks builds self/next/prev links for an action log page.
func pageLinks(robotID string, page, size, totalPages int) map[string]Link {
	href := func(p int) string {
		return fmt.Sprintf("/robots/%s/actions?page=%d&size=%d", robotID, p, size)
	}

	links := map[string]Link{
		"self": {Href: href(page)},
	}
	if page < totalPages {
		links["next"] = Link{Href: href(page + 1)}
	}
	if page > 1 {
		links["prev"] = Link{Href: href(page - 1)}
	}
	return links
}
