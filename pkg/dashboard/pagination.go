package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// getAllPages requests path and every page linked from it through the Link
// header's rel=next entry, handing each page body to decode in order.
func (c *Client) getAllPages(ctx context.Context, path string, maxPerPage int, decode func(page []byte) error) error {
	query := url.Values{}
	query.Set("perPage", strconv.Itoa(min(c.perPage, maxPerPage)))

	next := c.baseURL + path + "?" + query.Encode()
	seen := make(map[string]bool)

	for next != "" {
		if seen[next] {
			return fmt.Errorf("pagination loop detected at %s", next)
		}
		seen[next] = true

		resp, err := c.do(ctx, http.MethodGet, next, nil)
		if err != nil {
			return err
		}
		if err = decode(resp.body); err != nil {
			return fmt.Errorf("unexpected response from %s: %w", path, err)
		}

		next, err = nextPageURL(next, resp.header.Values("Link"))
		if err != nil {
			return err
		}
	}
	return nil
}

// nextPageURL extracts the rel=next target from RFC 8288 Link header values,
// resolving it against current. It returns "" on the last page.
func nextPageURL(current string, links []string) (string, error) {
	for _, value := range links {
		for _, link := range strings.Split(value, ",") {
			parts := strings.Split(link, ";")
			target := strings.TrimSpace(parts[0])
			if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
				continue
			}

			for _, param := range parts[1:] {
				key, val, ok := strings.Cut(strings.TrimSpace(param), "=")
				if !ok || !strings.EqualFold(strings.TrimSpace(key), "rel") {
					continue
				}
				if !strings.EqualFold(strings.Trim(strings.TrimSpace(val), `"`), "next") {
					continue
				}

				base, err := url.Parse(current)
				if err != nil {
					return "", err
				}
				ref, err := url.Parse(strings.TrimSuffix(strings.TrimPrefix(target, "<"), ">"))
				if err != nil {
					return "", fmt.Errorf("invalid pagination link %q: %w", target, err)
				}
				return base.ResolveReference(ref).String(), nil
			}
		}
	}
	return "", nil
}
