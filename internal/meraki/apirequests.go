package meraki

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/awheeler/merakiusage/internal/model"
)

// APIRequests fetches every API request record the dashboard logged for the
// organization over the trailing timespan (in seconds), following Link header
// pagination until the result set is complete.
func (c *Client) APIRequests(ctx context.Context, orgID string, timespanSeconds int) ([]model.APIRequest, error) {
	q := url.Values{}
	q.Set("timespan", strconv.Itoa(timespanSeconds))
	q.Set("perPage", strconv.Itoa(c.perPage))
	u := fmt.Sprintf("%s/organizations/%s/apiRequests?%s", c.baseURL, url.PathEscape(orgID), q.Encode())

	var records []model.APIRequest
	page := 0
	for u != "" {
		page++
		var batch []model.APIRequest
		next, err := c.getJSON(ctx, u, &batch)
		if err != nil {
			return nil, fmt.Errorf("list api requests (page %d): %w", page, err)
		}
		records = append(records, batch...)
		c.log.Debug().Int("page", page).Int("records", len(batch)).Msg("fetched api request page")
		u = next
	}
	return records, nil
}
