package meraki

import (
	"context"
	"fmt"
	"net/url"

	"github.com/awheeler/merakiusage/internal/model"
)

// Admins fetches the organization's administrator list. The endpoint is not
// paginated; organizations top out at a few hundred admins.
func (c *Client) Admins(ctx context.Context, orgID string) ([]model.Admin, error) {
	u := fmt.Sprintf("%s/organizations/%s/admins", c.baseURL, url.PathEscape(orgID))

	var admins []model.Admin
	if _, err := c.getJSON(ctx, u, &admins); err != nil {
		return nil, fmt.Errorf("list organization admins: %w", err)
	}
	c.log.Debug().Int("admins", len(admins)).Str("org", orgID).Msg("fetched admin list")
	return admins, nil
}
