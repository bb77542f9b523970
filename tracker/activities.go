package tracker

import (
	"context"
	"fmt"

	"github.com/andyle182810/gtracker/resource"
)

// Activities returns the recent activity across all of the user's projects.
func (c *Client) Activities(ctx context.Context) ([]resource.Value, error) {
	return c.list(ctx, get("Activities", "/activities", "activities"))
}

func (c *Client) ProjectActivities(ctx context.Context, projectID int64) ([]resource.Value, error) {
	return c.list(ctx, get("ProjectActivities", fmt.Sprintf("/projects/%d/activities", projectID), "activities"))
}
