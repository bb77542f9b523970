package tracker

import (
	"context"
	"fmt"

	"github.com/andyle182810/gtracker/resource"
)

type IterationGroup string

const (
	IterationsCurrent IterationGroup = "current"
	IterationsDone    IterationGroup = "done"
	IterationsBacklog IterationGroup = "backlog"
)

func (g IterationGroup) valid() bool {
	switch g {
	case IterationsCurrent, IterationsDone, IterationsBacklog:
		return true
	default:
		return false
	}
}

func (c *Client) ProjectIterations(ctx context.Context, projectID int64) ([]resource.Value, error) {
	return c.list(ctx, get("ProjectIterations", fmt.Sprintf("/projects/%d/iterations", projectID), "iterations"))
}

// ProjectIterationGroup returns only the current, done or backlog iterations.
func (c *Client) ProjectIterationGroup(
	ctx context.Context,
	projectID int64,
	group IterationGroup,
) ([]resource.Value, error) {
	if !group.valid() {
		return nil, fmt.Errorf("%w: unknown iteration group %q", ErrInvalidInput, group)
	}

	path := fmt.Sprintf("/projects/%d/iterations/%s", projectID, group)

	return c.list(ctx, get("ProjectIterationGroup", path, "iterations"))
}
