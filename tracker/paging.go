package tracker

import (
	"context"

	"github.com/andyle182810/gtracker/resource"
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 3000
)

// Page returns the query for a 1-based page of stories. Out of range values are
// clamped to the first page and to [1, MaxPageSize] stories.
func Page(filter Filter, page, pageSize int) StoryQuery {
	if page < 1 {
		page = 1
	}

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	} else if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return StoryQuery{
		Filter: filter,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
}

// AllProjectStories pages through a project's stories until a page comes back
// with fewer or more stories than asked for. A page that starts with the same
// story as the previous one also ends the walk, since the server then ignores
// the offset. Each page is a separate request.
func (c *Client) AllProjectStories(
	ctx context.Context,
	projectID int64,
	filter Filter,
	pageSize int,
) ([]resource.Value, error) {
	var (
		stories []resource.Value
		firstID string
	)

	for page := 1; ; page++ {
		query := Page(filter, page, pageSize)

		batch, err := c.ProjectStories(ctx, projectID, query)
		if err != nil {
			return nil, err
		}

		if len(batch) == 0 {
			return stories, nil
		}

		id := batch[0].Get("id").Str()
		if page > 1 && id != "" && id == firstID {
			c.logger.Warn().
				Int64("project_id", projectID).
				Int("offset", query.Offset).
				Msg("Tracker repeated a page of stories, stopping")

			return stories, nil
		}

		firstID = id
		stories = append(stories, batch...)

		if len(batch) != query.Limit {
			return stories, nil
		}
	}
}
