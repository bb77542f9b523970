package tracker

import (
	"context"
	"fmt"
	"maps"

	"github.com/andyle182810/gtracker/resource"
)

type newProject struct {
	Name string `json:"name" validate:"required"`
}

func (c *Client) Projects(ctx context.Context) ([]resource.Value, error) {
	return c.list(ctx, get("Projects", "/projects", "projects"))
}

func (c *Client) Project(ctx context.Context, projectID int64) (resource.Value, error) {
	return c.execute(ctx, get("Project", fmt.Sprintf("/projects/%d", projectID), "project"))
}

// CreateProject creates a project called name. Extra attributes such as
// iteration_length or point_scale go in fields; name always wins.
func (c *Client) CreateProject(ctx context.Context, name string, fields Fields) (resource.Value, error) {
	if err := c.validate(newProject{Name: name}); err != nil {
		return resource.Null(), err
	}

	project := maps.Clone(fields)
	if project == nil {
		project = Fields{}
	}

	project["name"] = name

	return c.execute(ctx, post("CreateProject", "/projects", "project", formBody{root: "project", fields: project}))
}
