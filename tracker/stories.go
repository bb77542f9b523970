package tracker

import (
	"context"
	"fmt"

	"github.com/andyle182810/gtracker/resource"
)

type newNote struct {
	Text string `json:"text" validate:"required"`
}

// ProjectStories lists a project's stories. Only the parts of query that are
// set are sent.
func (c *Client) ProjectStories(ctx context.Context, projectID int64, query StoryQuery) ([]resource.Value, error) {
	op := get("ProjectStories", fmt.Sprintf("/projects/%d/stories", projectID), "stories")
	op.query = query.params()

	return c.list(ctx, op)
}

func (c *Client) ProjectStory(ctx context.Context, projectID, storyID int64) (resource.Value, error) {
	return c.execute(ctx, get("ProjectStory", storyPath(projectID, storyID), "story"))
}

func (c *Client) AddProjectStory(ctx context.Context, projectID int64, story Fields) (resource.Value, error) {
	path := fmt.Sprintf("/projects/%d/stories", projectID)

	return c.execute(ctx, post("AddProjectStory", path, "story", formBody{root: "story", fields: story}))
}

// UpdateProjectStory sends the changed attributes as an XML story document.
func (c *Client) UpdateProjectStory(ctx context.Context, projectID, storyID int64, story Fields) (resource.Value, error) {
	op := put("UpdateProjectStory", storyPath(projectID, storyID), "story", xmlBody{root: "story", fields: story})

	return c.execute(ctx, op)
}

// DeleteStory returns the story as it was before deletion.
func (c *Client) DeleteStory(ctx context.Context, projectID, storyID int64) (resource.Value, error) {
	return c.execute(ctx, del("DeleteStory", storyPath(projectID, storyID), "story"))
}

func (c *Client) AddNote(ctx context.Context, projectID, storyID int64, text string) (resource.Value, error) {
	if err := c.validate(newNote{Text: text}); err != nil {
		return resource.Null(), err
	}

	path := storyPath(projectID, storyID) + "/notes"

	return c.execute(ctx, post("AddNote", path, "note", xmlBody{root: "note", fields: Fields{"text": text}}))
}

func storyPath(projectID, storyID int64) string {
	return fmt.Sprintf("/projects/%d/stories/%d", projectID, storyID)
}
