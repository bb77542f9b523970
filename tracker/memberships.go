package tracker

import (
	"context"
	"fmt"
	"maps"

	"github.com/andyle182810/gtracker/resource"
)

const (
	RoleOwner  = "Owner"
	RoleMember = "Member"
	RoleViewer = "Viewer"
)

type newMembership struct {
	Role  string `json:"role"  validate:"required,oneof=Owner Member Viewer"`
	Email string `json:"email" validate:"required,email"`
}

func (c *Client) ProjectMemberships(ctx context.Context, projectID int64) ([]resource.Value, error) {
	return c.list(ctx, get("ProjectMemberships", fmt.Sprintf("/projects/%d/memberships", projectID), "memberships"))
}

func (c *Client) ProjectMembership(ctx context.Context, projectID, membershipID int64) (resource.Value, error) {
	path := fmt.Sprintf("/projects/%d/memberships/%d", projectID, membershipID)

	return c.execute(ctx, get("ProjectMembership", path, "membership"))
}

// AddProjectMembership invites the person with the given email. person may
// carry extra person attributes such as name and initials.
func (c *Client) AddProjectMembership(
	ctx context.Context,
	projectID int64,
	role, email string,
	person Fields,
) (resource.Value, error) {
	if err := c.validate(newMembership{Role: role, Email: email}); err != nil {
		return resource.Null(), err
	}

	member := maps.Clone(person)
	if member == nil {
		member = Fields{}
	}

	member["email"] = email

	body := formBody{root: "membership", fields: Fields{"role": role, "person": member}}

	return c.execute(ctx, post("AddProjectMembership", fmt.Sprintf("/projects/%d/memberships", projectID), "membership", body))
}

// RemoveProjectMembership returns the membership as it was before removal.
func (c *Client) RemoveProjectMembership(ctx context.Context, projectID, membershipID int64) (resource.Value, error) {
	path := fmt.Sprintf("/projects/%d/memberships/%d", projectID, membershipID)

	return c.execute(ctx, del("RemoveProjectMembership", path, "membership"))
}
