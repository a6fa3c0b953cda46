package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/trainingportal/internal/client/models"
	"github.com/dmitrijs2005/trainingportal/internal/client/services"
)

// ErrAdminOnly is returned by administration commands for regular users.
var ErrAdminOnly = errors.New("administrator role required")

func (a *App) requireAdmin() error {
	if !a.isAdmin() {
		fmt.Fprintln(a.out, "This command is for administrators only")
		return ErrAdminOnly
	}
	return nil
}

// Users lists all accounts.
func (a *App) Users(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	users, err := a.session.ListUsers(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tLOGIN\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Login, u.Role)
	}
	return tw.Flush()
}

// AddUser creates an account with a chosen role.
func (a *App) AddUser(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	in, err := a.inputUser(models.UserInput{Role: models.RoleUser}, true)
	if err != nil {
		return err
	}
	role, err := GetTextWithDefault(a.reader, "Enter role (admin/user)", string(in.Role), a.out)
	if err != nil {
		return err
	}
	in.Role = models.Role(role)

	created, err := a.session.Register(ctx, in)
	if err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintf(a.out, "Created user %s (id %s)\n", created.Name, created.ID)
	return nil
}

// EditUser updates an account. Users may edit themselves; administrators
// may edit anyone and change roles.
func (a *App) EditUser(ctx context.Context, args []string) error {
	current := a.session.Identity()
	if current == nil {
		return services.ErrNotAuthenticated
	}

	id := current.ID
	if len(args) > 0 {
		id = args[0]
	}
	if id != current.ID {
		if err := a.requireAdmin(); err != nil {
			return err
		}
	}

	existing, err := a.session.GetUserByID(ctx, id)
	if err != nil {
		a.reportError(err)
		return err
	}

	in, err := a.inputUser(models.InputFromIdentity(*existing), false)
	if err != nil {
		return err
	}
	if a.isAdmin() {
		role, err := GetTextWithDefault(a.reader, "Enter role (admin/user)", string(in.Role), a.out)
		if err != nil {
			return err
		}
		in.Role = models.Role(role)
	}

	updated, err := a.session.UpdateUser(ctx, id, in)
	if err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintf(a.out, "Updated user %s\n", updated.Name)
	return nil
}

// DeleteUser removes an account. Deleting yourself logs you out.
func (a *App) DeleteUser(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	id, err := a.argOrPrompt(args, "Enter user id to delete")
	if err != nil {
		return err
	}

	if err := a.session.DeleteUser(ctx, id); err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

// AddVideo creates a video.
func (a *App) AddVideo(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	in, err := a.inputVideo(models.VideoInput{})
	if err != nil {
		return err
	}

	created, err := a.catalog.CreateVideo(ctx, in)
	if err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintf(a.out, "Created video %s (id %s)\n", created.Title, created.ID)
	a.feed.Refresh(ctx)
	return nil
}

// EditVideo updates a video.
func (a *App) EditVideo(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	id, err := a.argOrPrompt(args, "Enter video id to edit")
	if err != nil {
		return err
	}

	existing, err := a.catalog.GetVideo(ctx, id)
	if err != nil {
		a.reportError(err)
		return err
	}

	in, err := a.inputVideo(models.InputFromVideo(*existing))
	if err != nil {
		return err
	}

	if _, err := a.catalog.UpdateVideo(ctx, id, in); err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintln(a.out, "Updated")
	a.feed.Refresh(ctx)
	return nil
}

// DeleteVideo removes a video.
func (a *App) DeleteVideo(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	id, err := a.argOrPrompt(args, "Enter video id to delete")
	if err != nil {
		return err
	}

	if err := a.catalog.DeleteVideo(ctx, id); err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	a.feed.Refresh(ctx)
	return nil
}

// AllCategories lists every category, including unused ones.
func (a *App) AllCategories(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	categories, err := a.catalog.ListCategories(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}
	videos, err := a.catalog.ListVideos(ctx, models.VideoQuery{})
	if err != nil {
		a.reportError(err)
		return err
	}

	counts := make(map[string]int)
	for _, v := range videos {
		counts[v.CategoryID]++
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tVIDEOS")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", c.ID, c.Name, counts[c.ID])
	}
	return tw.Flush()
}

// AllVideos lists every video with how many existing users may watch it.
func (a *App) AllVideos(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	videos, err := a.catalog.ListVideos(ctx, models.VideoQuery{})
	if err != nil {
		a.reportError(err)
		return err
	}
	users, err := a.session.ListUsers(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tUSERS")
	for _, v := range videos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", v.ID, v.Title, v.CategoryID, services.CountAllowed(v, users))
	}
	return tw.Flush()
}

// AddCategory creates a category with a unique name.
func (a *App) AddCategory(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter category name", a.out)
	if err != nil {
		return err
	}

	created, err := a.catalog.CreateCategory(ctx, models.CategoryInput{Name: name})
	if err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintf(a.out, "Created category %s (id %s)\n", created.Name, created.ID)
	return nil
}

// EditCategory renames a category.
func (a *App) EditCategory(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	id, err := a.argOrPrompt(args, "Enter category id to edit")
	if err != nil {
		return err
	}

	existing, err := a.catalog.GetCategory(ctx, id)
	if err != nil {
		a.reportError(err)
		return err
	}

	name, err := GetTextWithDefault(a.reader, "Enter category name", existing.Name, a.out)
	if err != nil {
		return err
	}

	if _, err := a.catalog.UpdateCategory(ctx, id, models.CategoryInput{Name: name}); err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintln(a.out, "Updated")
	a.feed.Refresh(ctx)
	return nil
}

// DeleteCategory removes a category.
func (a *App) DeleteCategory(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	id, err := a.argOrPrompt(args, "Enter category id to delete")
	if err != nil {
		return err
	}

	if err := a.catalog.DeleteCategory(ctx, id); err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	a.feed.Refresh(ctx)
	return nil
}

// inputVideo prompts for the fields of a video, offering base as defaults.
func (a *App) inputVideo(base models.VideoInput) (models.VideoInput, error) {
	in := base
	var err error

	if in.Title, err = GetTextWithDefault(a.reader, "Enter title", base.Title, a.out); err != nil {
		return in, err
	}
	if in.Link, err = GetTextWithDefault(a.reader, "Enter link", base.Link, a.out); err != nil {
		return in, err
	}
	if in.CategoryID, err = GetTextWithDefault(a.reader, "Enter category id", base.CategoryID, a.out); err != nil {
		return in, err
	}
	if in.AllowedUsers, err = GetList(a.reader, "Enter allowed user ids", base.AllowedUsers, a.out); err != nil {
		return in, err
	}
	return in, nil
}
