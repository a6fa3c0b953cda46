package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrijs2005/trainingportal/internal/client/client"
	"github.com/dmitrijs2005/trainingportal/internal/client/models"
	"github.com/dmitrijs2005/trainingportal/internal/client/services"
	"github.com/dmitrijs2005/trainingportal/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a new account and creates it. The new user is not
// signed in.
func (a *App) Register(ctx context.Context) error {
	in, err := a.inputUser(models.UserInput{Role: models.RoleUser}, true)
	if err != nil {
		return err
	}

	created, err := a.session.Register(ctx, in)
	if err != nil {
		a.reportError(err)
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %s)\n", created.Name, created.ID)
	return nil
}

// Login prompts for credentials and signs in. Whatever the cause, a failure
// is reported as incorrect credentials, unless the server is unreachable.
func (a *App) Login(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Enter login", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, login, password); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			fmt.Fprintln(a.out, "Server unavailable, try again later")
		} else {
			fmt.Fprintln(a.out, "Incorrect login or password")
		}
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s\n", a.session.Identity().Name)
	a.feed.Refresh(ctx)
	return nil
}

// Logout ends the session. It cannot fail.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.feed.Refresh(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the signed-in identity.
func (a *App) WhoAmI(ctx context.Context) error {
	identity := a.session.Identity()
	if identity == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> login=%s role=%s id=%s\n", identity.Name, identity.Email, identity.Login, identity.Role, identity.ID)
	return nil
}

// inputUser prompts for the fields of a user, offering base as defaults.
func (a *App) inputUser(base models.UserInput, create bool) (models.UserInput, error) {
	in := base
	var err error

	if in.Name, err = GetTextWithDefault(a.reader, "Enter name", base.Name, a.out); err != nil {
		return in, err
	}
	if in.Email, err = GetTextWithDefault(a.reader, "Enter email", base.Email, a.out); err != nil {
		return in, err
	}
	if in.Login, err = GetTextWithDefault(a.reader, "Enter login", base.Login, a.out); err != nil {
		return in, err
	}

	if !create {
		fmt.Fprintln(a.out, "Leave the password empty to keep it unchanged")
	}
	password, err := getPassword(a.out)
	if err != nil {
		return in, err
	}
	in.Password = string(password)
	common.WipeByteArray(password)

	return in, nil
}

// reportError prints err for the user. Validation failures are listed
// field by field.
func (a *App) reportError(err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		for _, field := range slices.Sorted(maps.Keys(verr.Fields)) {
			fmt.Fprintf(a.out, "  %s\n", verr.Fields[field])
		}
		return
	}
	fmt.Fprintf(a.out, "Error: %s\n", err)
}
