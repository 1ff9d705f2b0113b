package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookmarks/internal/client/models"
	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/goliatone/go-print"
)

// Register prompts for an email and password and creates a new account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Register(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %d). You can log in now.\n", u.Email, u.ID)
	return nil
}

// Login prompts for credentials and keeps the issued access token in the API
// client for the following commands.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, email, string(password)); err != nil {
		return err
	}

	a.setUser(email)
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(_ context.Context) error {
	a.api.Logout()
	a.setUser("")
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, print.MaybePrettyJSON(u))
	return nil
}

// Profile edits the current account. Empty answers leave fields unchanged.
func (a *App) Profile(ctx context.Context) error {
	email, err := GetOptionalText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	first, err := GetOptionalText(a.reader, "First name", a.out)
	if err != nil {
		return err
	}
	last, err := GetOptionalText(a.reader, "Last name", a.out)
	if err != nil {
		return err
	}

	patch := models.UserPatch{Email: email, FirstName: first, LastName: last}
	if patch.Empty() {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	u, err := a.api.UpdateProfile(ctx, patch)
	if err != nil {
		return err
	}

	a.setUser(u.Email)
	fmt.Fprintln(a.out, "Profile updated")
	return nil
}
