package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gobarber-cli/internal/client/api"
	"gobarber-cli/internal/client/forms"
)

// Profile edits the signed-in user's name, e-mail and, optionally, password.
// Empty name/e-mail input keeps the current value. Entering a new password
// requires the current one and a matching confirmation.
func (a *App) Profile(ctx context.Context) error {
	sess, ok := a.store.Current()
	if !ok {
		fmt.Fprintln(a.out, "Sign in first.")
		return nil
	}

	name, err := GetTextDefault(a.reader, "Name", sess.User.Name, a.out)
	if err != nil {
		return err
	}
	email, err := GetTextDefault(a.reader, "E-mail", sess.User.Email, a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("New password (empty to keep)", a.out)
	if err != nil {
		return err
	}

	var oldPassword, confirmation string
	if password != "" {
		oldPassword, err = getPassword("Current password", a.out)
		if err != nil {
			return err
		}
		confirmation, err = getPassword("Confirm new password", a.out)
		if err != nil {
			return err
		}
	}

	form := forms.Profile{
		Name:                 name,
		Email:                email,
		OldPassword:          oldPassword,
		Password:             password,
		PasswordConfirmation: confirmation,
	}
	if err := forms.Validate(form); err != nil {
		fmt.Fprintf(a.out, "Profile not saved: %v\n", err)
		return err
	}

	updated, err := a.api.UpdateProfile(ctx, api.ProfileUpdate{
		Name:                 name,
		Email:                email,
		OldPassword:          oldPassword,
		Password:             password,
		PasswordConfirmation: confirmation,
	})
	if err != nil {
		a.log.Error(ctx, "profile update failed", "err", err)
		fmt.Fprintln(a.out, "Could not update your profile. Try again.")
		return err
	}

	if err := a.store.UpdateUser(ctx, updated); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Profile updated!")
	return nil
}

// Avatar uploads a new profile picture. An empty path cancels silently,
// mirroring a closed picker.
func (a *App) Avatar(ctx context.Context) error {
	if _, ok := a.store.Current(); !ok {
		fmt.Fprintln(a.out, "Sign in first.")
		return nil
	}

	path, err := getSimpleText(a.reader, "Path to image (empty to cancel)", a.out)
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(a.out, "Could not read the image file.")
		return err
	}

	updated, err := a.api.UpdateAvatar(ctx, filepath.Base(path), data)
	if err != nil {
		a.log.Error(ctx, "avatar update failed", "err", err)
		fmt.Fprintln(a.out, "Could not update your avatar.")
		return err
	}

	if err := a.store.UpdateUser(ctx, updated); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Avatar updated!")
	return nil
}
