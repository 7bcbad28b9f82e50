package cli

import (
	"context"
	"fmt"

	"gobarber-cli/internal/client/forms"
)

// Register prompts for name, e-mail and password and creates a new account.
// On success the user is told to sign in; no session is created here.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter e-mail", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password (min 6 characters)", a.out)
	if err != nil {
		return err
	}

	form := forms.SignUp{Name: name, Email: email, Password: password}
	if err := forms.Validate(form); err != nil {
		fmt.Fprintf(a.out, "Registration aborted: %v\n", err)
		return err
	}

	if _, err := a.api.CreateUser(ctx, name, email, password); err != nil {
		a.log.Error(ctx, "registration failed", "err", err)
		fmt.Fprintln(a.out, "Could not create your account. Try again.")
		return err
	}

	fmt.Fprintln(a.out, "Account created! You can now sign in.")
	return nil
}
