package cli

import (
	"context"
	"fmt"

	"gobarber-cli/internal/client/forms"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and signs in through the session store.
// Validation failures abort before any network call.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter e-mail", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	form := forms.SignIn{Email: email, Password: password}
	if err := forms.Validate(form); err != nil {
		fmt.Fprintf(a.out, "Check your credentials: %v\n", err)
		return err
	}

	if err := a.store.SignIn(ctx, email, password); err != nil {
		a.log.Error(ctx, "sign in failed", "err", err)
		fmt.Fprintln(a.out, "Authentication failed. Check your credentials and try again.")
		return err
	}

	sess, _ := a.store.Current()
	fmt.Fprintf(a.out, "Welcome, %s!\n", sess.User.Name)
	return nil
}
