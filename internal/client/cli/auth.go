package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dmitrijs2005/ticketapp/internal/client/router"
	"github.com/dmitrijs2005/ticketapp/internal/common"
)

// Signup shows the signup view: it prompts for name, email and password,
// creates the account and opens the dashboard.
func (a *App) Signup(ctx context.Context) error {
	if _, err := a.enter(ctx, router.Signup.Path); err != nil {
		return err
	}
	return a.signupView(ctx)
}

func (a *App) signupView(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		return fmt.Errorf("%w: passwords do not match", common.ErrorValidation)
	}

	session, err := a.auth.Signup(ctx, email, name, password)
	if err != nil {
		a.logger.Warn(ctx, "signup failed", "email", email, "error", err)
		return err
	}

	a.printf("Welcome, %s!\n", session.Name)
	return a.Dashboard(ctx)
}

// Login shows the login view: it prompts for credentials and, on success,
// opens the dashboard.
func (a *App) Login(ctx context.Context) error {
	if _, err := a.enter(ctx, router.Login.Path); err != nil {
		return err
	}
	return a.loginView(ctx)
}

func (a *App) loginView(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	session, err := a.auth.Authenticate(ctx, email, password)
	if err != nil {
		a.logger.Warn(ctx, "login failed", "email", email, "error", err)
		return err
	}

	a.printf("Logged in as %s\n", session.Email)
	return a.Dashboard(ctx)
}

// Logout ends the session and returns to the landing view.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout failed", "error", err)
		return err
	}
	a.current = router.Home
	a.println("Logged out")
	return nil
}

// Whoami prints the logged-in user and warns when the stored session no
// longer agrees with it.
func (a *App) Whoami(ctx context.Context) error {
	u, ok := a.auth.CurrentUser()
	stored := a.auth.CheckAuthentication(ctx)

	if ok {
		a.printf("%s <%s> (id %s)\n", u.Name, u.Email, u.ID)
	} else {
		a.println("Not logged in")
	}

	if ok != stored {
		a.println(warnStyle.Render("The stored session changed outside this client; type 'refresh' to reload it."))
	}
	return nil
}

// Refresh reloads the logged-in user from the stored session.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.auth.Refresh(ctx); err != nil {
		return err
	}
	return a.Whoami(ctx)
}
