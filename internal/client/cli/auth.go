package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/freelancehub/internal/client/client"
	"github.com/dmitrijs2005/freelancehub/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Health pings the server and updates the connectivity mode.
func (a *App) Health(ctx context.Context) error {
	if err := a.authService.Ping(ctx); err != nil {
		if a.Mode() != ModeDisabled {
			a.setMode(ModeOffline)
		}
		return err
	}
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "Server is healthy")
	return nil
}

// Login prompts for a mobile number and password and tries to authenticate.
//
// The online attempt comes first. If the server is unavailable the cached
// session for the same number is restored and the app switches to offline
// mode; if there is none either the app is disabled until the server
// answers again. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	mobile, err := getSimpleText(a.reader, "Enter mobile number", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.OnlineLogin(ctx, mobile, password)
	if err == nil {
		a.setSession(s)
		a.setMode(ModeOnline)
		fmt.Fprintf(a.out, "Logged in as %s (%s)\n", s.User.ID, s.User.UserType)
		return nil
	}

	if !errors.Is(err, client.ErrUnavailable) {
		return err
	}

	fmt.Fprintln(a.out, "Server unavailable, trying offline login...")
	s, err = a.authService.OfflineLogin(ctx, mobile)
	if err != nil {
		a.setMode(ModeDisabled)
		return fmt.Errorf("offline login unsuccessful: %w", err)
	}

	a.setSession(s)
	a.setMode(ModeOffline)
	fmt.Fprintf(a.out, "Logged in offline as %s (%s)\n", s.User.ID, s.User.UserType)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.setSession(nil)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Check(ctx context.Context) error {
	mobile, err := getSimpleText(a.reader, "Enter mobile number", a.out)
	if err != nil {
		return err
	}

	registered, userType, err := a.authService.CheckMobile(ctx, mobile)
	if err != nil {
		return err
	}
	if !registered {
		fmt.Fprintln(a.out, "Not registered")
		return nil
	}
	fmt.Fprintf(a.out, "Registered as %s\n", userType)
	return nil
}
