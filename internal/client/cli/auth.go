package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/gigline/internal/client/client"
	"github.com/dmitrijs2005/gigline/internal/client/models"
	"github.com/dmitrijs2005/gigline/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email, password and role and attempts to create
// a new account via the AuthService.
//
// On success it prints "Success! You can now log in." and returns nil. The
// password byte slice is securely wiped before returning. Any I/O or
// service error is returned unchanged.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	roleText, err := getSimpleText(a.reader, "Account type: (c)lient or (w)orker", os.Stdout)
	if err != nil {
		return err
	}

	role := models.RoleClient
	if roleText == "w" || roleText == "worker" {
		role = models.RoleWorker
	}

	if err := a.authService.Register(ctx, email, string(password), role); err != nil {
		return err
	}

	fmt.Println("Success! You can now log in.")
	return nil
}

// Login prompts for credentials and authenticates against the backend.
//
// On success the token pair is persisted by the AuthService, the profile is
// remembered for the prompt, and the app switches to ModeOnline. When the
// server is unreachable the app switches to ModeOffline; cached job
// listings stay readable, everything else needs connectivity.
//
// The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	account, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) || errors.Is(err, client.ErrTimeout) {
			log.Printf("Server unavailable, cached listings remain readable")
			a.setMode(ModeOffline)
		} else {
			log.Printf("Login unsuccessfull: %s", err.Error())
		}
		return err
	}

	a.account = account
	a.setMode(ModeOnline)
	log.Printf("Login successfull")
	return nil
}

// Logout invalidates the session server-side (best effort) and clears the
// locally stored token pair. The local clear always happens.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.account = nil
	if err != nil {
		log.Printf("Logout: %s", err.Error())
	}
	fmt.Println("Logged out.")
	return err
}

// WhoAmI fetches and prints the authenticated profile.
func (a *App) WhoAmI(ctx context.Context) error {
	account, err := a.authService.Me(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	a.account = account
	fmt.Printf("%s %s <%s> (%s)\n", account.FirstName, account.LastName, account.Email, account.Role)
	if account.City != "" {
		fmt.Printf("City: %s\n", account.City)
	}
	return nil
}
