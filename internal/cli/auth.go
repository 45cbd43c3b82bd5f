package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/campusevents/internal/common"
	"github.com/dmitrijs2005/campusevents/internal/models"
	"github.com/dmitrijs2005/campusevents/internal/services"
)

// getSimpleText, getOptionalText and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getOptionalText = GetOptionalText
	getPassword     = GetPassword
)

// promptRole asks for a role until the answer is admin or student.
func (a *App) promptRole() (models.Role, error) {
	s, err := getSimpleText(a.reader, "Sign up as admin or student?", os.Stdout)
	if err != nil {
		return "", err
	}
	role, ok := models.ParseRole(s)
	if !ok {
		return "", fmt.Errorf("unknown role %q (expected admin or student)", s)
	}
	return role, nil
}

// Register prompts for the signup fields and creates the account. On
// success the new account owns the session, mirroring the original signup
// flow. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	role, err := a.promptRole()
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	name, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone", os.Stdout)
	if err != nil {
		return err
	}

	var college string
	if role == models.RoleStudent {
		college, err = getSimpleText(a.reader, "Enter college name", os.Stdout)
		if err != nil {
			return err
		}
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.accounts.Register(ctx, services.RegisterParams{
		Name:        name,
		Email:       email,
		Phone:       phone,
		Password:    string(password),
		Role:        role,
		CollegeName: college,
	})
	if err != nil {
		fmt.Fprintln(a.out, resultMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Signup successful. Welcome, %s!\n", p.Name)
	return nil
}

// Login prompts for credentials and opens a session via the account store.
func (a *App) Login(ctx context.Context) error {
	role, err := a.promptRole()
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.accounts.Authenticate(ctx, email, string(password), role)
	if err != nil {
		fmt.Fprintln(a.out, resultMessage(err))
		return err
	}

	fmt.Fprintf(a.out, "Login successful. Hello, %s!\n", p.Name)
	return nil
}

// Logout ends the session. Safe to call when already logged out.
func (a *App) Logout(ctx context.Context) error {
	if err := a.accounts.EndSession(ctx); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the current session profile.
func (a *App) WhoAmI() {
	cur := a.accounts.Current()
	if cur == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", cur.Name, cur.Email, cur.Role)
	if cur.CollegeName != "" {
		fmt.Fprintf(a.out, "College: %s\n", cur.CollegeName)
	}
}
