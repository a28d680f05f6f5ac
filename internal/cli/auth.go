package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/paperback/internal/common"
	"github.com/dmitrijs2005/paperback/internal/services"
)

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}
	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}
	contact, err := GetSimpleText(a.reader, "Enter contact number", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}

	result, err := a.identity.Register(ctx, services.RegisterParams{
		Name:     name,
		Email:    email,
		Username: username,
		Password: string(password),
		Contact:  contact,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEmailAlreadyExists):
			printlnFn("That email is already registered")
		case errors.Is(err, common.ErrUsernameAlreadyExists):
			printlnFn("That username is taken")
		default:
			a.printErr(err)
		}
		return err
	}

	a.user = &result.User
	printlnFn("Registered as", result.User.Username)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}

	result, err := a.identity.Login(ctx, services.Credentials{
		Username: username,
		Password: string(password),
	})
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			printlnFn("Invalid credentials")
		} else {
			a.printErr(err)
		}
		return err
	}

	a.user = &result.User
	printlnFn("Logged in as", result.User.Username)
	return nil
}

// Verify walks the email-verification round trip. There is no mail transport
// in this layer, so the issued code is printed in place of an email.
func (a *App) Verify(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return nil
	}
	if a.user.IsVerified {
		printlnFn("Email already verified")
		return nil
	}

	token, err := a.identity.RequestEmailVerification(ctx, a.user.Email)
	if err != nil {
		a.printErr(err)
		return err
	}
	printlnFn("Verification code sent to", a.user.Email+":", token.Token)

	code, err := GetSimpleText(a.reader, "Enter verification code", os.Stdout)
	if err != nil {
		a.printErr(err)
		return err
	}
	if err := a.identity.VerifyEmail(ctx, code); err != nil {
		if errors.Is(err, common.ErrInvalidOrExpiredToken) {
			printlnFn("Invalid or expired code")
		} else {
			a.printErr(err)
		}
		return err
	}

	a.user.IsVerified = true
	printlnFn("Email verified")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.identity.Logout(ctx); err != nil {
		a.printErr(err)
		return err
	}
	a.user = nil
	printlnFn("Logged out")
	return nil
}
